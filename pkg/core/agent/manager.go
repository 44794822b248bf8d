// Package agent wires configured model providers to the tasks that use
// them: supplementary validation and note review.
package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"aasb_statements/pkg/core/llm"
)

// Config selects providers per task. Loaded from config/models.yaml.
type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Tasks          map[string]TaskConfig `yaml:"tasks"`
}

// TaskConfig optionally overrides the provider or model for one task.
type TaskConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// LoadConfig reads the provider configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading model config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing model config: %w", err)
	}
	return cfg, nil
}

// Manager resolves providers for tasks.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"openrouter": &llm.OpenRouterProvider{},
			"gemini":     &llm.GeminiProvider{},
		},
	}
}

// GetProvider resolves the provider for a task: task override first, then
// the global active provider, then OpenRouter.
func (m *Manager) GetProvider(task string) llm.Provider {
	if taskCfg, ok := m.config.Tasks[task]; ok && taskCfg.Provider != "" {
		if p, ok := m.providers[taskCfg.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["openrouter"]
}

// TaskModels returns the configured models for the given tasks in order,
// skipping tasks with no model set. Callers use the result as a fallback
// chain.
func (m *Manager) TaskModels(tasks ...string) []string {
	var out []string
	for _, task := range tasks {
		if taskCfg, ok := m.config.Tasks[task]; ok && taskCfg.Model != "" {
			out = append(out, taskCfg.Model)
		}
	}
	return out
}

// Tasks returns a copy of the configured task table.
func (m *Manager) Tasks() map[string]TaskConfig {
	out := make(map[string]TaskConfig, len(m.config.Tasks))
	for name, taskCfg := range m.config.Tasks {
		out[name] = taskCfg
	}
	return out
}

// SetGlobalProvider switches the active provider.
func (m *Manager) SetGlobalProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// GetActiveProvider returns the active provider name.
func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
