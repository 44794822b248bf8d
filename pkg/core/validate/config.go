package validate

import (
	"fmt"
	"os"

	"aasb_statements/pkg/core/utils"
)

// Config holds the policy expectations the query checks compare against.
type Config struct {
	// ExpectedDirectors is the roster the declaration must carry.
	ExpectedDirectors []string `json:"expected_directors"`
	// ExpectedCompiler must appear within the compilation signatory name.
	ExpectedCompiler string `json:"expected_compiler"`
	// CurrentProvisionRowLimit rides along for the extractor: provisions
	// rows without current/non-current wording read as current below this
	// row index. Zero keeps the extractor's default. The validator itself
	// does not consult it.
	CurrentProvisionRowLimit int `json:"current_provision_row_limit,omitempty"`
}

// defaults match the prior-year declaration of the reference engagement.
func (c Config) withDefaults() Config {
	if len(c.ExpectedDirectors) == 0 {
		c.ExpectedDirectors = []string{"Matthew Warnken", "Gary Wyatt", "Julian Turecek"}
	}
	if c.ExpectedCompiler == "" {
		c.ExpectedCompiler = "Allan Tuback"
	}
	return c
}

// LoadConfig reads a validation config file. The file is HJSON, so
// engagement teams can keep comments next to the roster they maintain.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading validation config: %w", err)
	}

	var cfg Config
	if err := utils.ParseHJSONToStruct(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing validation config: %w", err)
	}
	return cfg, nil
}
