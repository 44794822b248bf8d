package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Model identifiers routed through OpenRouter, ordered roughly by
// capability. Supplementary validation walks this list as a fallback chain.
const (
	ModelGrokFast    = "x-ai/grok-4.1-fast"
	ModelGeminiFlash = "google/gemini-2.5-flash-lite"
	ModelGPTNano     = "openai/gpt-4.1-nano"
	ModelGPTMini     = "openai/gpt-5-mini"
)

// OpenRouterProvider calls the OpenRouter chat completions API. One
// provider instance serves any model id on the platform; the model is
// selected per request through options["model"].
type OpenRouterProvider struct {
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	// Client overrides the HTTP client; the default has no timeout, so
	// callers bound requests through ctx.
	Client *http.Client
}

var _ Provider = (*OpenRouterProvider)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Reasoning   *reasoning    `json:"reasoning,omitempty"`
}

type reasoning struct {
	Enabled bool `json:"enabled"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateResponse sends one chat completion request. Options:
//
//	"api_key"   override OPENROUTER_API_KEY
//	"model"     model id, default ModelGeminiFlash
//	"reasoning" enable reasoning mode (Grok)
func (p *OpenRouterProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY_MISSING: Please set OPENROUTER_API_KEY env var")
	}

	model := ModelGeminiFlash
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	url := p.BaseURL
	if url == "" {
		url = "https://openrouter.ai/api/v1/chat/completions"
	}

	reqBody := openRouterRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   4096,
	}
	if val, ok := options["reasoning"].(bool); ok && val {
		reqBody.Reasoning = &reasoning{Enabled: true}
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-Title", "AASB Financial Statement Generator")

	client := p.Client
	if client == nil {
		client = &http.Client{}
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_READ_BODY_ERROR: %v", err)
	}
	if res.StatusCode != 200 {
		return "", fmt.Errorf("OPENROUTER_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response openRouterResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("OPENROUTER_UNMARSHAL_ERROR: %v", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("OPENROUTER_API_ERROR: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("OPENROUTER_NO_CHOICES: %s", string(body))
	}

	return response.Choices[0].Message.Content, nil
}

func (p *OpenRouterProvider) AdaptInstructions(raw string) string {
	return raw
}
