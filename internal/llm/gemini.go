package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiKeyEnv       = "GEMINI_API_KEY"
	defaultGeminiModel = "gemini-2.0-flash"
)

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	// APIKey falls back to GEMINI_API_KEY at call time when empty.
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiClient calls Google's Gemini API.
type GeminiClient struct {
	cfg GeminiConfig
}

func NewGemini(cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &GeminiClient{cfg: cfg}
}

func (c *GeminiClient) Provider() string { return ProviderGemini }
func (c *GeminiClient) Model() string    { return c.cfg.Model }

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	key := c.cfg.APIKey
	if key == "" {
		key = os.Getenv(geminiKeyEnv)
	}
	if key == "" {
		return "", ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create Gemini client: %v", ErrUpstream, err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.cfg.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemPrompt)}}
	model.SetTemperature(defaultTemperature)
	model.SetMaxOutputTokens(defaultMaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		body, _ := json.Marshal(resp)
		return "", fmt.Errorf("%w: %s", ErrMalformedUpstreamResponse, body)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		body, _ := json.Marshal(resp)
		return "", fmt.Errorf("%w: %s", ErrMalformedUpstreamResponse, body)
	}
	return sb.String(), nil
}
