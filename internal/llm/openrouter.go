package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterKeyEnv      = "OPENROUTER_API_KEY"
	defaultOpenRouterURL  = "https://openrouter.ai/api/v1"
	defaultOpenRouterName = "deepseek/deepseek-chat"
)

// OpenRouterConfig configures the OpenAI-compatible chat client.
type OpenRouterConfig struct {
	// APIKey falls back to OPENROUTER_API_KEY at call time when empty.
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

// OpenRouterClient calls an OpenAI-compatible chat completion endpoint.
type OpenRouterClient struct {
	cfg  OpenRouterConfig
	http *http.Client
}

// NewOpenRouter creates a client. Missing fields get defaults.
func NewOpenRouter(cfg OpenRouterConfig) *OpenRouterClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OpenRouterClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &attributionTransport{
				referer: cfg.Referer,
				title:   cfg.Title,
				base:    http.DefaultTransport,
			},
		},
	}
}

func (c *OpenRouterClient) Provider() string { return ProviderOpenRouter }
func (c *OpenRouterClient) Model() string    { return c.cfg.Model }

// Generate sends prompt as the user turn and returns the first choice's content.
func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	key := c.cfg.APIKey
	if key == "" {
		key = os.Getenv(openRouterKeyEnv)
	}
	if key == "" {
		return "", ErrMissingCredential
	}

	config := openai.DefaultConfig(key)
	config.BaseURL = c.cfg.BaseURL
	config.HTTPClient = c.http
	api := openai.NewClientWithConfig(config)

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUpstream, upstreamMessage(err))
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		body, _ := json.Marshal(resp)
		return "", fmt.Errorf("%w: %s", ErrMalformedUpstreamResponse, body)
	}
	return resp.Choices[0].Message.Content, nil
}

// upstreamMessage prefers the provider's own error message.
func upstreamMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		return reqErr.Err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return "AI generation failed via upstream provider"
}

// attributionTransport adds the app attribution headers OpenRouter asks for.
type attributionTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}
