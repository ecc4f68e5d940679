// Package llm builds generation prompts, talks to the hosted model and turns
// its replies into question drafts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/examgen/examgen-backend/internal/config"
)

// Sentinel errors for model calls.
var (
	ErrMissingCredential         = errors.New("AI provider API key is missing in environment variables")
	ErrUpstream                  = errors.New("AI provider request failed")
	ErrMalformedUpstreamResponse = errors.New("invalid response from AI provider")
	ErrGenerationFailed          = errors.New("AI generation failed")
	ErrInvalidAIResponse         = errors.New("invalid JSON received from AI")
)

const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
	defaultTimeout     = 60 * time.Second

	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Generator sends one prompt to a hosted model and returns its raw text.
// Implementations do not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// NewFromConfig picks the configured provider.
func NewFromConfig(cfg *config.Config) (Generator, error) {
	timeout := cfg.LLMTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch cfg.LLMProvider {
	case "", ProviderOpenRouter:
		return NewOpenRouter(OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.OpenRouterModel,
			Referer: cfg.AppReferer,
			Title:   cfg.AppTitle,
			Timeout: timeout,
		}), nil
	case ProviderGemini:
		return NewGemini(GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: timeout,
		}), nil
	}
	return nil, fmt.Errorf("unknown LLM_PROVIDER %q (allowed: %s, %s)", cfg.LLMProvider, ProviderOpenRouter, ProviderGemini)
}
