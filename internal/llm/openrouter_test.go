package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) (*OpenRouterClient, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewOpenRouter(OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Referer: "http://localhost:3000",
		Title:   "AI Exam Generator",
	})
	return c, &hits
}

func TestOpenRouter_Generate(t *testing.T) {
	c, hits := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:3000" {
			t.Errorf("HTTP-Referer = %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "AI Exam Generator" {
			t.Errorf("X-Title = %q", got)
		}

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if body.Model != "test-model" || body.MaxTokens != 1000 {
			t.Errorf("model = %q, max_tokens = %d", body.Model, body.MaxTokens)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "make questions" {
			t.Errorf("messages = %+v", body.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"[{\"text\":\"Q1\"}]"}}]}`))
	})

	out, err := c.Generate(context.Background(), "make questions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `[{"text":"Q1"}]` {
		t.Errorf("got %q", out)
	}
	if *hits != 1 {
		t.Errorf("hits = %d", *hits)
	}
	if c.Provider() != ProviderOpenRouter || c.Model() != "test-model" {
		t.Errorf("provider/model = %s/%s", c.Provider(), c.Model())
	}
}

func TestOpenRouter_MissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	c, hits := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {})
	c.cfg.APIKey = ""

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if *hits != 0 {
		t.Errorf("no request should be sent, got %d", *hits)
	}
}

func TestOpenRouter_KeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	c, _ := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer env-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})
	c.cfg.APIKey = ""

	if _, err := c.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenRouter_MalformedResponse(t *testing.T) {
	c, _ := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc","choices":[]}`))
	})

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrMalformedUpstreamResponse) {
		t.Fatalf("expected ErrMalformedUpstreamResponse, got %v", err)
	}
	if !strings.Contains(err.Error(), `"abc"`) {
		t.Errorf("serialized response missing from error: %v", err)
	}
}

func TestOpenRouter_UpstreamError(t *testing.T) {
	c, _ := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"No auth credentials found","code":401}}`))
	})

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "No auth credentials found") {
		t.Errorf("upstream message not surfaced: %v", err)
	}
}
