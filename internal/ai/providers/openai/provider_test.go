package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yc365/storefront/internal/ai"
)

const testAPIKey = "test-api-key"

func testConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.BaseURL = baseURL
	return cfg
}

func TestProvider_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: true, // no API key
		},
		{
			name:    "valid config",
			config:  testConfig(DefaultBaseURL),
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				APIKey:  testAPIKey,
				BaseURL: "http://[::1]:namedport",
			},
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			config:  testConfig("ftp://example.com"),
			wantErr: true,
		},
		{
			name: "missing API key",
			config: &Config{
				BaseURL: DefaultBaseURL,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && provider == nil {
				t.Error("New() returned nil provider without error")
			}
			if provider != nil {
				_ = provider.Close()
			}
		})
	}
}

func TestProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected /v1/chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testAPIKey {
			t.Errorf("Unexpected Authorization header %q", got)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Model != DefaultModel {
			t.Errorf("Expected default model, got %s", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}
		if req.Temperature != 0.7 {
			t.Errorf("Expected temperature 0.7, got %v", req.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Model:   DefaultModel,
			Created: time.Now().Unix(),
			Choices: []ChatCompletionChoice{{
				Message:      ChatMessage{Role: "assistant", Content: "Rate cuts and ETF flows decide this one."},
				FinishReason: "stop",
			}},
			Usage: ChatCompletionUsage{PromptTokens: 40, CompletionTokens: 9, TotalTokens: 49},
		})
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	defer func() { _ = provider.Close() }()

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "Question: \"Will Bitcoin hit $100k?\"",
		SystemPrompt: "You are a market analyst.",
		RequestID:    "req-1",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if !strings.Contains(resp.Content, "ETF") {
		t.Errorf("Unexpected content %q", resp.Content)
	}
	if resp.FinishReason != "stop" || resp.RequestID != "req-1" {
		t.Errorf("Unexpected response metadata: %+v", resp)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 49 {
		t.Errorf("Unexpected usage: %+v", resp.Usage)
	}
}

func TestProvider_CompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"bad key","type":"invalid_request_error"}}`,
			check:  ai.IsAuthenticationError,
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":{"message":"bad model"}}`,
			check:  ai.IsValidationError,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			check: func(err error) bool {
				return errors.Is(err, &ai.ProviderError{Type: ai.ErrTypeRateLimit})
			},
		},
		{
			name:   "empty answer",
			status: http.StatusOK,
			body:   `{"model":"m","choices":[{"message":{"role":"assistant","content":"  "}}]}`,
			check:  ai.IsEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatal(err)
			}

			_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hi"})
			if err == nil || !tt.check(err) {
				t.Errorf("Unexpected error: %v", err)
			}
			if calls.Load() != 1 {
				t.Errorf("Expected exactly one request, got %d", calls.Load())
			}
		})
	}
}

func TestProvider_CompleteValidation(t *testing.T) {
	provider, err := New(testConfig(DefaultBaseURL))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := provider.Complete(context.Background(), nil); !ai.IsValidationError(err) {
		t.Errorf("Expected validation error for nil request, got %v", err)
	}
	if _, err := provider.Complete(context.Background(), &ai.CompletionRequest{}); !ai.IsValidationError(err) {
		t.Errorf("Expected validation error for empty prompt, got %v", err)
	}
}

func TestProvider_ContextCancelled(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	defer server.Close()
	defer close(done)

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = provider.Complete(ctx, &ai.CompletionRequest{Prompt: "hi"})
	var pe *ai.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected provider error, got %v", err)
	}
	if pe.Type != ai.ErrTypeTimeout && pe.Type != ai.ErrTypeNetwork {
		t.Errorf("Expected timeout or network error, got %s", pe.Type)
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	if f.Type() != "openai" {
		t.Errorf("Unexpected type %s", f.Type())
	}
	if err := f.ValidateConfig(nil); !ai.IsConfigurationError(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
	if err := f.ValidateConfig(f.DefaultConfig()); !ai.IsConfigurationError(err) {
		t.Errorf("Expected missing key error, got %v", err)
	}

	cfg := &ai.ProviderConfig{Name: "openai", Type: "openai", APIKey: testAPIKey, BaseURL: "http://localhost:11434"}
	p, err := f.Create(cfg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Unexpected name %s", p.Name())
	}

	if err := Register(); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := Register(); err != nil {
		t.Errorf("Second Register should be a no-op, got %v", err)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := FromProviderConfig(&ai.ProviderConfig{APIKey: testAPIKey})
	if cfg.MaxTokens != DefaultMaxTokens || cfg.BaseURL != DefaultBaseURL || cfg.Timeout != DefaultTimeout {
		t.Errorf("Defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}

	cfg.MaxTokens = MaxInsightTokens + 1
	var ce *ai.ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &ce) || ce.Field != "max_tokens" {
		t.Errorf("Expected max tokens error, got %v", err)
	}

	cfg.MaxTokens = DefaultMaxTokens
	cfg.BaseURL = "http://[::1]:namedport"
	if err := cfg.Validate(); !ai.IsConfigurationError(err) {
		t.Errorf("Expected configuration error for bad URL, got %v", err)
	}
}
