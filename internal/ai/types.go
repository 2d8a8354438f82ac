package ai

import (
	"time"
)

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	// Prompt is the input text for completion
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// Model specifies which model to use (provider-specific)
	Model string `json:"model,omitempty"`

	// RequestID for request tracking
	RequestID string `json:"request_id,omitempty"`
}

// Validate checks the request before it is sent.
func (r *CompletionRequest) Validate() error {
	if r.Prompt == "" {
		return NewValidationError("prompt", r.Prompt, "prompt cannot be empty")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", "negative", "max_tokens cannot be negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return NewValidationError("temperature", "out of range", "temperature must be between 0 and 2")
	}
	return nil
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	// Usage contains token usage information
	Usage *TokenUsage `json:"usage"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// Type is the provider type (gemini, openai)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"-"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is the default model to use
	DefaultModel string `json:"default_model,omitempty"`

	// MaxTokens is the maximum response size
	MaxTokens int `json:"max_tokens,omitempty"`

	// DefaultTemperature for requests
	DefaultTemperature float64 `json:"default_temperature,omitempty"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout,omitempty"`

	// Custom headers for requests
	Headers map[string]string `json:"headers,omitempty"`
}

// Validate checks the fields every provider needs.
func (c *ProviderConfig) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", c.Name, "name cannot be empty")
	}
	if c.Type == "" {
		return NewValidationError("type", c.Type, "type cannot be empty")
	}
	if c.Timeout < 0 {
		return NewValidationError("timeout", c.Timeout.String(), "timeout cannot be negative")
	}
	return nil
}
