package ai

import (
	"context"
)

// Provider generates short text completions.
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Complete performs a single, non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}
