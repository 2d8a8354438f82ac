// Package analysis produces the short AI insight shown on a market card.
package analysis

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yildizm/go-promptfmt"

	"github.com/yc365/storefront/internal/ai"
	"github.com/yc365/storefront/internal/ai/providers/gemini"
	"github.com/yc365/storefront/internal/ai/providers/openai"
	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/logger"
)

// Placeholder texts shown in place of an insight.
const (
	MsgNoCredential = "Please configure the API_KEY to use AI analysis features."
	MsgUnavailable  = "AI Analysis temporarily unavailable."
	MsgEmpty        = "Could not generate analysis."
)

const (
	DefaultTemperature = 0.7
	maxTokens          = 200
)

// Service turns a market question into a one-paragraph insight.
type Service struct {
	provider    ai.Provider
	model       string
	temperature float64
	log         *logger.Logger
}

// NewService wraps provider. A nil provider means no credential is configured.
func NewService(provider ai.Provider, model string, temperature float64, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &Service{
		provider:    provider,
		model:       model,
		temperature: temperature,
		log:         log.WithComponent("analysis"),
	}
}

// FromConfig builds the configured provider. Without an API key the service
// is still usable and answers MsgNoCredential.
func FromConfig(cfg config.AIConfig, log *logger.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		return NewService(nil, cfg.Model, cfg.Temperature, log), nil
	}

	if err := registerProviders(); err != nil {
		return nil, err
	}

	name := cfg.Provider
	if name == "" {
		name = "gemini"
	}

	provider, err := ai.GetProviderWithConfig(name, &ai.ProviderConfig{
		Name:               name,
		Type:               name,
		APIKey:             cfg.APIKey,
		BaseURL:            cfg.Endpoint,
		DefaultModel:       cfg.Model,
		DefaultTemperature: cfg.Temperature,
		Timeout:            cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return NewService(provider, cfg.Model, cfg.Temperature, log), nil
}

func registerProviders() error {
	if err := gemini.Register(); err != nil {
		return err
	}
	return openai.Register()
}

// Configured reports whether a provider is available.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// AnalyzeMarket asks the model about title. It never fails: problems are
// logged and mapped to one of the placeholder messages.
func (s *Service) AnalyzeMarket(ctx context.Context, title string) string {
	if s.provider == nil {
		return MsgNoCredential
	}

	prompt := BuildPrompt(title)
	requestID := uuid.NewString()

	resp, err := s.provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    maxTokens,
		Temperature:  s.temperature,
		Model:        s.model,
		RequestID:    requestID,
	})
	if err != nil {
		if ai.IsEmptyResponse(err) {
			s.log.Debug("empty answer for %q", title)
			return MsgEmpty
		}
		if ai.IsValidationError(err) {
			s.log.Warn("provider rejected the request for %q: %v", title, err)
			return MsgUnavailable
		}
		s.log.DebugWithFields("analysis failed", []logger.Field{
			logger.F("request_id", requestID),
			logger.F("provider", s.provider.Name()),
			logger.F("transient", ai.IsTransient(err)),
			logger.Error(err),
		})
		return MsgUnavailable
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return MsgEmpty
	}
	return text
}

// BuildPrompt renders the market question prompt.
func BuildPrompt(title string) *promptfmt.Prompt {
	return promptfmt.New().
		User("Analyze the following prediction market question briefly. Provide a short, witty insight on what factors might influence the outcome. Keep it under 50 words. Question: \"%s\"", title).
		Build()
}

// Close releases the provider.
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
