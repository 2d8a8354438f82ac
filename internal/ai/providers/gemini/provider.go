package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yc365/storefront/internal/ai"
)

// generator is the part of *genai.Models the provider uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider calls the Gemini API once per request. There are no retries.
type Provider struct {
	config *Config
	models generator
}

// New creates a provider backed by a genai client.
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeConfiguration, "failed to create genai client", "gemini", err)
	}

	return newWithGenerator(config, client.Models), nil
}

func newWithGenerator(config *Config, g generator) *Provider {
	return &Provider{config: config, models: g}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)},
		p.generateConfig(req),
	)
	if err != nil {
		return nil, classify(ctx, err)
	}
	if resp == nil {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "model returned no candidates", "gemini")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "model returned no text", "gemini")
	}

	out := &ai.CompletionResponse{
		Content:   text,
		Model:     model,
		RequestID: req.RequestID,
		CreatedAt: time.Now(),
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.FinishReason = strings.ToLower(string(resp.Candidates[0].FinishReason))
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &ai.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

func (p *Provider) generateConfig(req *ai.CompletionRequest) *genai.GenerateContentConfig {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	t := float32(temperature)
	gc := &genai.GenerateContentConfig{
		Temperature:     &t,
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	return gc
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

// Close is a no-op; the genai client holds no resources that need releasing.
func (p *Provider) Close() error {
	return nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", "gemini", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		errType := ai.ErrTypeProvider
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			errType = ai.ErrTypeAuthentication
		case http.StatusTooManyRequests:
			errType = ai.ErrTypeRateLimit
		case http.StatusBadRequest:
			errType = ai.ErrTypeValidation
		}
		pe := ai.NewProviderErrorWithCause(errType, apiErr.Message, "gemini", err)
		pe.StatusCode = apiErr.Code
		return pe
	}

	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "gemini", err)
}
