package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yc365/storefront/internal/ai"
)

// Provider talks to an OpenAI-compatible /v1/chat/completions endpoint.
// A local Ollama server works through its /v1 compatibility layer.
// Each call is a single request; failures are returned, never retried.
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("openai", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chatResp, err := p.send(ctx, p.buildChatRequest(req))
	if err != nil {
		return nil, err
	}

	resp := chatResp.toAIResponse(req.RequestID)
	if strings.TrimSpace(resp.Content) == "" {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "model returned no text", "openai")
	}
	return resp, nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) *ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	chatReq := &ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		User:        req.RequestID,
	}
	chatReq.setMessages(req.SystemPrompt, req.Prompt)

	return chatReq
}

func (p *Provider) send(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	endpoint := p.baseURL.JoinPath("/v1/chat/completions")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "openai", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create request", "openai", err)
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", "openai", err)
		}
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "openai", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "openai", err)
	}

	return &chatResp, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.config.Headers {
		req.Header.Set(k, v)
	}
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
			message = eb.Error.Message
		}
	}

	var errType ai.ErrorType
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ai.ErrTypeAuthentication
	case http.StatusTooManyRequests:
		errType = ai.ErrTypeRateLimit
	case http.StatusBadRequest:
		return ai.NewValidationError("request", "invalid", message)
	default:
		errType = ai.ErrTypeProvider
	}

	pe := ai.NewProviderError(errType, message, "openai")
	pe.StatusCode = resp.StatusCode
	return pe
}
