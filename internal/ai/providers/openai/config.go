package openai

import (
	"net/url"
	"time"

	"github.com/yc365/storefront/internal/ai"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"
	// DefaultMaxTokens fits a 50 word market insight with headroom.
	DefaultMaxTokens   = 120
	MaxInsightTokens   = 1024
	DefaultTemperature = 0.7
	DefaultTimeout     = 20 * time.Second
)

// Config configures any OpenAI-compatible chat completions endpoint.
type Config struct {
	APIKey             string        `json:"-"`
	BaseURL            string        `json:"base_url"`
	DefaultModel       string        `json:"default_model"`
	MaxTokens          int           `json:"max_tokens"`
	DefaultTemperature float64       `json:"default_temperature"`
	Timeout            time.Duration `json:"timeout"`
	Headers            map[string]string
}

func DefaultConfig() *Config {
	return (&Config{}).withDefaults()
}

func (c *Config) withDefaults() *Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.DefaultModel == "" {
		c.DefaultModel = DefaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.DefaultTemperature == 0 {
		c.DefaultTemperature = DefaultTemperature
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	validURL := false
	if u, err := url.Parse(c.BaseURL); err == nil {
		validURL = u.Scheme == "http" || u.Scheme == "https"
	}
	checks := []struct {
		bad     bool
		field   string
		message string
	}{
		{c.APIKey == "", "api_key", "API key is required"},
		{c.BaseURL == "", "base_url", "base URL is required"},
		{!validURL, "base_url", "base URL must be an http or https URL"},
		{c.DefaultModel == "", "default_model", "default model is required"},
		{c.MaxTokens <= 0 || c.MaxTokens > MaxInsightTokens, "max_tokens", "max tokens must be between 1 and 1024"},
		{c.DefaultTemperature < 0 || c.DefaultTemperature > 2, "default_temperature", "temperature must be between 0 and 2"},
		{c.Timeout <= 0, "timeout", "timeout must be positive"},
	}
	for _, chk := range checks {
		if chk.bad {
			return ai.NewConfigurationError("openai", chk.field, chk.message)
		}
	}
	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               "openai",
		Type:               "openai",
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		MaxTokens:          c.MaxTokens,
		DefaultTemperature: c.DefaultTemperature,
		Timeout:            c.Timeout,
		Headers:            c.Headers,
	}
}

// FromProviderConfig fills unset fields with defaults.
func FromProviderConfig(config *ai.ProviderConfig) *Config {
	if config == nil {
		return DefaultConfig()
	}
	return (&Config{
		APIKey:             config.APIKey,
		BaseURL:            config.BaseURL,
		DefaultModel:       config.DefaultModel,
		MaxTokens:          config.MaxTokens,
		DefaultTemperature: config.DefaultTemperature,
		Timeout:            config.Timeout,
		Headers:            config.Headers,
	}).withDefaults()
}
