package gemini

import (
	"net/url"
	"time"

	"github.com/yc365/storefront/internal/ai"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 256
	DefaultTimeout     = 20 * time.Second
)

// Config configures the Gemini API provider.
type Config struct {
	APIKey             string        `json:"-"`
	BaseURL            string        `json:"base_url,omitempty"` // empty uses the SDK default
	DefaultModel       string        `json:"default_model"`
	MaxTokens          int           `json:"max_tokens"`
	DefaultTemperature float64       `json:"default_temperature"`
	Timeout            time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultModel:       DefaultModel,
		MaxTokens:          DefaultMaxTokens,
		DefaultTemperature: DefaultTemperature,
		Timeout:            DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError("gemini", "api_key", "API key is required")
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return ai.NewConfigurationError("gemini", "base_url", "invalid base URL")
		}
	}
	if c.DefaultModel == "" {
		return ai.NewConfigurationError("gemini", "default_model", "default model is required")
	}
	if c.MaxTokens <= 0 {
		return ai.NewConfigurationError("gemini", "max_tokens", "max tokens must be positive")
	}
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError("gemini", "default_temperature", "temperature must be between 0 and 2")
	}
	if c.Timeout <= 0 {
		return ai.NewConfigurationError("gemini", "timeout", "timeout must be positive")
	}
	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               "gemini",
		Type:               "gemini",
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		MaxTokens:          c.MaxTokens,
		DefaultTemperature: c.DefaultTemperature,
		Timeout:            c.Timeout,
	}
}

// FromProviderConfig fills unset fields with defaults.
func FromProviderConfig(config *ai.ProviderConfig) *Config {
	if config == nil {
		return DefaultConfig()
	}

	c := &Config{
		APIKey:             config.APIKey,
		BaseURL:            config.BaseURL,
		DefaultModel:       config.DefaultModel,
		MaxTokens:          config.MaxTokens,
		DefaultTemperature: config.DefaultTemperature,
		Timeout:            config.Timeout,
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
