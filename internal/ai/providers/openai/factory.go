package openai

import (
	"github.com/yc365/storefront/internal/ai"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	if config == nil {
		config = f.DefaultConfig()
	}
	return New(FromProviderConfig(config))
}

func (f *Factory) Type() string {
	return "openai"
}

func (f *Factory) ValidateConfig(config *ai.ProviderConfig) error {
	if config == nil {
		return ai.NewConfigurationError("openai", "config", "configuration is required")
	}
	return FromProviderConfig(config).Validate()
}

func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return DefaultConfig().ToProviderConfig()
}

// Register adds the openai factory to the global registry.
func Register() error {
	if ai.IsProviderRegistered("openai") {
		return nil
	}
	return ai.RegisterProvider("openai", NewFactory())
}
