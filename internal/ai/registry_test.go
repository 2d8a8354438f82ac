package ai

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name   string
	closed bool
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Content: "ok"}, nil
}
func (s *stubProvider) ValidateConfig() error { return nil }
func (s *stubProvider) Close() error          { s.closed = true; return nil }

type stubFactory struct {
	name    string
	created []*stubProvider
}

func (f *stubFactory) Create(config *ProviderConfig) (Provider, error) {
	p := &stubProvider{name: f.name}
	f.created = append(f.created, p)
	return p, nil
}
func (f *stubFactory) Type() string { return f.name }
func (f *stubFactory) ValidateConfig(config *ProviderConfig) error {
	if config == nil || config.APIKey == "" {
		return NewConfigurationError(f.name, "api_key", "API key is required")
	}
	return nil
}
func (f *stubFactory) DefaultConfig() *ProviderConfig {
	return &ProviderConfig{Name: f.name, Type: f.name}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()
	factory := &stubFactory{name: "gemini"}

	if err := reg.Register("gemini", factory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register("gemini", factory); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
	if err := reg.Register("openai", &stubFactory{name: "openai"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got := reg.List(); len(got) != 2 || got[0] != "gemini" || got[1] != "openai" {
		t.Errorf("Expected sorted [gemini openai], got %v", got)
	}

	if _, err := reg.Get("gemini"); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error without a key, got %v", err)
	}

	first, err := reg.GetWithConfig("gemini", &ProviderConfig{Name: "gemini", Type: "gemini", APIKey: "k"})
	if err != nil {
		t.Fatalf("GetWithConfig failed: %v", err)
	}
	cached, err := reg.Get("gemini")
	if err != nil || cached != first {
		t.Errorf("Expected cached provider, got %v (%v)", cached, err)
	}

	if _, err := reg.GetWithConfig("gemini", &ProviderConfig{Name: "gemini", Type: "gemini", APIKey: "k2"}); err != nil {
		t.Fatal(err)
	}
	if !factory.created[0].closed {
		t.Error("Expected replaced provider to be closed")
	}

	if _, err := reg.Get("missing"); !errors.Is(err, &ProviderError{Type: ErrTypeNotFound}) {
		t.Errorf("Expected not found, got %v", err)
	}

	if err := reg.Unregister("gemini"); err != nil {
		t.Fatal(err)
	}
	if reg.IsRegistered("gemini") {
		t.Error("Expected gemini to be unregistered")
	}
	if err := reg.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
