package ai

import (
	"sort"
	"sync"
)

// Registry maps provider names to factories and keeps the most recently
// configured instance of each.
type Registry interface {
	Register(name string, factory ProviderFactory) error
	Unregister(name string) error
	// Get returns the cached provider, building one from the last (or the
	// factory's default) config when none exists.
	Get(name string) (Provider, error)
	// GetWithConfig always builds a fresh provider and closes the one it
	// replaces.
	GetWithConfig(name string, config *ProviderConfig) (Provider, error)
	List() []string
	IsRegistered(name string) bool
	Close() error
}

// ProviderFactory builds providers of one type.
type ProviderFactory interface {
	Create(config *ProviderConfig) (Provider, error)
	Type() string
	ValidateConfig(config *ProviderConfig) error
	DefaultConfig() *ProviderConfig
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
	providers map[string]Provider
	configs   map[string]*ProviderConfig
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ProviderFactory),
		providers: make(map[string]Provider),
		configs:   make(map[string]*ProviderConfig),
	}
}

func (r *registry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return NewProviderError(ErrTypeRegistration, "provider already registered", name)
	}
	r.factories[name] = factory
	return nil
}

func (r *registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.providers[name]; ok {
		if err := p.Close(); err != nil {
			return err
		}
		delete(r.providers, name)
	}
	delete(r.factories, name)
	delete(r.configs, name)
	return nil
}

func (r *registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	p, cached := r.providers[name]
	factory, known := r.factories[name]
	cfg := r.configs[name]
	r.mu.RUnlock()

	switch {
	case cached:
		return p, nil
	case !known:
		return nil, NewProviderError(ErrTypeNotFound, "provider not registered", name)
	case cfg == nil:
		cfg = factory.DefaultConfig()
	}
	return r.GetWithConfig(name, cfg)
}

func (r *registry) GetWithConfig(name string, config *ProviderConfig) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, NewProviderError(ErrTypeNotFound, "provider not registered", name)
	}
	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}
	p, err := factory.Create(config)
	if err != nil {
		return nil, err
	}

	if old, ok := r.providers[name]; ok {
		_ = old.Close()
	}
	r.providers[name] = p
	r.configs[name] = config
	return p, nil
}

// List returns the registered names, sorted.
func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Close closes every cached provider and returns the last failure.
func (r *registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var lastErr error
	for name, p := range r.providers {
		if err := p.Close(); err != nil {
			lastErr = err
		}
		delete(r.providers, name)
	}
	return lastErr
}

var globalRegistry = NewRegistry()

// RegisterProvider adds a factory to the process-wide registry.
func RegisterProvider(name string, factory ProviderFactory) error {
	return globalRegistry.Register(name, factory)
}

// GetProviderWithConfig builds a provider from the process-wide registry.
func GetProviderWithConfig(name string, config *ProviderConfig) (Provider, error) {
	return globalRegistry.GetWithConfig(name, config)
}

func IsProviderRegistered(name string) bool {
	return globalRegistry.IsRegistered(name)
}
