package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk and publishes the
// result. The directory is watched rather than the file so editors that
// replace the file atomically are still seen.
type Watcher struct {
	path    string
	loader  *Loader
	updates chan *Config
	errors  chan error
}

// NewWatcher creates a watcher for path using loader to decode it.
func NewWatcher(path string, loader *Loader) *Watcher {
	if loader == nil {
		loader = NewLoader()
	}
	return &Watcher{
		path:    path,
		loader:  loader,
		updates: make(chan *Config, 1),
		errors:  make(chan error, 1),
	}
}

// Updates delivers freshly loaded configurations.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Errors delivers reload failures. A failed reload keeps the previous config.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Run watches until ctx is cancelled. Both channels are closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer close(w.errors)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := w.loader.LoadConfig(absPath)
			if err != nil {
				w.publishErr(ctx, err)
				continue
			}
			w.publish(ctx, cfg)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.publishErr(ctx, err)
		}
	}
}

// publish replaces any undelivered config with the newest one.
func (w *Watcher) publish(ctx context.Context, cfg *Config) {
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	case <-ctx.Done():
	}
}

func (w *Watcher) publishErr(ctx context.Context, err error) {
	select {
	case w.errors <- err:
	case <-ctx.Done():
	default:
	}
}
