package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherPublishesReloadedConfig(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: light\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(path, NewLoaderWithPaths(nil))
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register before writing
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got *Config
	for got == nil {
		select {
		case <-tick.C:
			_ = os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0o600)
		case cfg := <-w.Updates():
			if cfg != nil && cfg.UI.Theme == "dark" {
				got = cfg
			}
		case <-deadline:
			cancel()
			<-done
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
