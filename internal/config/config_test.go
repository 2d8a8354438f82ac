package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}

	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected AI provider gemini, got %s", cfg.AI.Provider)
	}

	if cfg.AI.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", cfg.AI.Temperature)
	}

	if cfg.Market.OrderBookDepth != 8 {
		t.Errorf("Expected order book depth 8, got %d", cfg.Market.OrderBookDepth)
	}

	if cfg.Faucet.Amount != 50 || cfg.Faucet.MintDelay != 2*time.Second || cfg.Faucet.Cooldown != 24*time.Hour {
		t.Errorf("Unexpected faucet defaults: %+v", cfg.Faucet)
	}

	if cfg.Toast.Lifetime != 3*time.Second {
		t.Errorf("Expected toast lifetime 3s, got %v", cfg.Toast.Lifetime)
	}

	if !cfg.Tour.AutoStart {
		t.Error("Expected tour auto start by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "invalid AI provider",
			mutate:  func(c *Config) { c.AI.Provider = "invalid" },
			wantErr: true,
			errMsg:  "invalid AI provider: invalid (must be one of: gemini, openai)",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.AI.Temperature = 3 },
			wantErr: true,
			errMsg:  "ai temperature must be between 0 and 2",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "sepia" },
			wantErr: true,
			errMsg:  "invalid theme: sepia (must be one of: light, dark)",
		},
		{
			name:    "invalid language",
			mutate:  func(c *Config) { c.UI.Language = "fr" },
			wantErr: true,
			errMsg:  "invalid language: fr (must be one of: en, zh)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.UI.ColorMode = "invalid" },
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:    "zero tooltip",
			mutate:  func(c *Config) { c.Tour.TooltipWidth = 0 },
			wantErr: true,
			errMsg:  "tour tooltip size must be positive",
		},
		{
			name:    "zero frame interval",
			mutate:  func(c *Config) { c.Tour.FrameInterval = 0 },
			wantErr: true,
			errMsg:  "tour frame_interval must be greater than 0",
		},
		{
			name:    "invalid order book depth",
			mutate:  func(c *Config) { c.Market.OrderBookDepth = 0 },
			wantErr: true,
			errMsg:  "order_book_depth must be greater than 0",
		},
		{
			name:    "invalid sort",
			mutate:  func(c *Config) { c.Market.DefaultSort = "price" },
			wantErr: true,
			errMsg:  "invalid sort: price (must be one of: created_at, expires_at, total_volume, 24h_volume, liquidity)",
		},
		{
			name:    "negative cooldown",
			mutate:  func(c *Config) { c.Faucet.Cooldown = -time.Second },
			wantErr: true,
			errMsg:  "faucet mint_delay and cooldown must be non-negative",
		},
		{
			name:    "unknown state backend",
			mutate:  func(c *Config) { c.State.Backend = "redis" },
			wantErr: true,
			errMsg:  "invalid state backend: redis (must be one of: gdata, memory)",
		},
		{
			name:    "gdata without app name",
			mutate:  func(c *Config) { c.State.AppName = "" },
			wantErr: true,
			errMsg:  "state app_name is required for the gdata backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}
