package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version" toml:"version"`
	AI      AIConfig     `yaml:"ai" json:"ai" toml:"ai"`
	UI      UIConfig     `yaml:"ui" json:"ui" toml:"ui"`
	Tour    TourConfig   `yaml:"tour" json:"tour" toml:"tour"`
	Market  MarketConfig `yaml:"market" json:"market" toml:"market"`
	Faucet  FaucetConfig `yaml:"faucet" json:"faucet" toml:"faucet"`
	Toast   ToastConfig  `yaml:"toast" json:"toast" toml:"toast"`
	State   StateConfig  `yaml:"state" json:"state" toml:"state"`
	Log     LogConfig    `yaml:"log" json:"log" toml:"log"`
}

// AIConfig configures the market summary provider
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider" toml:"provider"`          // gemini|openai
	Model       string        `yaml:"model" json:"model" toml:"model"`                   // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint" toml:"endpoint"`          // API endpoint URL (openai only)
	APIKey      string        `yaml:"api_key" json:"-" toml:"api_key"`                   // credential, never printed
	Timeout     time.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`             // request timeout
	Temperature float64       `yaml:"temperature" json:"temperature" toml:"temperature"` // sampling temperature
}

// UIConfig configures the storefront look and feel
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme" toml:"theme"`                // light|dark
	Language  string `yaml:"language" json:"language" toml:"language"`       // en|zh
	ColorMode string `yaml:"color_mode" json:"color_mode" toml:"color_mode"` // auto|always|never
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji" toml:"no_emoji"`
}

// TourConfig configures the onboarding tour. Geometry is in terminal cells.
type TourConfig struct {
	AutoStart     bool          `yaml:"auto_start" json:"auto_start" toml:"auto_start"`
	FrameInterval time.Duration `yaml:"frame_interval" json:"frame_interval" toml:"frame_interval"`
	TooltipWidth  float64       `yaml:"tooltip_width" json:"tooltip_width" toml:"tooltip_width"`
	TooltipHeight float64       `yaml:"tooltip_height" json:"tooltip_height" toml:"tooltip_height"`
	Margin        float64       `yaml:"margin" json:"margin" toml:"margin"`
	HeaderLine    float64       `yaml:"header_line" json:"header_line" toml:"header_line"`
	Inset         float64       `yaml:"inset" json:"inset" toml:"inset"`
	PillThreshold float64       `yaml:"pill_threshold" json:"pill_threshold" toml:"pill_threshold"`
}

// MarketConfig configures browsing defaults and the mock order book
type MarketConfig struct {
	DefaultCategory string `yaml:"default_category" json:"default_category" toml:"default_category"`
	DefaultFilter   string `yaml:"default_filter" json:"default_filter" toml:"default_filter"`
	DefaultSort     string `yaml:"default_sort" json:"default_sort" toml:"default_sort"`
	OrderBookDepth  int    `yaml:"order_book_depth" json:"order_book_depth" toml:"order_book_depth"`
	Seed            int64  `yaml:"seed" json:"seed" toml:"seed"` // 0 = seeded from the clock
}

// FaucetConfig configures the simulated test-token faucet
type FaucetConfig struct {
	Amount    float64       `yaml:"amount" json:"amount" toml:"amount"`
	Token     string        `yaml:"token" json:"token" toml:"token"`
	MintDelay time.Duration `yaml:"mint_delay" json:"mint_delay" toml:"mint_delay"`
	Cooldown  time.Duration `yaml:"cooldown" json:"cooldown" toml:"cooldown"`
}

// ToastConfig configures notifications
type ToastConfig struct {
	Lifetime time.Duration `yaml:"lifetime" json:"lifetime" toml:"lifetime"`
	MaxShown int           `yaml:"max_shown" json:"max_shown" toml:"max_shown"`
}

// StateConfig configures where the tour flag lives
type StateConfig struct {
	Backend string `yaml:"backend" json:"backend" toml:"backend"` // gdata|memory
	AppName string `yaml:"app_name" json:"app_name" toml:"app_name"`
}

// LogConfig configures diagnostics output
type LogConfig struct {
	File    string `yaml:"file" json:"file" toml:"file"` // log file used while the TUI runs
	Verbose bool   `yaml:"verbose" json:"verbose" toml:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			Endpoint:    "",
			APIKey:      "",
			Timeout:     20 * time.Second,
			Temperature: 0.7,
		},
		UI: UIConfig{
			Theme:     "light",
			Language:  "en",
			ColorMode: "auto",
			NoEmoji:   false,
		},
		Tour: TourConfig{
			AutoStart:     true,
			FrameInterval: time.Second / 60,
			TooltipWidth:  44,
			TooltipHeight: 11,
			Margin:        2,
			HeaderLine:    3,
			Inset:         1,
			PillThreshold: 12,
		},
		Market: MarketConfig{
			DefaultCategory: "all",
			DefaultFilter:   "all",
			DefaultSort:     "24h_volume",
			OrderBookDepth:  8,
			Seed:            0,
		},
		Faucet: FaucetConfig{
			Amount:    50,
			Token:     "USDT",
			MintDelay: 2 * time.Second,
			Cooldown:  24 * time.Hour,
		},
		Toast: ToastConfig{
			Lifetime: 3 * time.Second,
			MaxShown: 3,
		},
		State: StateConfig{
			Backend: "gdata",
			AppName: "yc365",
		},
		Log: LogConfig{
			File:    "",
			Verbose: false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateTourConfig(); err != nil {
		return err
	}
	if err := c.validateMarketConfig(); err != nil {
		return err
	}
	if err := c.validateFaucetConfig(); err != nil {
		return err
	}
	if err := c.validateStateConfig(); err != nil {
		return err
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"gemini": true,
			"openai": true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, openai)", c.AI.Provider)
		}
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout must be non-negative")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai temperature must be between 0 and 2")
	}
	return nil
}

// validateUIConfig validates presentation settings
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" && c.UI.Theme != "light" && c.UI.Theme != "dark" {
		return fmt.Errorf("invalid theme: %s (must be one of: light, dark)", c.UI.Theme)
	}
	if c.UI.Language != "" && c.UI.Language != "en" && c.UI.Language != "zh" {
		return fmt.Errorf("invalid language: %s (must be one of: en, zh)", c.UI.Language)
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	return nil
}

// validateTourConfig validates tour geometry
func (c *Config) validateTourConfig() error {
	if c.Tour.TooltipWidth <= 0 || c.Tour.TooltipHeight <= 0 {
		return fmt.Errorf("tour tooltip size must be positive")
	}
	if c.Tour.Margin < 0 || c.Tour.Inset < 0 || c.Tour.HeaderLine < 0 {
		return fmt.Errorf("tour margin, inset and header_line must be non-negative")
	}
	if c.Tour.FrameInterval <= 0 {
		return fmt.Errorf("tour frame_interval must be greater than 0")
	}
	return nil
}

// validateMarketConfig validates browsing defaults
func (c *Config) validateMarketConfig() error {
	if c.Market.OrderBookDepth < 1 {
		return fmt.Errorf("order_book_depth must be greater than 0")
	}
	if c.Market.DefaultSort != "" {
		validSorts := map[string]bool{
			"created_at":   true,
			"expires_at":   true,
			"total_volume": true,
			"24h_volume":   true,
			"liquidity":    true,
		}
		if !validSorts[c.Market.DefaultSort] {
			return fmt.Errorf("invalid sort: %s (must be one of: created_at, expires_at, total_volume, 24h_volume, liquidity)", c.Market.DefaultSort)
		}
	}
	return nil
}

// validateFaucetConfig validates faucet simulation settings
func (c *Config) validateFaucetConfig() error {
	if c.Faucet.Amount <= 0 {
		return fmt.Errorf("faucet amount must be greater than 0")
	}
	if c.Faucet.MintDelay < 0 || c.Faucet.Cooldown < 0 {
		return fmt.Errorf("faucet mint_delay and cooldown must be non-negative")
	}
	return nil
}

// validateStateConfig validates the flag store backend
func (c *Config) validateStateConfig() error {
	switch c.State.Backend {
	case "", "gdata", "memory":
	default:
		return fmt.Errorf("invalid state backend: %s (must be one of: gdata, memory)", c.State.Backend)
	}
	if c.State.Backend == "gdata" && c.State.AppName == "" {
		return fmt.Errorf("state app_name is required for the gdata backend")
	}
	return nil
}
