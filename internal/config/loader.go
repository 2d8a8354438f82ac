package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.yc365.yaml",               // Project-specific config (highest priority)
	"./.yc365.toml",               // Project-specific config, TOML flavour
	"~/.config/yc365/config.yaml", // User config
	"/etc/yc365/config.yaml",      // System config (lowest priority)
}

// credentialEnv lists variables consulted for the AI credential when
// YC365_AI_API_KEY is not set, in order.
var credentialEnv = []string{"API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// NewLoaderWithPaths creates a loader that searches only paths.
func NewLoaderWithPaths(paths []string) *Loader {
	return &Loader{configPaths: paths}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.yc365.yaml, ./.yc365.toml
// 4. ~/.config/yc365/config.yaml
// 5. /etc/yc365/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML or TOML file on top of config. Keys absent from
// the file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return decodeInto(config, data, filepath.Ext(path))
}

func decodeInto(config *Config, data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(config); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"YC365_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"YC365_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"YC365_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"YC365_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"YC365_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"YC365_AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },

		// UI Config
		"YC365_UI_THEME":      func(v string) error { config.UI.Theme = v; return nil },
		"YC365_UI_LANGUAGE":   func(v string) error { config.UI.Language = v; return nil },
		"YC365_UI_COLOR_MODE": func(v string) error { config.UI.ColorMode = v; return nil },
		"YC365_UI_NO_EMOJI":   func(v string) error { return parseBool(v, &config.UI.NoEmoji) },

		// Tour Config
		"YC365_TOUR_AUTO_START":     func(v string) error { return parseBool(v, &config.Tour.AutoStart) },
		"YC365_TOUR_FRAME_INTERVAL": func(v string) error { return parseDuration(v, &config.Tour.FrameInterval) },

		// Market Config
		"YC365_MARKET_DEFAULT_SORT":     func(v string) error { config.Market.DefaultSort = v; return nil },
		"YC365_MARKET_DEFAULT_CATEGORY": func(v string) error { config.Market.DefaultCategory = v; return nil },
		"YC365_MARKET_ORDER_BOOK_DEPTH": func(v string) error { return parseInt(v, &config.Market.OrderBookDepth) },
		"YC365_MARKET_SEED":             func(v string) error { return parseInt64(v, &config.Market.Seed) },

		// Faucet Config
		"YC365_FAUCET_MINT_DELAY": func(v string) error { return parseDuration(v, &config.Faucet.MintDelay) },
		"YC365_FAUCET_COOLDOWN":   func(v string) error { return parseDuration(v, &config.Faucet.Cooldown) },

		// State / Log Config
		"YC365_STATE_BACKEND": func(v string) error { config.State.Backend = v; return nil },
		"YC365_LOG_FILE":      func(v string) error { config.Log.File = v; return nil },
		"YC365_LOG_VERBOSE":   func(v string) error { return parseBool(v, &config.Log.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if config.AI.APIKey == "" {
		for _, envVar := range credentialEnv {
			if value := os.Getenv(envVar); value != "" {
				config.AI.APIKey = value
				break
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return fmt.Errorf("config file must have .yaml, .yml or .toml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
