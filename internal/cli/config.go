package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/emoji"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage YC365 configuration",
		Long: `Manage YC365 configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new YC365 configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  yc365 config init

  # Create minimal config
  yc365 config init --minimal

  # Create config at specific path
  yc365 config init --output ~/.config/yc365/config.yaml

  # Overwrite existing config
  yc365 config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".yc365.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			if minimal {
				fmt.Fprintln(w, "Created minimal configuration with essential settings")
			} else {
				fmt.Fprintln(w, "Created full configuration with all options and documentation")
			}
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .yc365.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from defaults, config files and environment
variable overrides. The API key is never printed.`,
		Example: `  # Show config in YAML format
  yc365 config show

  # Show config in JSON or TOML format
  yc365 config show --format json
  yc365 config show --format toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetGlobalConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			redacted := *cfg
			if redacted.AI.APIKey != "" {
				redacted.AI.APIKey = "********"
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(redacted, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(w, string(data))
			case "yaml":
				data, err := yaml.Marshal(redacted)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(w, string(data))
			case "toml":
				if err := toml.NewEncoder(w).Encode(redacted); err != nil {
					return fmt.Errorf("failed to marshal config to TOML: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format: %s (use yaml, json or toml)", format)
			}
			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json, toml)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a YC365 configuration file for syntax and semantic errors.

Checks the configuration file for:
- Valid YAML or TOML syntax
- Valid values for enums
- Positive tour geometry and faucet amounts`,
		Example: `  # Validate current config
  yc365 config validate

  # Validate specific config file
  yc365 config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			cfg, err := GetGlobalConfig()
			if err != nil {
				fmt.Fprintf(w, "%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Fprintf(w, "   %v\n", err)
				return err
			}

			fmt.Fprintf(w, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			fmt.Fprintln(w, "Configuration summary:")
			fmt.Fprintf(w, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(w, "   AI Provider: %s (%s)\n", cfg.AI.Provider, cfg.AI.Model)
			fmt.Fprintf(w, "   AI Credential: %t\n", cfg.AI.APIKey != "")
			fmt.Fprintf(w, "   Theme / Language: %s / %s\n", cfg.UI.Theme, cfg.UI.Language)
			fmt.Fprintf(w, "   Tour State: %s\n", cfg.State.Backend)
			return nil
		},
	}

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths YC365 searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Configuration file search paths (in priority order):")
			fmt.Fprintln(w)

			for i, path := range config.GetConfigPaths() {
				exists := " (not found)"
				if fileExists(path) {
					exists = " " + emoji.GetEmoji("success") + " (exists)"
				}
				fmt.Fprintf(w, "  %d. %s%s\n", i+1, path, exists)
			}
			fmt.Fprintln(w)

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(w, "%s Current config file: %s\n", emoji.GetEmoji("target"), currentConfig)
			} else {
				fmt.Fprintln(w, "No config file found, using defaults")
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Environment variables with the YC365_ prefix override file settings")
		},
	}

	return pathCmd
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
