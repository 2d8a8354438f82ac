package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/logger"
	"github.com/yc365/storefront/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	language  string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yc365",
		Short: "YC365 prediction market storefront",
		Long: `YC365 is a terminal storefront for the YC365 prediction market testnet.

Browse markets, read order books and rules, place simulated trades, claim
test USDT from the faucet and get short AI summaries of any market. First
runs start a guided tour of the storefront.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			ui.SetColorDisabled(noColor)
		},
		RunE: runBrowse,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "interface language (en, zh)")

	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newMarketsCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newFaucetCommand())
	rootCmd.AddCommand(newTourCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "YC365 %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once and applies the global flags
// on top of it.
func GetGlobalConfig() (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if language != "" {
		cfg.UI.Language = language
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if cfg.UI.NoEmoji {
		emoji.SetEmojiDisabled(true)
	}
	if cfg.UI.ColorMode == "never" {
		ui.SetColorDisabled(true)
	}
	globalConfig = cfg
	return cfg, nil
}

// Global helpers
func isVerbose() bool {
	return verbose || (globalConfig != nil && globalConfig.Log.Verbose)
}

func getOutputFormat() string {
	return outputFmt
}

func isEmojiDisabled() bool {
	return noEmoji || emoji.IsEmojiDisabled()
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// currentLanguage is the flag value, then the config value, then English.
func currentLanguage(cfg *config.Config) string {
	if language != "" {
		return language
	}
	if cfg != nil && cfg.UI.Language != "" {
		return cfg.UI.Language
	}
	return "en"
}
