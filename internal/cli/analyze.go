package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/ai"
	"github.com/yc365/storefront/internal/analysis"
	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/market"
)

var analyzeTimeout time.Duration

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <market-id | question>",
		Short: "Get an AI summary of a market",
		Long: `Ask the configured AI provider for a short outlook on a market.

The argument is a market id from the catalog or any free-form question. When
no API key is configured, or the provider fails, a fixed notice is printed
instead of an error.

Examples:
  yc365 analyze btc-150k
  yc365 analyze "Will it snow in London on Christmas Day?"
  yc365 analyze eth-etf-flows -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (default from config)")

	return cmd
}

// analysisOutput is the JSON form of an analyze result.
type analysisOutput struct {
	MarketID   string `json:"market_id,omitempty"`
	Question   string `json:"question"`
	Insight    string `json:"insight"`
	Configured bool   `json:"configured"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	log := newLogger("analyze")

	out := analysisOutput{Question: strings.Join(args, " ")}
	if len(args) == 1 {
		if mk, ok := market.Find(market.Catalog(time.Now()), args[0]); ok {
			out.MarketID = mk.ID
			out.Question = mk.Title(currentLanguage(cfg))
		}
	}

	svc, err := analysis.FromConfig(cfg.AI, log)
	if ai.IsConfigurationError(err) {
		return fmt.Errorf("invalid ai settings for provider %q: %w", cfg.AI.Provider, err)
	}
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer func() { _ = svc.Close() }()
	out.Configured = svc.Configured()

	timeout := analyzeTimeout
	if !cmd.Flag("timeout").Changed {
		timeout = cfg.AI.Timeout
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing with %s (%s)...\n", cfg.AI.Provider, cfg.AI.Model)
	}
	out.Insight = svc.AnalyzeMarket(ctx, out.Question)

	w := cmd.OutOrStdout()
	switch getOutputFormat() {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "markdown", "md":
		fmt.Fprintf(w, "## %s\n\n%s\n", out.Question, out.Insight)
	default:
		fmt.Fprintf(w, "%s %s\n\n%s\n", emoji.GetEmoji("brain"), out.Question, out.Insight)
	}
	return nil
}
