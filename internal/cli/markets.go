package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/formatter"
	"github.com/yc365/storefront/internal/market"
	"github.com/yc365/storefront/internal/ui"
)

var (
	marketsCategory   string
	marketsFilter     string
	marketsSort       string
	marketsLimit      int
	marketsOutputFile string
)

func newMarketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets [search]",
		Short: "List markets",
		Long: `List markets from the catalog without opening the storefront.

Search text is matched fuzzily against market titles in both languages and
ranks results by match quality.

Examples:
  yc365 markets
  yc365 markets --category crypto --sort liquidity
  yc365 markets bitcoin -o json
  yc365 markets --filter ending-soon -o csv --output-file soon.csv`,
		Args: cobra.ArbitraryArgs,
		RunE: runMarkets,
	}

	cmd.Flags().StringVar(&marketsCategory, "category", "", "category (all, trending, new, politics, crypto, sports, tech, pop, business, science)")
	cmd.Flags().StringVar(&marketsFilter, "filter", "", "filter (all, ending-soon, high-volume, new, closing-today)")
	cmd.Flags().StringVar(&marketsSort, "sort", "", "sort (created_at, expires_at, total_volume, 24h_volume, liquidity)")
	cmd.Flags().IntVar(&marketsLimit, "limit", 0, "maximum markets to show (0 = all)")
	cmd.Flags().StringVar(&marketsOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runMarkets(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	q := market.Query{
		Category: pick(marketsCategory, cfg.Market.DefaultCategory),
		Filter:   pick(marketsFilter, cfg.Market.DefaultFilter),
		Sort:     pick(marketsSort, cfg.Market.DefaultSort),
		Text:     strings.Join(args, " "),
		Lang:     currentLanguage(cfg),
		Now:      time.Now(),
	}
	if err := validateQuery(q); err != nil {
		return err
	}

	markets := market.Apply(market.Catalog(q.Now), q)
	if marketsLimit > 0 && len(markets) > marketsLimit {
		markets = markets[:marketsLimit]
	}

	f, err := formatter.New(getOutputFormat(), !noColor && !ui.IsColorDisabled(), !isEmojiDisabled())
	if err != nil {
		return err
	}
	data, err := f.Format(&formatter.Listing{Markets: markets, Query: q, GeneratedAt: q.Now})
	if err != nil {
		return fmt.Errorf("failed to format markets: %w", err)
	}

	if marketsOutputFile != "" {
		if err := os.WriteFile(marketsOutputFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d markets to %s\n", len(markets), marketsOutputFile)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func validateQuery(q market.Query) error {
	if _, ok := market.FindOption(append(append([]market.Option{}, market.Categories...), market.MoreCategories...), q.Category); !ok {
		return fmt.Errorf("unknown category: %s", q.Category)
	}
	if _, ok := market.FindOption(market.Filters, q.Filter); !ok {
		return fmt.Errorf("unknown filter: %s", q.Filter)
	}
	if _, ok := market.FindOption(market.Sorts, q.Sort); !ok {
		return fmt.Errorf("unknown sort: %s", q.Sort)
	}
	return nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
