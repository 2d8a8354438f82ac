package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/emoji"
	"github.com/yc365/storefront/internal/state"
	"github.com/yc365/storefront/internal/tour"
	"github.com/yc365/storefront/internal/ui"
)

func newTourCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Inspect and reset the onboarding tour",
		Long: `Inspect and reset the onboarding tour.

The storefront remembers that the tour was seen in a single flag. Reset it to
have the tour start again on the next launch.`,
	}

	cmd.AddCommand(newTourStatusCommand())
	cmd.AddCommand(newTourResetCommand())
	cmd.AddCommand(newTourStepsCommand())
	cmd.AddCommand(newTourLayoutCommand())

	return cmd
}

func openStore(cfg *config.Config) (state.FlagStore, error) {
	store, err := state.Open(cfg.State.Backend, cfg.State.AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open tour state: %w", err)
	}
	return store, nil
}

func newTourStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the tour has been seen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetGlobalConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			seen, err := store.TourSeen()
			if err != nil {
				return fmt.Errorf("failed to read tour flag: %w", err)
			}

			w := cmd.OutOrStdout()
			if getOutputFormat() == "json" {
				data, _ := json.Marshal(map[string]any{"key": state.TourSeenKey, "seen": seen, "backend": cfg.State.Backend})
				fmt.Fprintln(w, string(data))
				return nil
			}
			if seen {
				fmt.Fprintf(w, "%s Tour completed (%s = true)\n", emoji.GetEmoji("success"), state.TourSeenKey)
			} else {
				fmt.Fprintf(w, "%s Tour not seen yet, it starts on the next launch\n", emoji.GetEmoji("sparkles"))
			}
			return nil
		},
	}
}

func newTourResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the seen flag so the tour starts again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetGlobalConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if err := store.ResetTour(); err != nil {
				return fmt.Errorf("failed to reset tour flag: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Tour reset\n", emoji.GetEmoji("success"))
			return nil
		},
	}
}

func newTourStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the tour steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetGlobalConfig()
			if err != nil {
				return err
			}
			steps := tour.Steps(currentLanguage(cfg))

			w := cmd.OutOrStdout()
			if getOutputFormat() == "json" {
				data, err := json.MarshalIndent(steps, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			for i, s := range steps {
				gate := ""
				if s.Gate {
					gate = "  [gate]"
				}
				fmt.Fprintf(w, "%s  %s %-22s %s%s\n", tour.Counter(i, len(steps)), emoji.GetEmoji(s.Icon), s.Title, s.TargetID, gate)
			}
			return nil
		},
	}
}

func newTourLayoutCommand() *cobra.Command {
	var (
		viewport string
		target   string
		pixels   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Solve one tour frame for a target box",
		Long: `Solve the spotlight and tooltip placement for a single target and print it.

Without --target the target counts as missing and the tooltip is centred.
Geometry is in terminal cells unless --pixels selects the browser sizes.`,
		Example: `  yc365 tour layout --viewport 120x40 --target 0,30,12,1
  yc365 tour layout --pixels --viewport 1280x800 --target 700,100,300,200 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetGlobalConfig()
			if err != nil {
				return err
			}
			vp, err := parseViewport(viewport)
			if err != nil {
				return err
			}
			rect, found, err := parseRect(target)
			if err != nil {
				return err
			}

			params := ui.SolverParams(cfg.Tour)
			if pixels {
				params = tour.PixelParams()
			}
			layout := tour.NewSolver(params).Solve(tour.Layout{}, rect, found, vp)

			w := cmd.OutOrStdout()
			if getOutputFormat() == "json" {
				data, err := json.MarshalIndent(layout, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			tip := layout.Tooltip
			fmt.Fprintf(w, "placement: %s\n", tip.Placement)
			fmt.Fprintf(w, "tooltip:   %s opacity=%g\n", tip.Bounds(), tip.Opacity)
			if layout.Spotlight.Visible {
				fmt.Fprintf(w, "spotlight: %s radius=%g\n", layout.Spotlight.Rect, layout.Spotlight.BorderRadius)
			} else {
				fmt.Fprintln(w, "spotlight: hidden")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&viewport, "viewport", "120x40", "viewport as WIDTHxHEIGHT")
	cmd.Flags().StringVar(&target, "target", "", "target box as top,left,width,height")
	cmd.Flags().BoolVar(&pixels, "pixels", false, "use browser pixel geometry")

	return cmd
}

func parseViewport(s string) (tour.Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return tour.Viewport{}, fmt.Errorf("invalid viewport %q (want WIDTHxHEIGHT)", s)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return tour.Viewport{}, fmt.Errorf("invalid viewport %q (want WIDTHxHEIGHT)", s)
	}
	return tour.Viewport{Width: width, Height: height}, nil
}

// parseRect reads "top,left,width,height". An empty string is a missing
// target.
func parseRect(s string) (tour.Rect, bool, error) {
	if s == "" {
		return tour.Rect{}, false, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return tour.Rect{}, false, fmt.Errorf("invalid target %q (want top,left,width,height)", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return tour.Rect{}, false, fmt.Errorf("invalid target %q: %w", s, err)
		}
		v[i] = f
	}
	return tour.Rect{Top: v[0], Left: v[1], Width: v[2], Height: v[3]}, true, nil
}
