package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yc365/storefront/internal/analysis"
	"github.com/yc365/storefront/internal/config"
	"github.com/yc365/storefront/internal/logger"
	"github.com/yc365/storefront/internal/monitor"
	"github.com/yc365/storefront/internal/state"
	"github.com/yc365/storefront/internal/tour"
	"github.com/yc365/storefront/internal/ui"
)

var browseNoTour bool

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the storefront",
		Long: `Open the interactive storefront. This is also what running yc365 without a
subcommand does.

The guided tour starts on the first run. Press ? to replay it at any time.
Theme changes saved to the config file are picked up while running.

Examples:
  yc365
  yc365 browse --lang zh
  yc365 browse --no-tour`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	cmd.Flags().BoolVar(&browseNoTour, "no-tour", false, "do not auto-start the tour")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	if browseNoTour {
		cfg.Tour.AutoStart = false
	}

	// the TUI owns the terminal, so logs go to the configured file or nowhere
	closeLog, err := redirectLogs(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	log := newLogger("browse")

	store, err := state.Open(cfg.State.Backend, cfg.State.AppName)
	if err != nil {
		log.WarnWithFields("falling back to in-memory tour state", []logger.Field{logger.Error(err)})
		store = state.NewMemoryStore(false)
	}

	theme, err := tour.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return err
	}
	feed := tour.NewThemeFeed(theme)

	svc, err := analysis.FromConfig(cfg.AI, log)
	if err != nil {
		log.WarnWithFields("AI summaries disabled", []logger.Field{logger.Error(err)})
		svc = analysis.NewService(nil, cfg.AI.Model, cfg.AI.Temperature, log)
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if path := activeConfigPath(); path != "" {
		go watchTheme(ctx, path, feed, log)
	}

	metrics := monitor.NewSession()
	model := ui.NewModel(ui.Options{
		Config:   cfg,
		Store:    store,
		Feed:     feed,
		Analyzer: svc,
		Logger:   log,
		Metrics:  metrics,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("storefront exited: %w", err)
	}
	if isVerbose() {
		return metrics.WriteReport(cmd.ErrOrStderr(), getOutputFormat())
	}
	return nil
}

// redirectLogs points the shared logger at path, or discards output when
// path is empty. The returned func closes the file.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() {}, nil
	}
	// #nosec G304 - path comes from the user's own config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

// activeConfigPath is the file whose edits should be followed.
func activeConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path, ok := config.FindConfigFile(); ok {
		return path
	}
	return ""
}

// watchTheme republishes the theme whenever the config file changes.
func watchTheme(ctx context.Context, path string, feed *tour.ThemeFeed, log *logger.Logger) {
	w := config.NewWatcher(path, config.NewLoader())
	go func() {
		if err := w.Run(ctx); err != nil {
			log.WarnWithFields("config watcher stopped", []logger.Field{logger.Error(err)})
		}
	}()

	updates, errs := w.Updates(), w.Errors()
	for updates != nil || errs != nil {
		select {
		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			t, err := tour.ParseTheme(cfg.UI.Theme)
			if err != nil {
				continue
			}
			log.Debug("config reloaded, theme %s", t)
			feed.Set(t)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.WarnWithFields("config reload failed", []logger.Field{logger.Error(err)})
		}
	}
}
