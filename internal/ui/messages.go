package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yc365/storefront/internal/tour"
)

// frameMsg drives the tour sync loop.
type frameMsg time.Time

// tickerMsg scrolls the hot ticker and rotates the hero banner.
type tickerMsg time.Time

// analysisMsg carries the AI insight for a market.
type analysisMsg struct {
	marketID string
	text     string
}

// mintedMsg ends a simulated faucet mint.
type mintedMsg struct{}

// toastExpireMsg prunes expired toasts.
type toastExpireMsg time.Time

// themeMsg reports a theme change from the feed.
type themeMsg tour.Theme

const tickerInterval = 250 * time.Millisecond

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func tickerCmd() tea.Cmd {
	return tea.Tick(tickerInterval, func(t time.Time) tea.Msg {
		return tickerMsg(t)
	})
}

func mintCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return mintedMsg{}
	})
}

func expireCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(t time.Time) tea.Msg {
		return toastExpireMsg(t)
	})
}

// waitTheme blocks on the subscription. A closed channel ends the chain.
func waitTheme(ch <-chan tour.Theme) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return themeMsg(t)
	}
}

// Analyzer is the slice of the analysis service the UI needs.
type Analyzer interface {
	AnalyzeMarket(ctx context.Context, title string) string
}

func analyzeCmd(a Analyzer, marketID, title string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return analysisMsg{marketID: marketID, text: a.AnalyzeMarket(ctx, title)}
	}
}
