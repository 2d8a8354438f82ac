package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/go-termfmt"

	"github.com/yc365/storefront/internal/market"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// chanceEmoji picks a marker for which side the crowd favours
func chanceEmoji(chance int, opts *termfmt.TerminalOptions) string {
	switch {
	case chance >= 60:
		return termfmt.GetEmoji("info", opts)
	case chance <= 40:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("insight", opts)
	}
}

// createChanceBar draws the YES probability as a bar
func createChanceBar(chance int, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(float64(chance)/100, opts)
}

// expiresIn renders the time left on a market relative to now.
func expiresIn(m market.Market, now time.Time) string {
	d := m.ExpiresAt.Sub(now)
	switch {
	case d <= 0:
		return "ended"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func listingNow(l *Listing) time.Time {
	if !l.Query.Now.IsZero() {
		return l.Query.Now
	}
	if !l.GeneratedAt.IsZero() {
		return l.GeneratedAt
	}
	return time.Now()
}

func listingLang(l *Listing) string {
	if l.Query.Lang == "" {
		return "en"
	}
	return l.Query.Lang
}

func categoryLabel(id, lang string) string {
	if o, ok := market.FindOption(market.Categories, id); ok {
		return o.Label(lang)
	}
	if o, ok := market.FindOption(market.MoreCategories, id); ok {
		return o.Label(lang)
	}
	return id
}
