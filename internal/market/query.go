package market

import (
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// Query selects and orders markets.
type Query struct {
	Category string
	Filter   string
	Sort     string
	Text     string
	Lang     string
	Now      time.Time
}

const (
	highVolume  = 5_000_000
	endingSoon  = 7 * 24 * time.Hour
	newWindow   = 7 * 24 * time.Hour
	closesToday = 24 * time.Hour
	trendingMin = 500_000
)

// Apply filters and orders markets by q. The input slice is not modified.
// With a search text the fuzzy rank wins over the sort order.
func Apply(markets []Market, q Query) []Market {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]Market, 0, len(markets))
	for _, m := range markets {
		if matchCategory(m, q.Category, now) && matchFilter(m, q.Filter, now) {
			out = append(out, m)
		}
	}

	SortBy(out, q.Sort)

	if text := strings.TrimSpace(q.Text); text != "" {
		out = Search(out, text, q.Lang)
	}
	return out
}

func matchCategory(m Market, category string, now time.Time) bool {
	switch category {
	case "", "all", "activity", "leaderboard":
		return true
	case "trending", "hot":
		return m.Volume24h >= trendingMin
	case "new":
		return now.Sub(m.CreatedAt) <= newWindow
	default:
		return m.Category == category
	}
}

func matchFilter(m Market, filter string, now time.Time) bool {
	left := m.ExpiresAt.Sub(now)
	switch filter {
	case "ending-soon":
		return left > 0 && left <= endingSoon
	case "high-volume":
		return m.Volume >= highVolume
	case "new":
		return now.Sub(m.CreatedAt) <= newWindow
	case "closing-today":
		return left > 0 && left <= closesToday
	default:
		return true
	}
}

// SortBy orders markets in place. Unknown keys leave the order untouched.
func SortBy(markets []Market, key string) {
	var less func(a, b Market) bool
	switch key {
	case SortCreated:
		less = func(a, b Market) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortExpiry:
		less = func(a, b Market) bool { return a.ExpiresAt.Before(b.ExpiresAt) }
	case SortTotalVolume:
		less = func(a, b Market) bool { return a.Volume > b.Volume }
	case SortVolume24h:
		less = func(a, b Market) bool { return a.Volume24h > b.Volume24h }
	case SortLiquidity:
		less = func(a, b Market) bool { return a.Liquidity > b.Liquidity }
	default:
		return
	}
	sort.SliceStable(markets, func(i, j int) bool { return less(markets[i], markets[j]) })
}

// titles adapts a market slice to fuzzy.Source.
type titles struct {
	markets []Market
	lang    string
}

func (t titles) String(i int) string {
	m := t.markets[i]
	// search both languages so either script finds the market
	return m.Title(t.lang) + " " + m.Titles["en"] + " " + m.ID
}

func (t titles) Len() int { return len(t.markets) }

// Search ranks markets by fuzzy match of text against their titles.
func Search(markets []Market, text, lang string) []Market {
	matches := fuzzy.FindFrom(text, titles{markets: markets, lang: lang})
	out := make([]Market, 0, len(matches))
	for _, match := range matches {
		out = append(out, markets[match.Index])
	}
	return out
}

// Hot returns the n markets with the highest 24h volume.
func Hot(markets []Market, n int) []Market {
	out := make([]Market, len(markets))
	copy(out, markets)
	SortBy(out, SortVolume24h)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Featured returns the markets shown in the hero banner.
func Featured(markets []Market) []Market {
	var out []Market
	for _, m := range markets {
		if m.Featured {
			out = append(out, m)
		}
	}
	return out
}
