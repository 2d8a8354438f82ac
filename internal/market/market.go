// Package market holds the static market catalog and the client-side
// simulations around it: filtering, the mock order book and the trade
// ticket arithmetic.
package market

import (
	"fmt"
	"time"
)

// Market is one prediction market.
type Market struct {
	ID           string            `json:"id" yaml:"id"`
	Titles       map[string]string `json:"titles" yaml:"titles"`
	Category     string            `json:"category" yaml:"category"`
	Chance       int               `json:"chance" yaml:"chance"` // YES probability in percent
	Volume       float64           `json:"volume" yaml:"volume"`
	Volume24h    float64           `json:"volume_24h" yaml:"volume_24h"`
	Liquidity    float64           `json:"liquidity" yaml:"liquidity"`
	CreatedAt    time.Time         `json:"created_at" yaml:"created_at"`
	ExpiresAt    time.Time         `json:"expires_at" yaml:"expires_at"`
	CommentCount int               `json:"comment_count" yaml:"comment_count"`
	Featured     bool              `json:"featured" yaml:"featured"`
	Rules        string            `json:"rules" yaml:"rules"` // markdown
}

// Title returns the title in lang, falling back to English.
func (m Market) Title(lang string) string {
	if t, ok := m.Titles[lang]; ok && t != "" {
		return t
	}
	return m.Titles["en"]
}

// PriceYes is the YES share price in dollars.
func (m Market) PriceYes() float64 { return float64(m.Chance) / 100 }

// PriceNo is the NO share price in dollars.
func (m Market) PriceNo() float64 { return float64(100-m.Chance) / 100 }

// Option is a selectable category, filter or sort entry.
type Option struct {
	ID     string
	Labels map[string]string
}

// Label returns the option label in lang.
func (o Option) Label(lang string) string {
	if l, ok := o.Labels[lang]; ok {
		return l
	}
	return o.Labels["en"]
}

func opt(id, en, zh string) Option {
	return Option{ID: id, Labels: map[string]string{"en": en, "zh": zh}}
}

// Categories are the top-level category tabs.
var Categories = []Option{
	opt("all", "All", "全部"),
	opt("trending", "Trending", "热门"),
	opt("new", "New", "最新"),
	opt("politics", "Politics", "政治"),
	opt("crypto", "Crypto", "加密货币"),
	opt("sports", "Sports", "体育"),
	opt("tech", "Tech", "科技"),
	opt("pop", "Pop Culture", "流行文化"),
	opt("business", "Business", "商业"),
	opt("science", "Science", "科学"),
}

// MoreCategories sit behind the "more" menu.
var MoreCategories = []Option{
	opt("activity", "Activity", "动态"),
	opt("leaderboard", "Leaderboard", "排行榜"),
	opt("hot", "Hot", "火爆"),
}

// Filters are the quick filters under the category tabs.
var Filters = []Option{
	opt("all", "All", "全部"),
	opt("ending-soon", "Ending Soon", "即将结束"),
	opt("high-volume", "High Volume", "高交易量"),
	opt("new", "New", "新上线"),
	opt("closing-today", "Closing Today", "今日截止"),
}

// Sorts are the sort menu entries.
var Sorts = []Option{
	opt(SortCreated, "Newest", "最新创建"),
	opt(SortExpiry, "Ending Soonest", "即将到期"),
	opt(SortTotalVolume, "Total Volume", "总交易量"),
	opt(SortVolume24h, "24h Volume", "24小时交易量"),
	opt(SortLiquidity, "Liquidity", "流动性"),
}

const (
	SortCreated     = "created_at"
	SortExpiry      = "expires_at"
	SortTotalVolume = "total_volume"
	SortVolume24h   = "24h_volume"
	SortLiquidity   = "liquidity"
)

// FindOption looks id up in opts.
func FindOption(opts []Option, id string) (Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// FormatVolume renders a dollar amount the way cards show it.
func FormatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
