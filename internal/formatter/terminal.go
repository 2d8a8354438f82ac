package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yildizm/go-termfmt"

	"github.com/yc365/storefront/internal/market"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(listing *Listing) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, listing)
	f.writeSummary(&b, listing)

	if len(listing.Markets) == 0 {
		b.WriteString("No markets match.\n")
		return []byte(b.String()), nil
	}

	f.writeMarkets(&b, listing)
	return []byte(b.String()), nil
}

// writeHeader writes a boxed title, sized by display width so CJK titles line up
func (f *terminalFormatter) writeHeader(b *strings.Builder, listing *Listing) {
	header := "YC365 Markets"
	if listingLang(listing) == "zh" {
		header = "YC365 市场"
	}
	w := ansi.StringWidth(header)

	b.WriteString("╔" + strings.Repeat("═", w+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", w+2) + "╝\n\n")
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, listing *Listing) {
	q := listing.Query
	lang := listingLang(listing)

	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Query\n")

	var volume float64
	for _, m := range listing.Markets {
		volume += m.Volume
	}

	items := []termfmt.TreeItem{
		{Label: "Category", Value: categoryLabel(orDefault(q.Category, "all"), lang)},
		{Label: "Filter", Value: orDefault(q.Filter, "all")},
		{Label: "Sort", Value: orDefault(q.Sort, market.SortVolume24h)},
	}
	if q.Text != "" {
		items = append(items, termfmt.TreeItem{Label: "Search", Value: q.Text})
	}
	items = append(items,
		termfmt.TreeItem{Label: "Markets", Value: formatNumber(len(listing.Markets))},
		termfmt.TreeItem{Label: "Total Volume", Value: market.FormatVolume(volume), Last: true},
	)

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeMarkets(b *strings.Builder, listing *Listing) {
	lang := listingLang(listing)
	now := listingNow(listing)

	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Markets\n")

	items := make([]termfmt.TreeItem, 0, len(listing.Markets))
	for i, m := range listing.Markets {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", chanceEmoji(m.Chance, f.opts), m.Title(lang)),
			Value: fmt.Sprintf("(%d%% chance)", m.Chance),
			Children: []termfmt.TreeItem{
				{Label: createChanceBar(m.Chance, f.opts) + fmt.Sprintf(" YES %.0f¢ / NO %.0f¢", m.PriceYes()*100, m.PriceNo()*100)},
				{Label: "Vol", Value: fmt.Sprintf("%s (24h %s)", market.FormatVolume(m.Volume), market.FormatVolume(m.Volume24h))},
				{Label: "Ends", Value: expiresIn(m, now)},
				{Label: "ID", Value: m.ID, Last: true},
			},
			Last: i == len(listing.Markets)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
