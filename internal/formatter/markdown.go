package formatter

import (
	"fmt"
	"strings"

	"github.com/yc365/storefront/internal/market"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(listing *Listing) ([]byte, error) {
	var b strings.Builder
	lang := listingLang(listing)
	now := listingNow(listing)

	b.WriteString("# YC365 Markets\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	f.writeQueryTable(&b, listing)

	if len(listing.Markets) == 0 {
		b.WriteString("_No markets match._\n")
		return []byte(b.String()), nil
	}

	b.WriteString("## Markets\n\n")
	b.WriteString("| Market | Chance | Yes | No | Volume | 24h | Ends |\n")
	b.WriteString("|--------|-------:|----:|---:|-------:|----:|------|\n")
	for _, m := range listing.Markets {
		fmt.Fprintf(&b, "| %s | %d%% | %.0f¢ | %.0f¢ | %s | %s | %s |\n",
			escapeMarkdown(m.Title(lang)), m.Chance, m.PriceYes()*100, m.PriceNo()*100,
			market.FormatVolume(m.Volume), market.FormatVolume(m.Volume24h), expiresIn(m, now))
	}
	b.WriteString("\n")

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeQueryTable(b *strings.Builder, listing *Listing) {
	q := listing.Query
	b.WriteString("## Query\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Category | %s |\n", categoryLabel(orDefault(q.Category, "all"), listingLang(listing)))
	fmt.Fprintf(b, "| Filter | %s |\n", orDefault(q.Filter, "all"))
	fmt.Fprintf(b, "| Sort | %s |\n", orDefault(q.Sort, market.SortVolume24h))
	if q.Text != "" {
		fmt.Fprintf(b, "| Search | %s |\n", escapeMarkdown(q.Text))
	}
	fmt.Fprintf(b, "| Markets | %d |\n\n", len(listing.Markets))
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
