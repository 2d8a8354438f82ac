package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
)

// csvFormatter formats markets as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(listing *Listing) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	lang := listingLang(listing)

	headers := []string{
		"ID",
		"Title",
		"Category",
		"Chance",
		"Price Yes",
		"Price No",
		"Volume",
		"Volume 24h",
		"Liquidity",
		"Created At",
		"Expires At",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range listing.Markets {
		record := []string{
			m.ID,
			escapeCSVString(m.Title(lang)),
			m.Category,
			fmt.Sprintf("%d", m.Chance),
			fmt.Sprintf("%.2f", m.PriceYes()),
			fmt.Sprintf("%.2f", m.PriceNo()),
			fmt.Sprintf("%.0f", m.Volume),
			fmt.Sprintf("%.0f", m.Volume24h),
			fmt.Sprintf("%.0f", m.Liquidity),
			formatCSVTime(m.CreatedAt),
			formatCSVTime(m.ExpiresAt),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// escapeCSVString flattens newlines
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
