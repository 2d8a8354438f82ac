// Package formatter renders market listings for the markets command.
package formatter

import (
	"fmt"
	"time"

	"github.com/yc365/storefront/internal/market"
)

// Listing is a filtered, sorted slice of the catalog plus the query that
// produced it.
type Listing struct {
	Markets     []market.Market
	Query       market.Query
	GeneratedAt time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(listing *Listing) ([]byte, error)
}

// New returns the formatter for an --output value.
func New(name string, color, emoji bool) (Formatter, error) {
	switch name {
	case "", "text", "terminal":
		return NewTerminal(color, emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: text, json, markdown, csv)", name)
	}
}
