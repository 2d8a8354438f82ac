package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// ListingOutput is the JSON document for a listing
type ListingOutput struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Query       QueryOutput     `json:"query"`
	Count       int             `json:"count"`
	Markets     []*MarketOutput `json:"markets"`
}

// QueryOutput echoes the query
type QueryOutput struct {
	Category string `json:"category,omitempty"`
	Filter   string `json:"filter,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Text     string `json:"text,omitempty"`
	Lang     string `json:"lang"`
}

// MarketOutput is one market with derived prices
type MarketOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Chance    int       `json:"chance"`
	PriceYes  float64   `json:"price_yes"`
	PriceNo   float64   `json:"price_no"`
	Volume    float64   `json:"volume"`
	Volume24h float64   `json:"volume_24h"`
	Liquidity float64   `json:"liquidity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Comments  int       `json:"comments"`
}

func (f *jsonFormatter) Format(listing *Listing) ([]byte, error) {
	lang := listingLang(listing)
	out := &ListingOutput{
		GeneratedAt: listing.GeneratedAt,
		Query: QueryOutput{
			Category: listing.Query.Category,
			Filter:   listing.Query.Filter,
			Sort:     listing.Query.Sort,
			Text:     listing.Query.Text,
			Lang:     lang,
		},
		Count:   len(listing.Markets),
		Markets: make([]*MarketOutput, 0, len(listing.Markets)),
	}

	for _, m := range listing.Markets {
		out.Markets = append(out.Markets, &MarketOutput{
			ID:        m.ID,
			Title:     m.Title(lang),
			Category:  m.Category,
			Chance:    m.Chance,
			PriceYes:  m.PriceYes(),
			PriceNo:   m.PriceNo(),
			Volume:    m.Volume,
			Volume24h: m.Volume24h,
			Liquidity: m.Liquidity,
			CreatedAt: m.CreatedAt,
			ExpiresAt: m.ExpiresAt,
			Comments:  m.CommentCount,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
