package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketPrices(t *testing.T) {
	tk := NewTicket(32)

	assert.InDelta(t, 0.32, tk.PriceYes(), 1e-9)
	assert.InDelta(t, 0.68, tk.PriceNo(), 1e-9)
	assert.Equal(t, "32.0", tk.LimitPrice, "limit defaults to the market price in cents")

	tk.SetOutcome(No)
	assert.Equal(t, "68.0", tk.LimitPrice)
	assert.InDelta(t, 0.68, tk.CurrentPrice(), 1e-9)
}

func TestTicketCost(t *testing.T) {
	tests := []struct {
		name      string
		orderType OrderType
		shares    string
		limit     string
		cost      float64
		retPct    string
	}{
		{"market order", MarketOrder, "100", "", 32, "213"},
		{"limit order uses the limit price", LimitOrder, "100", "50", 50, "100"},
		{"no shares", MarketOrder, "", "", 0, "0"},
		{"non-numeric shares count as zero", MarketOrder, "lots", "", 0, "0"},
		{"leading number is parsed", MarketOrder, "25abc", "", 8, "213"},
		{"non-numeric limit counts as zero", LimitOrder, "100", "cheap", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := NewTicket(32)
			tk.Type = tt.orderType
			tk.Shares = tt.shares
			if tt.limit != "" {
				tk.LimitPrice = tt.limit
			}
			assert.InDelta(t, tt.cost, tk.Cost(), 1e-9)
			assert.Equal(t, tt.retPct, tk.ReturnPercent())
			assert.Equal(t, tk.SharesValue(), tk.PotentialReturn())
		})
	}
}

func TestTicketFillMax(t *testing.T) {
	tk := NewTicket(32)
	assert.True(t, tk.FillMax())
	assert.Equal(t, "313", tk.Shares)

	tk.Type = LimitOrder
	tk.LimitPrice = "0"
	tk.Shares = "7"
	assert.False(t, tk.FillMax(), "zero price leaves shares alone")
	assert.Equal(t, "7", tk.Shares)
}

func TestTicketQuote(t *testing.T) {
	tk := NewTicket(80)
	tk.Side = Sell
	tk.Shares = "10"

	q := tk.Quote()
	assert.Equal(t, Sell, q.Side)
	assert.InDelta(t, 8.0, q.Cost, 1e-9)
	assert.Equal(t, "25", q.ReturnPercent)
}

func TestFormatRounded(t *testing.T) {
	assert.Equal(t, "3", formatRounded(2.5))
	assert.Equal(t, "0", formatRounded(-0.2))
	assert.Equal(t, "-3", formatRounded(-2.6))
}
