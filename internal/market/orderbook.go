package market

import (
	"math"
	"math/rand"
)

// Level is one price level of the mock book.
type Level struct {
	Price float64 `json:"price"`
	Size  int     `json:"size"`
	Total int     `json:"total"` // cumulative size from the best price
}

// OrderBook is a display-only book around a base price.
type OrderBook struct {
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}

// GenerateOrderBook builds depth bids and asks one cent apart around base.
// Sizes are drawn from rng in [100, 5100).
func GenerateOrderBook(base float64, depth int, rng *rand.Rand) OrderBook {
	book := OrderBook{
		Bids: make([]Level, 0, depth),
		Asks: make([]Level, 0, depth),
	}
	var bidTotal, askTotal int
	for i := 1; i <= depth; i++ {
		bidSize := rng.Intn(5000) + 100
		askSize := rng.Intn(5000) + 100
		bidTotal += bidSize
		askTotal += askSize
		book.Bids = append(book.Bids, Level{Price: cents(base - float64(i)*0.01), Size: bidSize, Total: bidTotal})
		book.Asks = append(book.Asks, Level{Price: cents(base + float64(i)*0.01), Size: askSize, Total: askTotal})
	}
	return book
}

// Spread is the gap between the best ask and the best bid.
func (b OrderBook) Spread() float64 {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return 0
	}
	return cents(b.Asks[0].Price - b.Bids[0].Price)
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
