package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderBook(t *testing.T) {
	book := GenerateOrderBook(0.32, 8, rand.New(rand.NewSource(1)))

	require.Len(t, book.Bids, 8)
	require.Len(t, book.Asks, 8)
	for i := range book.Bids {
		step := float64(i+1) * 0.01
		assert.InDelta(t, 0.32-step, book.Bids[i].Price, 1e-9)
		assert.InDelta(t, 0.32+step, book.Asks[i].Price, 1e-9)
		for _, l := range []Level{book.Bids[i], book.Asks[i]} {
			assert.GreaterOrEqual(t, l.Size, 100)
			assert.Less(t, l.Size, 5100)
		}
	}
	assert.Equal(t, book.Bids[0].Size, book.Bids[0].Total)
	assert.Equal(t, book.Bids[0].Total+book.Bids[1].Size, book.Bids[1].Total)
	assert.InDelta(t, 0.02, book.Spread(), 1e-9)
}

func TestGenerateOrderBookDeterministicWithSeed(t *testing.T) {
	a := GenerateOrderBook(0.5, 4, rand.New(rand.NewSource(42)))
	b := GenerateOrderBook(0.5, 4, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestPriceHistory(t *testing.T) {
	h := PriceHistory(32, 48, rand.New(rand.NewSource(7)))
	require.Len(t, h, 48)
	assert.InDelta(t, 0.32, h[len(h)-1], 1e-9)
	for i, p := range h {
		assert.GreaterOrEqual(t, p, 0.01)
		assert.LessOrEqual(t, p, 0.99)
		if i > 0 {
			assert.LessOrEqual(t, h[i]-h[i-1], 0.0201)
			assert.GreaterOrEqual(t, h[i]-h[i-1], -0.0201)
		}
	}
	assert.Nil(t, PriceHistory(32, 0, rand.New(rand.NewSource(1))))
}
