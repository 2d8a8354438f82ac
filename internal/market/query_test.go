package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ids(ms []Market) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestApplyCategory(t *testing.T) {
	got := Apply(Catalog(now), Query{Category: "crypto", Now: now})
	require.NotEmpty(t, got)
	for _, m := range got {
		assert.Equal(t, "crypto", m.Category)
	}
	assert.Len(t, Apply(Catalog(now), Query{Category: "all", Now: now}), len(seeds))
}

func TestApplyFilters(t *testing.T) {
	markets := Catalog(now)

	for _, m := range Apply(markets, Query{Filter: "closing-today", Now: now}) {
		assert.LessOrEqual(t, m.ExpiresAt.Sub(now), 24*time.Hour, m.ID)
	}
	assert.Contains(t, ids(Apply(markets, Query{Filter: "closing-today", Now: now})), "sol-flip-eth")

	for _, m := range Apply(markets, Query{Filter: "high-volume", Now: now}) {
		assert.GreaterOrEqual(t, m.Volume, float64(highVolume), m.ID)
	}
	for _, m := range Apply(markets, Query{Filter: "new", Now: now}) {
		assert.LessOrEqual(t, now.Sub(m.CreatedAt), 7*24*time.Hour, m.ID)
	}
}

func TestSortBy(t *testing.T) {
	markets := Catalog(now)

	SortBy(markets, SortTotalVolume)
	assert.Equal(t, "btc-150k", markets[0].ID)

	SortBy(markets, SortExpiry)
	assert.Equal(t, "sol-flip-eth", markets[0].ID)

	SortBy(markets, SortCreated)
	assert.Equal(t, "tesla-robotaxi", markets[0].ID)

	before := ids(markets)
	SortBy(markets, "price")
	assert.Equal(t, before, ids(markets), "unknown sort keeps order")
}

func TestSearchFuzzy(t *testing.T) {
	got := Apply(Catalog(now), Query{Text: "bitcoin", Now: now})
	require.NotEmpty(t, got)
	assert.Equal(t, "btc-150k", got[0].ID)

	got = Apply(Catalog(now), Query{Text: "比特币", Lang: "zh", Now: now})
	require.NotEmpty(t, got)
	assert.Equal(t, "btc-150k", got[0].ID)

	assert.Empty(t, Apply(Catalog(now), Query{Text: "zzzzqqq", Now: now}))
}

func TestHotAndFeatured(t *testing.T) {
	hot := Hot(Catalog(now), 5)
	require.Len(t, hot, 5)
	assert.Equal(t, "btc-150k", hot[0].ID)
	for i := 1; i < len(hot); i++ {
		assert.GreaterOrEqual(t, hot[i-1].Volume24h, hot[i].Volume24h)
	}

	for _, m := range Featured(Catalog(now)) {
		assert.True(t, m.Featured)
	}
}

func TestMarketHelpers(t *testing.T) {
	m, ok := Find(Catalog(now), "fed-cut-dec")
	require.True(t, ok)
	assert.Equal(t, "美联储会在 12 月降息吗？", m.Title("zh"))
	assert.Equal(t, m.Titles["en"], m.Title("fr"))
	assert.InDelta(t, 0.71, m.PriceYes(), 1e-9)
	assert.InDelta(t, 0.29, m.PriceNo(), 1e-9)
	assert.Contains(t, m.Rules, "resolves **YES**")

	assert.Equal(t, "$48.2M", FormatVolume(48_200_000))
	assert.Equal(t, "$12.0K", FormatVolume(12_000))
	assert.Equal(t, "$950", FormatVolume(950))

	o, ok := FindOption(Sorts, SortVolume24h)
	require.True(t, ok)
	assert.Equal(t, "24小时交易量", o.Label("zh"))
}

func TestThreadPost(t *testing.T) {
	th := NewThread()
	_, err := th.Post("me", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	c, err := th.Post("me", "Buying YES")
	require.NoError(t, err)
	assert.Equal(t, 4, c.ID)
	assert.Equal(t, c, th.Comments()[0])
	assert.Len(t, th.Comments(), 4)
}
