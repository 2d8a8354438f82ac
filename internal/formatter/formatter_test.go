package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yc365/storefront/internal/market"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testListing(lang string) *Listing {
	q := market.Query{Category: "crypto", Sort: market.SortVolume24h, Lang: lang, Now: testNow}
	return &Listing{
		Markets:     market.Apply(market.Catalog(testNow), q),
		Query:       q,
		GeneratedAt: testNow,
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "text", "json", "markdown", "md", "csv"} {
		f, err := New(name, false, false)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml", false, false)
	assert.EqualError(t, err, "unsupported output format: xml (must be one of: text, json, markdown, csv)")
}

func TestTerminalFormat(t *testing.T) {
	out, err := NewTerminal(false, false).Format(testListing("en"))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "YC365 Markets")
	assert.Contains(t, text, "Crypto")
	assert.Contains(t, text, "Will Bitcoin reach $150k by the end of the year?")
	assert.Contains(t, text, "(32% chance)")
	assert.Contains(t, text, "YES 32¢ / NO 68¢")

	// highest 24h volume first
	btc := strings.Index(text, "Bitcoin")
	eth := strings.Index(text, "ETH ETFs")
	assert.Less(t, btc, eth)
}

func TestTerminalFormatChinese(t *testing.T) {
	out, err := NewTerminal(false, false).Format(testListing("zh"))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "YC365 市场")
	assert.Contains(t, text, "加密货币")
	assert.Contains(t, text, "比特币年底前会达到 15 万美元吗？")
}

func TestTerminalFormatEmpty(t *testing.T) {
	out, err := NewTerminal(false, false).Format(&Listing{Query: market.Query{Text: "zzzz"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No markets match.")
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(testListing("en"))
	require.NoError(t, err)

	var doc ListingOutput
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "crypto", doc.Query.Category)
	assert.Equal(t, len(doc.Markets), doc.Count)
	require.NotEmpty(t, doc.Markets)
	assert.Equal(t, "btc-150k", doc.Markets[0].ID)
	assert.InDelta(t, 0.32, doc.Markets[0].PriceYes, 1e-9)
	assert.InDelta(t, 0.68, doc.Markets[0].PriceNo, 1e-9)
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdown().Format(testListing("en"))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "# YC365 Markets")
	assert.Contains(t, text, "| Category | Crypto |")
	assert.Contains(t, text, "| Will Bitcoin reach $150k by the end of the year? | 32% | 32¢ | 68¢ |")
}

func TestCSVFormat(t *testing.T) {
	listing := testListing("en")
	out, err := NewCSV().Format(listing)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(listing.Markets)+1)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "btc-150k", records[1][0])
	assert.Equal(t, "0.32", records[1][4])
}

func TestExpiresIn(t *testing.T) {
	m := market.Market{}
	tests := []struct {
		left time.Duration
		want string
	}{
		{-time.Minute, "ended"},
		{30 * time.Minute, "30m"},
		{5 * time.Hour, "5h"},
		{72 * time.Hour, "3d"},
	}
	for _, tt := range tests {
		m.ExpiresAt = testNow.Add(tt.left)
		assert.Equal(t, tt.want, expiresIn(m, testNow))
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
