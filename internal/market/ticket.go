package market

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Side is buy or sell.
type Side string

// OrderType is market or limit.
type OrderType string

// Outcome is the share being traded.
type Outcome string

const (
	Buy  Side = "buy"
	Sell Side = "sell"

	MarketOrder OrderType = "market"
	LimitOrder  OrderType = "limit"

	Yes Outcome = "yes"
	No  Outcome = "no"
)

// maxSpend is the dollar amount the Max button fills.
const maxSpend = 100.0

// Ticket is the order entry form. Inputs are kept as typed text; anything
// that does not parse counts as zero.
type Ticket struct {
	Side       Side
	Type       OrderType
	Outcome    Outcome
	Shares     string
	LimitPrice string // cents

	chance int
}

// NewTicket opens a buy-market-YES ticket for a market at chance percent.
func NewTicket(chance int) *Ticket {
	t := &Ticket{Side: Buy, Type: MarketOrder, chance: chance}
	t.SetOutcome(Yes)
	return t
}

// SetOutcome switches the share and resets the limit price to its market
// price.
func (t *Ticket) SetOutcome(o Outcome) {
	t.Outcome = o
	t.LimitPrice = strconv.FormatFloat(t.CurrentPrice()*100, 'f', 1, 64)
}

func (t *Ticket) PriceYes() float64 { return float64(t.chance) / 100 }
func (t *Ticket) PriceNo() float64  { return float64(100-t.chance) / 100 }

// CurrentPrice is the market price of the selected outcome in dollars.
func (t *Ticket) CurrentPrice() float64 {
	if t.Outcome == No {
		return t.PriceNo()
	}
	return t.PriceYes()
}

// SharesValue is the parsed share count.
func (t *Ticket) SharesValue() float64 { return parseNumber(t.Shares) }

// LimitDollars is the parsed limit price in dollars.
func (t *Ticket) LimitDollars() float64 { return parseNumber(t.LimitPrice) / 100 }

// ExecPrice is the price the cost is computed at.
func (t *Ticket) ExecPrice() float64 {
	if t.Type == LimitOrder {
		return t.LimitDollars()
	}
	return t.CurrentPrice()
}

func (t *Ticket) Cost() float64 { return t.SharesValue() * t.ExecPrice() }

// PotentialReturn pays $1 per share.
func (t *Ticket) PotentialReturn() float64 { return t.SharesValue() }

// ReturnPercent is the rounded profit percentage, "0" when nothing is spent.
func (t *Ticket) ReturnPercent() string {
	cost := t.Cost()
	if cost <= 0 {
		return "0"
	}
	return formatRounded((t.PotentialReturn() - cost) / cost * 100)
}

// FillMax sets the share count to what $100 buys at the execution price. It
// reports false and changes nothing when the price is zero.
func (t *Ticket) FillMax() bool {
	price := t.ExecPrice()
	if price <= 0 {
		return false
	}
	t.Shares = formatRounded(maxSpend / price)
	return true
}

// Quote is a snapshot of the ticket numbers.
type Quote struct {
	Side            Side      `json:"side"`
	Type            OrderType `json:"type"`
	Outcome         Outcome   `json:"outcome"`
	Price           float64   `json:"price"`
	Shares          float64   `json:"shares"`
	Cost            float64   `json:"cost"`
	PotentialReturn float64   `json:"potential_return"`
	ReturnPercent   string    `json:"return_percent"`
}

func (t *Ticket) Quote() Quote {
	return Quote{
		Side:            t.Side,
		Type:            t.Type,
		Outcome:         t.Outcome,
		Price:           t.ExecPrice(),
		Shares:          t.SharesValue(),
		Cost:            t.Cost(),
		PotentialReturn: t.PotentialReturn(),
		ReturnPercent:   t.ReturnPercent(),
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber reads the leading decimal number of s, or 0.
func parseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatRounded rounds half away from zero to an integer string.
func formatRounded(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
