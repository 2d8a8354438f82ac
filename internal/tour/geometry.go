package tour

import "fmt"

// Rect is an axis-aligned box in viewport coordinates. Units are whatever the
// host measures in: pixels in a browser, cells in a terminal.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

// Expand grows the box by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Top: r.Top - d, Left: r.Left - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

func (r Rect) String() string {
	return fmt.Sprintf("{top:%g left:%g width:%g height:%g}", r.Top, r.Left, r.Width, r.Height)
}

// Viewport is the visible area the tooltip must stay inside.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement records which branch positioned the tooltip.
type Placement int

const (
	PlacementNone Placement = iota
	PlacementCenter
	PlacementBelow
	PlacementAbove
	PlacementLeft
	PlacementRight
)

func (p Placement) String() string {
	switch p {
	case PlacementCenter:
		return "center"
	case PlacementBelow:
		return "below"
	case PlacementAbove:
		return "above"
	case PlacementLeft:
		return "left"
	case PlacementRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText renders the placement name in JSON output.
func (p Placement) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses a placement name written by MarshalText.
func (p *Placement) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*p = PlacementNone
	case "center":
		*p = PlacementCenter
	case "below":
		*p = PlacementBelow
	case "above":
		*p = PlacementAbove
	case "left":
		*p = PlacementLeft
	case "right":
		*p = PlacementRight
	default:
		return fmt.Errorf("unknown placement %q", b)
	}
	return nil
}

// Spotlight is the highlight ring drawn around the target.
type Spotlight struct {
	Rect
	BorderRadius float64 `json:"border_radius"`
	Visible      bool    `json:"visible"`
}

// Tooltip is the explanatory panel.
type Tooltip struct {
	Top       float64   `json:"top"`
	Left      float64   `json:"left"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Opacity   float64   `json:"opacity"`
	Centered  bool      `json:"centered"`
	Placement Placement `json:"placement"`
}

// Bounds returns the tooltip box.
func (t Tooltip) Bounds() Rect {
	return Rect{Top: t.Top, Left: t.Left, Width: t.Width, Height: t.Height}
}

// Layout is one solved frame.
type Layout struct {
	Spotlight Spotlight `json:"spotlight"`
	Tooltip   Tooltip   `json:"tooltip"`
}
