package tour

import "math"

// Params are the fixed dimensions the solver works with.
type Params struct {
	TooltipWidth  float64
	TooltipHeight float64
	Margin        float64
	// HeaderLine is the lowest coordinate the tooltip top may take so it never
	// covers the fixed header.
	HeaderLine    float64
	Inset         float64
	PillThreshold float64
	RoundedRadius float64
	PillRadius    float64
}

// PixelParams are the browser storefront dimensions.
func PixelParams() Params {
	return Params{
		TooltipWidth:  320,
		TooltipHeight: 220,
		Margin:        24,
		HeaderLine:    80,
		Inset:         6,
		PillThreshold: 120,
		RoundedRadius: 16,
		PillRadius:    999,
	}
}

// CellParams are the terminal equivalents of PixelParams.
func CellParams() Params {
	return Params{
		TooltipWidth:  44,
		TooltipHeight: 11,
		Margin:        2,
		HeaderLine:    3,
		Inset:         1,
		PillThreshold: 12,
		RoundedRadius: 1,
		PillRadius:    999,
	}
}

// Solver positions the spotlight and tooltip for a target box.
type Solver struct {
	p Params
}

func NewSolver(p Params) *Solver {
	return &Solver{p: p}
}

func (s *Solver) Params() Params { return s.p }

// Solve computes the layout for one frame. prev is the layout of the previous
// frame and is only consulted when the target reports zero width. Solve has
// no side effects.
func (s *Solver) Solve(prev Layout, target Rect, found bool, vp Viewport) Layout {
	p := s.p

	if !found {
		return Layout{
			Tooltip: Tooltip{
				Top:       (vp.Height - p.TooltipHeight) / 2,
				Left:      (vp.Width - p.TooltipWidth) / 2,
				Width:     p.TooltipWidth,
				Height:    p.TooltipHeight,
				Opacity:   1,
				Centered:  true,
				Placement: PlacementCenter,
			},
		}
	}

	// mid-transition: hold the tooltip where it was, hidden
	if target.Width == 0 {
		tip := prev.Tooltip
		tip.Width, tip.Height = p.TooltipWidth, p.TooltipHeight
		tip.Opacity = 0
		return Layout{Tooltip: tip}
	}

	radius := p.RoundedRadius
	if target.Width <= p.PillThreshold {
		radius = p.PillRadius
	}
	spot := Spotlight{Rect: target.Expand(p.Inset), BorderRadius: radius, Visible: true}

	placement := PlacementBelow
	top := target.Bottom() + p.Margin
	left := target.Left + target.Width/2 - p.TooltipWidth/2

	if top+p.TooltipHeight > vp.Height {
		placement = PlacementAbove
		top = target.Top - p.TooltipHeight - p.Margin
		if top < p.HeaderLine {
			top = target.Top
			if target.Left > p.TooltipWidth+p.Margin {
				placement = PlacementLeft
				left = target.Left - p.TooltipWidth - p.Margin
			} else {
				placement = PlacementRight
				left = target.Right() + p.Margin
			}
		}
	}

	left = clamp(left, p.Margin, vp.Width-p.TooltipWidth-p.Margin)
	top = clamp(top, p.Margin, vp.Height-p.TooltipHeight-p.Margin)
	top = math.Max(p.HeaderLine, top)

	return Layout{
		Spotlight: spot,
		Tooltip: Tooltip{
			Top:       top,
			Left:      left,
			Width:     p.TooltipWidth,
			Height:    p.TooltipHeight,
			Opacity:   1,
			Placement: placement,
		},
	}
}

// clamp bounds v to [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
