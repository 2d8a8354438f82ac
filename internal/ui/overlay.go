package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yc365/storefront/internal/tour"
)

// cellRect is a tour rect snapped to terminal cells.
type cellRect struct {
	top, left, width, height int
}

func snap(r tour.Rect) cellRect {
	return cellRect{
		top:    int(math.Round(r.Top)),
		left:   int(math.Round(r.Left)),
		width:  int(math.Round(r.Width)),
		height: int(math.Round(r.Height)),
	}
}

// padLine right-pads s with spaces to at least width cells.
func padLine(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// splice writes seg over line starting at cell col. Cells past the end of
// line are padded first. Styles of the untouched parts are kept.
func splice(line, seg string, col int) string {
	if col < 0 {
		seg = ansi.TruncateLeft(seg, -col, "")
		col = 0
	}
	segW := ansi.StringWidth(seg)
	if segW == 0 {
		return line
	}
	line = padLine(line, col)
	left := ansi.Truncate(line, col, "")
	right := ansi.TruncateLeft(line, col+segW, "")
	return left + seg + right
}

// placeBox overlays a rendered block on lines with its top-left at (top, left).
// Rows outside lines are clipped.
func placeBox(lines []string, box string, top, left int) []string {
	for i, row := range strings.Split(box, "\n") {
		y := top + i
		if y < 0 || y >= len(lines) {
			continue
		}
		lines[y] = splice(lines[y], row, left)
	}
	return lines
}

// dimOutside fades every cell that is not inside hole. A nil hole fades
// everything.
func dimOutside(lines []string, hole *cellRect, dim lipgloss.Style) []string {
	fade := func(s string) string {
		plain := ansi.Strip(s)
		if plain == "" {
			return s
		}
		return dim.Render(plain)
	}
	for y, line := range lines {
		if hole == nil || y < hole.top || y >= hole.top+hole.height {
			lines[y] = fade(line)
			continue
		}
		l := max(hole.left, 0)
		r := max(hole.left+hole.width, l)
		line = padLine(line, r)
		before := ansi.Truncate(line, l, "")
		inside := ansi.TruncateLeft(ansi.Truncate(line, r, ""), l, "")
		after := ansi.TruncateLeft(line, r, "")
		lines[y] = fade(before) + inside + fade(after)
	}
	return lines
}

// drawRing draws a one-cell frame around r. Pill targets get rounded
// corners.
func drawRing(lines []string, r cellRect, pill bool, style lipgloss.Style) []string {
	if r.width < 2 || r.height < 2 {
		return lines
	}
	b := lipgloss.NormalBorder()
	if pill {
		b = lipgloss.RoundedBorder()
	}
	inner := r.width - 2
	top := style.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	bottom := style.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight)
	side := style.Render(b.Left)

	set := func(y int, seg string, x int) {
		if y >= 0 && y < len(lines) {
			lines[y] = splice(lines[y], seg, x)
		}
	}
	set(r.top, top, r.left)
	for y := r.top + 1; y < r.top+r.height-1; y++ {
		set(y, side, r.left)
		set(y, side, r.left+r.width-1)
	}
	set(r.top+r.height-1, bottom, r.left)
	return lines
}

// overlayTour composes the spotlight and tooltip on top of a rendered screen.
func overlayTour(screen string, layout tour.Layout, pillRadius float64, tip string, st *Styles) string {
	lines := strings.Split(screen, "\n")

	var hole *cellRect
	if layout.Spotlight.Visible {
		r := snap(layout.Spotlight.Rect)
		hole = &r
	}
	if st.Theme.Spotlight.OverlayAlpha >= 0.5 {
		lines = dimOutside(lines, hole, st.Dim)
	}
	if hole != nil {
		lines = drawRing(lines, *hole, layout.Spotlight.BorderRadius >= pillRadius, st.Ring)
	}
	if layout.Tooltip.Opacity > 0 && tip != "" {
		t := snap(layout.Tooltip.Bounds())
		lines = placeBox(lines, tip, t.top, t.left)
	}
	return strings.Join(lines, "\n")
}
