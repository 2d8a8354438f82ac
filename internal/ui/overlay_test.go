package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/yc365/storefront/internal/tour"
)

func blank(rows, cols int) []string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(".", cols)
	}
	return lines
}

func TestSplice(t *testing.T) {
	assert.Equal(t, "hello XYrld", splice("hello world", "XY", 6))
	assert.Equal(t, "ab  Z", splice("ab", "Z", 4))
	assert.Equal(t, "Ybc", splice("abc", "XY", -1))
	assert.Equal(t, "CDEFG", splice("abc", "ABCDEFG", -2))
	assert.Equal(t, "abc", splice("abc", "XY", -2))
	assert.Equal(t, "abc", splice("abc", "", 1))
}

func TestPlaceBoxClips(t *testing.T) {
	lines := placeBox(blank(3, 6), "ab\ncd\nef", 1, 2)
	assert.Equal(t, []string{"......", "..ab..", "..cd.."}, lines)
}

func TestDrawRing(t *testing.T) {
	plain := lipgloss.NewStyle()
	lines := drawRing(blank(4, 7), cellRect{top: 0, left: 1, width: 5, height: 3}, false, plain)
	assert.Equal(t, ".┌───┐.", lines[0])
	assert.Equal(t, ".│...│.", lines[1])
	assert.Equal(t, ".└───┘.", lines[2])
	assert.Equal(t, ".......", lines[3])

	lines = drawRing(blank(3, 5), cellRect{top: 0, left: 0, width: 5, height: 3}, true, plain)
	assert.Equal(t, "╭───╮", lines[0])
	assert.Equal(t, "╰───╯", lines[2])
}

func TestDimOutsideKeepsHoleText(t *testing.T) {
	lines := []string{"abcdef", "ghijkl"}
	out := dimOutside(lines, &cellRect{top: 1, left: 2, width: 2, height: 1}, lipgloss.NewStyle().Faint(true))
	assert.Equal(t, "abcdef", ansi.Strip(out[0]))
	assert.Equal(t, "ghijkl", ansi.Strip(out[1]))
	assert.Contains(t, out[1], "ij")
}

func TestOverlayTourPlacesTooltip(t *testing.T) {
	st := GetStyles(ThemeFor(tour.ThemeLight))
	screen := strings.Join(blank(10, 20), "\n")
	layout := tour.Layout{
		Spotlight: tour.Spotlight{Rect: tour.Rect{Top: 1, Left: 1, Width: 6, Height: 3}, Visible: true, BorderRadius: 1},
		Tooltip:   tour.Tooltip{Top: 5, Left: 4, Width: 8, Height: 2, Opacity: 1},
	}
	out := strings.Split(ansi.Strip(overlayTour(screen, layout, 999, "TIPTIP\nLINE2", st)), "\n")
	assert.Equal(t, ".┌────┐.............", out[1])
	assert.Equal(t, "....TIPTIP..........", out[5])
	assert.Equal(t, "....LINE2...........", out[6])

	layout.Tooltip.Opacity = 0
	out = strings.Split(ansi.Strip(overlayTour(screen, layout, 999, "TIPTIP", st)), "\n")
	assert.Equal(t, strings.Repeat(".", 20), out[5])
}
