package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yc365/storefront/internal/tour"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name tour.Theme

	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI colors
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Selected   lipgloss.Color

	// Market colors
	Yes lipgloss.Color
	No  lipgloss.Color

	// Tour overlay colors
	Spotlight tour.Palette
}

// buildTheme creates a theme with the given colors
func buildTheme(name tour.Theme, primary, secondary, accent, success, warning, errorColor, info, border, foreground, muted, selected, yes, no string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.Color(primary),
		Secondary:  lipgloss.Color(secondary),
		Accent:     lipgloss.Color(accent),
		Success:    lipgloss.Color(success),
		Warning:    lipgloss.Color(warning),
		Error:      lipgloss.Color(errorColor),
		Info:       lipgloss.Color(info),
		Border:     lipgloss.Color(border),
		Foreground: lipgloss.Color(foreground),
		Muted:      lipgloss.Color(muted),
		Selected:   lipgloss.Color(selected),
		Yes:        lipgloss.Color(yes),
		No:         lipgloss.Color(no),
		Spotlight:  tour.SpotlightColors(name),
	}
}

// Available themes
var (
	LightTheme = buildTheme(tour.ThemeLight,
		"#2563EB", "#6B7280", "#7C3AED",
		"#059669", "#D97706", "#DC2626", "#0891B2",
		"#D1D5DB", "#111827", "#6B7280", "#DBEAFE",
		"#16A34A", "#DC2626")

	DarkTheme = buildTheme(tour.ThemeDark,
		"#60A5FA", "#9CA3AF", "#A855F7",
		"#10B981", "#F59E0B", "#EF4444", "#06B6D4",
		"#374151", "#F9FAFB", "#9CA3AF", "#1E3A8A",
		"#22C55E", "#F87171")
)

// ThemeFor returns the theme named t.
func ThemeFor(t tour.Theme) Theme {
	if t == tour.ThemeDark {
		return DarkTheme
	}
	return LightTheme
}

var colorDisabled bool

// SetColorDisabled forces plain output (--no-color).
func SetColorDisabled(disabled bool) {
	colorDisabled = disabled
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Base styles
	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Interactive styles
	Button   lipgloss.Style
	Selected lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style

	// Layout styles
	Card       lipgloss.Style
	CardActive lipgloss.Style
	Panel      lipgloss.Style
	Hero       lipgloss.Style

	// Market styles
	Yes lipgloss.Style
	No  lipgloss.Style

	// Tour styles
	Tooltip lipgloss.Style
	Ring    lipgloss.Style
	Dim     lipgloss.Style
}

// GetStyles builds the styles of theme
func GetStyles(theme Theme) *Styles {
	s := &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true).
			Bold(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Hero: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),

		Yes: lipgloss.NewStyle().
			Foreground(theme.Yes).
			Bold(true),

		No: lipgloss.NewStyle().
			Foreground(theme.No).
			Bold(true),

		Tooltip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Ring: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Spotlight.Ring)).
			Bold(true),

		Dim: lipgloss.NewStyle().
			Faint(true),
	}

	if IsColorDisabled() {
		plain(s)
	}
	return s
}

// plain strips colours but keeps borders and emphasis
func plain(s *Styles) {
	for _, st := range []*lipgloss.Style{
		&s.Title, &s.Header, &s.Body, &s.Muted, &s.Success, &s.Warning, &s.Error,
		&s.Button, &s.Selected, &s.Tab, &s.TabOn, &s.Card, &s.CardActive, &s.Panel,
		&s.Hero, &s.Yes, &s.No, &s.Tooltip, &s.Ring, &s.Dim,
	} {
		*st = st.UnsetForeground().UnsetBackground().UnsetBorderForeground()
	}
	s.Selected = s.Selected.Reverse(true)
}
