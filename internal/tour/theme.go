package tour

import (
	"fmt"
	"sync"
)

// Theme selects the spotlight palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	case "":
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme: %s", s)
	}
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette are the spotlight colours for a theme. Alpha values are kept for
// hosts that can blend; terminals use the solid colours.
type Palette struct {
	Overlay      string
	OverlayAlpha float64
	Ring         string
	RingAlpha    float64
	Glow         string
}

// SpotlightColors returns the palette of t.
func SpotlightColors(t Theme) Palette {
	if t == ThemeDark {
		return Palette{Overlay: "#000000", OverlayAlpha: 0.75, Ring: "#FFFFFF", RingAlpha: 0.6, Glow: "#FFFFFF"}
	}
	return Palette{Overlay: "#0F172A", OverlayAlpha: 0.12, Ring: "#2563EB", RingAlpha: 0.4, Glow: "#2563EB"}
}

// ThemeFeed holds the current theme and pushes changes to subscribers.
type ThemeFeed struct {
	mu      sync.Mutex
	current Theme
	subs    map[int]chan Theme
	nextID  int
}

func NewThemeFeed(initial Theme) *ThemeFeed {
	if initial == "" {
		initial = ThemeLight
	}
	return &ThemeFeed{current: initial, subs: make(map[int]chan Theme)}
}

func (f *ThemeFeed) Current() Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Set changes the theme. Subscribers only ever see the latest value; a slow
// subscriber misses intermediate ones.
func (f *ThemeFeed) Set(t Theme) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t == f.current {
		return
	}
	f.current = t
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- t
	}
}

// Toggle flips the theme and returns the new one.
func (f *ThemeFeed) Toggle() Theme {
	next := f.Current().Other()
	f.Set(next)
	return next
}

// Subscribe returns a channel primed with the current theme and a cancel
// func that closes it.
func (f *ThemeFeed) Subscribe() (<-chan Theme, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	ch := make(chan Theme, 1)
	ch <- f.current
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
}
