package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	th, err = ParseTheme("")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	_, err = ParseTheme("sepia")
	assert.EqualError(t, err, "unknown theme: sepia")
}

func TestSpotlightColorsFollowTheme(t *testing.T) {
	light, dark := SpotlightColors(ThemeLight), SpotlightColors(ThemeDark)
	assert.NotEqual(t, light.Ring, dark.Ring)
	assert.Greater(t, dark.OverlayAlpha, light.OverlayAlpha)
}

func TestThemeFeedSubscribe(t *testing.T) {
	defer goleak.VerifyNone(t)
	feed := NewThemeFeed(ThemeLight)

	ch, cancel := feed.Subscribe()
	assert.Equal(t, ThemeLight, <-ch, "subscription is primed with the current theme")

	assert.Equal(t, ThemeDark, feed.Toggle())
	assert.Equal(t, ThemeDark, <-ch)

	// unchanged value is not republished
	feed.Set(ThemeDark)
	select {
	case th := <-ch:
		t.Fatalf("unexpected publish of %s", th)
	default:
	}

	// a slow subscriber sees only the latest theme
	feed.Set(ThemeLight)
	feed.Set(ThemeDark)
	assert.Equal(t, ThemeDark, <-ch)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok, "cancel closes the channel")

	feed.Set(ThemeLight)
	assert.Equal(t, ThemeLight, feed.Current())
}
