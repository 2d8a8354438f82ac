package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSparklineRender(t *testing.T) {
	s := NewSparkline([]float64{0.1, 0.2, 0.3, 0.4, 0.5}, 5)
	out := s.Render()
	assert.Equal(t, 5, utf8.RuneCountInString(out))
	assert.True(t, strings.HasPrefix(out, "▁"))
	assert.True(t, strings.HasSuffix(out, "█"))
}

func TestSparklineDownsamplesToWidth(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	out := NewSparkline(values, 20).Render()
	assert.Equal(t, 20, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "█"))
}

func TestSparklineFlatAndEmpty(t *testing.T) {
	assert.Equal(t, "", NewSparkline(nil, 10).Render())
	assert.Equal(t, "▅▅▅", NewSparkline([]float64{1, 1, 1}, 10).Render())
}

func TestBarRender(t *testing.T) {
	b := Bar{Width: 10, Filled: lipgloss.NewStyle(), Empty: lipgloss.NewStyle()}
	assert.Equal(t, "███░░░░░░░", b.Render(0.32))
	assert.Equal(t, "██████████", b.Render(2))
	assert.Equal(t, "░░░░░░░░░░", b.Render(-1))
	assert.Equal(t, "", Bar{}.Render(0.5))
}
