package tour

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yc365/storefront/internal/state"
)

func newLoop(t *testing.T) (*Controller, *AnchorMap, *SyncLoop) {
	t.Helper()
	ctrl := NewController(Steps("en"), state.NewMemoryStore(false), nil)
	anchors := NewAnchorMap()
	return ctrl, anchors, NewSyncLoop(ctrl, anchors, NewSolver(PixelParams()))
}

func TestSyncLoopTickInactive(t *testing.T) {
	_, _, loop := newLoop(t)

	_, active := loop.Tick(desktop)
	assert.False(t, active)
	assert.Equal(t, -1, loop.State().Index)
}

func TestSyncLoopTracksAnchor(t *testing.T) {
	ctrl, anchors, loop := newLoop(t)
	ctrl.Start()

	layout, active := loop.Tick(desktop)
	require.True(t, active)
	assert.True(t, layout.Tooltip.Centered, "missing anchor centres the tooltip")
	assert.False(t, loop.State().SpotlightActive)

	anchors.Set(TargetWelcome, Rect{Top: 100, Left: 50, Width: 40, Height: 40})
	layout, _ = loop.Tick(desktop)
	assert.Equal(t, 164.0, layout.Tooltip.Top)
	assert.True(t, loop.State().SpotlightActive)

	// the anchor collapses during a view change
	anchors.Set(TargetWelcome, Rect{Top: 400, Left: 400})
	layout, _ = loop.Tick(desktop)
	assert.Equal(t, 164.0, layout.Tooltip.Top)
	assert.Equal(t, 0.0, layout.Tooltip.Opacity)

	anchors.Reset()
	assert.Equal(t, 0, anchors.Len())

	ctrl.Close()
	_, active = loop.Tick(desktop)
	assert.False(t, active, "no frames after completion")
}

func TestSyncLoopRunStopsWhenTourCloses(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctrl, anchors, loop := newLoop(t)
	anchors.Set(TargetWelcome, Rect{Top: 10, Left: 10, Width: 200, Height: 30})
	ctrl.Start()

	frames := make(chan time.Time)
	done := make(chan error, 1)
	var seen int
	go func() {
		done <- loop.Run(context.Background(), frames, func() Viewport { return desktop }, func(Layout) {
			seen++
			if seen == 3 {
				ctrl.Close()
			}
		})
	}()

	for i := 0; i < 3; i++ {
		frames <- time.Now()
	}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the tour closed")
	}
	assert.Equal(t, 3, seen)
}

func TestSyncLoopRunCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctrl, _, loop := newLoop(t)
	ctrl.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx, make(chan time.Time), func() Viewport { return desktop }, nil)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}

func TestSyncLoopRunInactiveReturnsImmediately(t *testing.T) {
	_, _, loop := newLoop(t)
	err := loop.Run(context.Background(), nil, func() Viewport { return desktop }, nil)
	assert.NoError(t, err)
}
