package tour

import (
	"context"
	"sync"
	"time"
)

// State is the per-frame tour state.
type State struct {
	Index           int
	SpotlightActive bool
	Layout          Layout
}

// SyncLoop recomputes the layout once per frame while the tour is active.
type SyncLoop struct {
	ctrl    *Controller
	locator Locator
	solver  *Solver

	mu    sync.Mutex
	state State
}

func NewSyncLoop(ctrl *Controller, locator Locator, solver *Solver) *SyncLoop {
	return &SyncLoop{
		ctrl:    ctrl,
		locator: locator,
		solver:  solver,
		state:   State{Index: -1},
	}
}

// Tick runs the locator and solver for the current step. It returns false
// when the tour is not active, telling the host to stop scheduling frames.
func (s *SyncLoop) Tick(vp Viewport) (Layout, bool) {
	step, index, ok := s.ctrl.Current()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.state.Index = -1
		s.state.SpotlightActive = false
		return s.state.Layout, false
	}

	rect, found := s.locator.Locate(step.TargetID)
	layout := s.solver.Solve(s.state.Layout, rect, found, vp)
	s.state = State{Index: index, SpotlightActive: layout.Spotlight.Visible, Layout: layout}
	return layout, true
}

// State returns the last computed frame.
func (s *SyncLoop) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run drives Tick from frames until the tour leaves the active state, frames
// is closed or ctx is cancelled. sink receives every computed layout.
func (s *SyncLoop) Run(ctx context.Context, frames <-chan time.Time, vp func() Viewport, sink func(Layout)) error {
	for {
		if s.ctrl.Status() != StatusActive {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				return nil
			}
			layout, active := s.Tick(vp())
			if !active {
				return nil
			}
			if sink != nil {
				sink(layout)
			}
		}
	}
}
