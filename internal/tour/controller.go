// Package tour implements the onboarding tour: the step state machine, the
// target locator contract, the spotlight and tooltip layout solver and the
// per-frame loop that keeps the layout in sync with the host UI.
package tour

import (
	"sync"

	"github.com/yc365/storefront/internal/logger"
	"github.com/yc365/storefront/internal/state"
)

// Status is the coarse state of the tour.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "inactive"
	}
}

// ChangeFunc observes transitions. index is -1 unless status is active.
type ChangeFunc func(status Status, index int)

// Controller owns the current step. It is safe for concurrent use.
type Controller struct {
	mu          sync.Mutex
	steps       []Step
	store       state.FlagStore
	log         *logger.Logger
	status      Status
	index       int
	flagWritten bool
	onChange    ChangeFunc
}

// NewController creates an inactive controller. store may be nil, in which
// case completion is not persisted.
func NewController(steps []Step, store state.FlagStore, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		steps: steps,
		store: store,
		log:   log.WithComponent("tour"),
		index: -1,
	}
}

// OnChange registers fn to be called after every transition.
func (c *Controller) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// ShouldAutoStart reports whether the seen flag is unset. A store that cannot
// be read counts as unseen.
func (c *Controller) ShouldAutoStart() bool {
	if c.store == nil {
		return true
	}
	seen, err := c.store.TourSeen()
	if err != nil {
		c.log.WarnWithFields("failed to read tour flag", []logger.Field{logger.Error(err)})
		return true
	}
	return !seen
}

// Start moves to the first step. From Completed it replays the tour.
func (c *Controller) Start() bool {
	c.mu.Lock()
	if c.status == StatusActive || len(c.steps) == 0 {
		c.mu.Unlock()
		return false
	}
	c.status, c.index = StatusActive, 0
	return c.unlockNotify()
}

// Next advances one step, or completes the tour from the last step. It is a
// no-op on a gate step.
func (c *Controller) Next() bool {
	c.mu.Lock()
	if c.status != StatusActive || c.steps[c.index].Gate {
		c.mu.Unlock()
		return false
	}
	if c.index+1 < len(c.steps) {
		c.index++
		return c.unlockNotify()
	}
	c.completeLocked()
	return c.unlockNotify()
}

// Prev goes back one step. It is a no-op on the first step.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	if c.status != StatusActive || c.index == 0 {
		c.mu.Unlock()
		return false
	}
	c.index--
	return c.unlockNotify()
}

// GoTo jumps to step i. It is how the host moves past a gate step once the
// user has used the real target.
func (c *Controller) GoTo(i int) bool {
	c.mu.Lock()
	if c.status != StatusActive || i < 0 || i >= len(c.steps) {
		c.mu.Unlock()
		return false
	}
	c.index = i
	return c.unlockNotify()
}

// Advance moves past the current step when it is a gate. The host calls it
// when the user acts on the gated target.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	if c.status != StatusActive || !c.steps[c.index].Gate {
		c.mu.Unlock()
		return false
	}
	next := c.index + 1
	c.mu.Unlock()
	if next >= c.Len() {
		c.Close()
		return true
	}
	return c.GoTo(next)
}

// Close ends the tour from any state and persists the seen flag.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.status == StatusCompleted {
		c.mu.Unlock()
		return
	}
	c.completeLocked()
	c.unlockNotify()
}

func (c *Controller) completeLocked() {
	c.status, c.index = StatusCompleted, -1
	if c.flagWritten || c.store == nil {
		return
	}
	c.flagWritten = true
	if seen, err := c.store.TourSeen(); err == nil && seen {
		return
	}
	if err := c.store.MarkTourSeen(); err != nil {
		c.log.WarnWithFields("failed to persist tour flag", []logger.Field{logger.F("key", state.TourSeenKey), logger.Error(err)})
		return
	}
	c.log.Debug("tour completed, flag %s written", state.TourSeenKey)
}

// unlockNotify releases the lock and reports the new state to the observer.
func (c *Controller) unlockNotify() bool {
	fn, status, index := c.onChange, c.status, c.index
	c.mu.Unlock()
	if fn != nil {
		fn(status, index)
	}
	return true
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Index returns the current step index, -1 when not active.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Len() int { return len(c.steps) }

// Current returns the active step.
func (c *Controller) Current() (Step, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusActive {
		return Step{}, -1, false
	}
	return c.steps[c.index], c.index, true
}

// IsLast reports whether the active step is the final one.
func (c *Controller) IsLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == StatusActive && c.index == len(c.steps)-1
}
