// Package toast keeps the short-lived notifications shown in the corner of
// the storefront.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the toast severity.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Toast is one notification.
type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Queue holds the live toasts in arrival order.
type Queue struct {
	mu       sync.Mutex
	lifetime time.Duration
	max      int
	now      func() time.Time
	items    []Toast
}

// NewQueue creates a queue whose toasts live for lifetime. At most max are
// shown; max <= 0 means no limit.
func NewQueue(lifetime time.Duration, max int) *Queue {
	return &Queue{lifetime: lifetime, max: max, now: time.Now}
}

// Lifetime is how long a toast stays up.
func (q *Queue) Lifetime() time.Duration { return q.lifetime }

// Push adds a toast and returns it. Past the limit the oldest toast is
// dropped.
func (q *Queue) Push(message string, kind Kind) Toast {
	if kind == "" {
		kind = Success
	}
	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		ExpiresAt: q.now().Add(q.lifetime),
	}
	q.mu.Lock()
	q.items = append(q.items, t)
	if q.max > 0 && len(q.items) > q.max {
		q.items = q.items[len(q.items)-q.max:]
	}
	q.mu.Unlock()
	return t
}

// Dismiss removes the toast with id.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Expire drops every toast whose lifetime has passed and returns them.
func (q *Queue) Expire() []Toast {
	now := q.now()
	q.mu.Lock()
	defer q.mu.Unlock()
	var gone []Toast
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		} else {
			gone = append(gone, t)
		}
	}
	q.items = kept
	return gone
}

// Active returns the live toasts, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}
