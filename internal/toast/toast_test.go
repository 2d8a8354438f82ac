package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePushAndDismiss(t *testing.T) {
	q := NewQueue(3*time.Second, 0)
	a := q.Push("Order Placed Successfully!", Success)
	b := q.Push("boom", Error)

	assert.NotEqual(t, a.ID, b.ID)
	require.Len(t, q.Active(), 2)

	assert.True(t, q.Dismiss(a.ID))
	assert.False(t, q.Dismiss(a.ID))
	assert.Equal(t, []Toast{b}, q.Active())
}

func TestQueueDefaultKind(t *testing.T) {
	q := NewQueue(time.Second, 0)
	assert.Equal(t, Success, q.Push("ok", "").Kind)
}

func TestQueueLimit(t *testing.T) {
	q := NewQueue(time.Second, 2)
	q.Push("one", Success)
	q.Push("two", Success)
	q.Push("three", Success)

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "two", active[0].Message)
	assert.Equal(t, "three", active[1].Message)
}

func TestQueueExpire(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q := NewQueue(3*time.Second, 0)
	q.now = func() time.Time { return clock }

	first := q.Push("first", Success)
	clock = clock.Add(2 * time.Second)
	q.Push("second", Success)

	clock = clock.Add(time.Second)
	gone := q.Expire()
	require.Len(t, gone, 1)
	assert.Equal(t, first.ID, gone[0].ID)
	assert.Len(t, q.Active(), 1)
}
