package monitor

import (
	"sync/atomic"
	"time"
)

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

func (c *Counter) Name() string {
	return c.name
}

// Timer accumulates durations. Min and max are updated with CAS loops so
// Record may be called from any goroutine.
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	name      string
}

const unsetMin = int64(^uint64(0) >> 1)

// NewTimer creates a new timer metric
func NewTimer(name string) *Timer {
	return &Timer{name: name, minTime: unsetMin}
}

// Record records a duration measurement
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Time runs fn and records how long it took.
func (t *Timer) Time(fn func()) {
	start := time.Now()
	fn()
	t.Record(time.Since(start))
}

func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

func (t *Timer) MinTime() time.Duration {
	v := atomic.LoadInt64(&t.minTime)
	if v == unsetMin {
		return 0
	}
	return time.Duration(v)
}

func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// AvgTime returns the mean of all measurements, or 0 when there are none.
func (t *Timer) AvgTime() time.Duration {
	count := atomic.LoadInt64(&t.count)
	if count == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&t.totalTime) / count)
}

func (t *Timer) Name() string {
	return t.name
}
