package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Session collects usage metrics for one storefront run. All methods are
// safe on a nil *Session, which records nothing.
type Session struct {
	started time.Time

	Frames      *Counter
	TourSteps   *Counter
	Orders      *Counter
	Comments    *Counter
	FaucetMints *Counter
	Toasts      *Counter

	FrameSolve *Timer
	Analysis   *Timer
}

// NewSession starts a session clock.
func NewSession() *Session {
	return &Session{
		started:     time.Now(),
		Frames:      NewCounter("tour_frames"),
		TourSteps:   NewCounter("tour_steps"),
		Orders:      NewCounter("orders_placed"),
		Comments:    NewCounter("comments_posted"),
		FaucetMints: NewCounter("faucet_mints"),
		Toasts:      NewCounter("toasts_shown"),
		FrameSolve:  NewTimer("frame_solve"),
		Analysis:    NewTimer("analysis"),
	}
}

func (s *Session) Frame() {
	if s != nil {
		s.Frames.Inc()
	}
}

func (s *Session) TourStep() {
	if s != nil {
		s.TourSteps.Inc()
	}
}

func (s *Session) Order() {
	if s != nil {
		s.Orders.Inc()
	}
}

func (s *Session) Comment() {
	if s != nil {
		s.Comments.Inc()
	}
}

func (s *Session) Mint() {
	if s != nil {
		s.FaucetMints.Inc()
	}
}

func (s *Session) ToastShown() {
	if s != nil {
		s.Toasts.Inc()
	}
}

// TimeFrame runs fn and records it as one frame solve.
func (s *Session) TimeFrame(fn func()) {
	if s == nil {
		fn()
		return
	}
	s.FrameSolve.Time(fn)
}

// RecordAnalysis records the latency of one AI request.
func (s *Session) RecordAnalysis(d time.Duration) {
	if s != nil {
		s.Analysis.Record(d)
	}
}

// TimerSummary is the reported form of a Timer.
type TimerSummary struct {
	Count int64         `json:"count"`
	Min   time.Duration `json:"min_ns"`
	Avg   time.Duration `json:"avg_ns"`
	Max   time.Duration `json:"max_ns"`
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	Duration time.Duration           `json:"duration_ns"`
	Counters map[string]int64        `json:"counters"`
	Timers   map[string]TimerSummary `json:"timers"`
}

// Snapshot copies the current values.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Counters: map[string]int64{}, Timers: map[string]TimerSummary{}}
	if s == nil {
		return snap
	}
	snap.Duration = time.Since(s.started)
	for _, c := range s.counters() {
		snap.Counters[c.Name()] = c.Get()
	}
	for _, t := range []*Timer{s.FrameSolve, s.Analysis} {
		snap.Timers[t.Name()] = TimerSummary{Count: t.Count(), Min: t.MinTime(), Avg: t.AvgTime(), Max: t.MaxTime()}
	}
	return snap
}

func (s *Session) counters() []*Counter {
	return []*Counter{s.Frames, s.TourSteps, s.Orders, s.Comments, s.FaucetMints, s.Toasts}
}

// WriteReport writes the snapshot as text or, when format is "json", JSON.
func (s *Session) WriteReport(w io.Writer, format string) error {
	snap := s.Snapshot()
	if format == "json" {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal session report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", snap.Duration.Round(time.Second))
	if s != nil {
		for _, c := range s.counters() {
			fmt.Fprintf(&b, "  %-16s %d\n", c.Name(), snap.Counters[c.Name()])
		}
		for _, t := range []*Timer{s.FrameSolve, s.Analysis} {
			ts := snap.Timers[t.Name()]
			if ts.Count == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-16s n=%d avg=%s max=%s\n", t.Name(), ts.Count, ts.Avg, ts.Max)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
