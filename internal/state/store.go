// Package state persists the single "tour seen" flag.
package state

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// TourSeenKey is the storage key of the tour flag.
const TourSeenKey = "yc365_tour_seen"

const (
	flagObject = "flags"
	flagSet    = "1"
	flagUnset  = "0"
)

// FlagStore reads and writes the tour flag.
type FlagStore interface {
	TourSeen() (bool, error)
	MarkTourSeen() error
	ResetTour() error
}

// GdataStore keeps the flag in the per-user application data directory.
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdata opens the data directory for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory for %s: %w", appName, err)
	}
	return &GdataStore{manager: m}, nil
}

// NewGdataStore wraps an already opened manager.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

func (s *GdataStore) TourSeen() (bool, error) {
	if !s.manager.ObjectPropExists(flagObject, TourSeenKey) {
		return false, nil
	}
	data, err := s.manager.LoadObjectProp(flagObject, TourSeenKey)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", TourSeenKey, err)
	}
	return string(bytes.TrimSpace(data)) == flagSet, nil
}

func (s *GdataStore) MarkTourSeen() error {
	if err := s.manager.SaveObjectProp(flagObject, TourSeenKey, []byte(flagSet)); err != nil {
		return fmt.Errorf("failed to write %s: %w", TourSeenKey, err)
	}
	return nil
}

// ResetTour clears the flag so the tour auto-starts again.
func (s *GdataStore) ResetTour() error {
	if !s.manager.ObjectPropExists(flagObject, TourSeenKey) {
		return nil
	}
	if err := s.manager.SaveObjectProp(flagObject, TourSeenKey, []byte(flagUnset)); err != nil {
		return fmt.Errorf("failed to reset %s: %w", TourSeenKey, err)
	}
	return nil
}

// MemoryStore is an in-process FlagStore. It counts writes so callers can
// check the flag is written once.
type MemoryStore struct {
	mu     sync.Mutex
	seen   bool
	writes int
	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryStore returns a store whose flag starts at seen.
func NewMemoryStore(seen bool) *MemoryStore {
	return &MemoryStore{seen: seen}
}

func (s *MemoryStore) TourSeen() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.seen, nil
}

func (s *MemoryStore) MarkTourSeen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.Err != nil {
		return s.Err
	}
	s.seen = true
	return nil
}

func (s *MemoryStore) ResetTour() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.seen = false
	return nil
}

// Writes reports how many times MarkTourSeen was called.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Open returns the store selected by backend ("gdata" or "memory").
func Open(backend, appName string) (FlagStore, error) {
	switch backend {
	case "memory":
		return NewMemoryStore(false), nil
	case "", "gdata":
		return OpenGdata(appName)
	default:
		return nil, fmt.Errorf("unknown state backend: %s", backend)
	}
}
