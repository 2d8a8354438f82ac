package tour

import "sync"

// Locator resolves an anchor key to its current box. false means the anchor
// is not on screen. A zero-width box is returned as found so the solver can
// hold the tooltip in place while the target is still being laid out.
type Locator interface {
	Locate(key string) (Rect, bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(key string) (Rect, bool)

func (f LocatorFunc) Locate(key string) (Rect, bool) { return f(key) }

// AnchorMap is a Locator the host fills while composing each frame.
type AnchorMap struct {
	mu    sync.RWMutex
	rects map[string]Rect
}

func NewAnchorMap() *AnchorMap {
	return &AnchorMap{rects: make(map[string]Rect)}
}

// Set records the box of key for the current frame.
func (a *AnchorMap) Set(key string, r Rect) {
	a.mu.Lock()
	a.rects[key] = r
	a.mu.Unlock()
}

// Reset forgets every anchor. Hosts call it before composing a new frame so
// anchors of a view that is no longer shown stop resolving.
func (a *AnchorMap) Reset() {
	a.mu.Lock()
	clear(a.rects)
	a.mu.Unlock()
}

func (a *AnchorMap) Locate(key string) (Rect, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.rects[key]
	return r, ok
}

// Len returns the number of published anchors.
func (a *AnchorMap) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.rects)
}
