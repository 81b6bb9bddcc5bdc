// File: internal/preload/status.go
package preload

import "sync"

// Status is the load outcome of a single frame.
type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reporter receives one outcome per frame of a generation. It returns false
// when the report was ignored (stale generation, bad index, or a repeat).
type Reporter interface {
	ReportFrame(generation string, index int, info *FrameInfo, err error) bool
}

// Counts is an aggregate view of a Tracker.
type Counts struct {
	Total   int `json:"total"`
	Loaded  int `json:"loaded"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
}

// Tracker aggregates per-frame load status for one generation of a frame
// sequence into a single gate. It is safe for concurrent use.
type Tracker struct {
	mu         sync.RWMutex
	generation string
	statuses   []Status
	infos      []*FrameInfo
	resolved   int
}

// NewTracker returns a tracker with every frame pending.
func NewTracker(generation string, frameCount int) *Tracker {
	if frameCount < 0 {
		frameCount = 0
	}
	return &Tracker{
		generation: generation,
		statuses:   make([]Status, frameCount),
		infos:      make([]*FrameInfo, frameCount),
	}
}

// Generation returns the sequence identity this tracker counts for.
func (t *Tracker) Generation() string {
	return t.generation
}

// ReportFrame records the outcome for index. A nil err marks the frame loaded;
// anything else marks it failed. Each frame counts once.
func (t *Tracker) ReportFrame(generation string, index int, info *FrameInfo, err error) bool {
	if generation != t.generation {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.statuses) || t.statuses[index] != StatusPending {
		return false
	}
	if err != nil {
		t.statuses[index] = StatusFailed
	} else {
		t.statuses[index] = StatusLoaded
		t.infos[index] = info
	}
	t.resolved++
	return true
}

// Resolved reports whether every frame has loaded or failed.
func (t *Tracker) Resolved() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolved == len(t.statuses)
}

// Status returns the outcome for index, or StatusPending when out of range.
func (t *Tracker) Status(index int) Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index < 0 || index >= len(t.statuses) {
		return StatusPending
	}
	return t.statuses[index]
}

// Info returns decoded metadata for a loaded frame, or nil.
func (t *Tracker) Info(index int) *FrameInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index < 0 || index >= len(t.infos) {
		return nil
	}
	return t.infos[index]
}

// Counts summarises the tracker.
func (t *Tracker) Counts() Counts {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := Counts{Total: len(t.statuses)}
	for _, s := range t.statuses {
		switch s {
		case StatusLoaded:
			c.Loaded++
		case StatusFailed:
			c.Failed++
		default:
			c.Pending++
		}
	}
	return c
}
