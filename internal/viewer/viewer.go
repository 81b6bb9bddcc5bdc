// File: internal/viewer/viewer.go
package viewer

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/preload"
)

// Config tunes the interaction model.
type Config struct {
	// HotspotTolerance is the visibility window, in frames, while rotating.
	HotspotTolerance int
	// Sensitivity is degrees of rotation per unit of horizontal pointer travel.
	Sensitivity float64
	// Debug logs frame and rotation on every frame change.
	Debug bool
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.HotspotTolerance < 0 {
		c.HotspotTolerance = DefaultHotspotTolerance
	}
	if c.Sensitivity == 0 {
		c.Sensitivity = 1
	}
}

// DefaultConfig returns the stock interaction settings.
func DefaultConfig() Config {
	return Config{HotspotTolerance: DefaultHotspotTolerance, Sensitivity: 1}
}

// Sequence is an ordered, immutable set of frame locators. ID keys preload
// status so late results from a replaced sequence are never counted.
type Sequence struct {
	ID     string
	Frames []string
}

// NewSequence copies frames into a sequence with a fresh identity.
func NewSequence(frames []string) (Sequence, error) {
	if len(frames) == 0 {
		return Sequence{}, ErrEmptySequence
	}
	return Sequence{ID: uuid.NewString(), Frames: append([]string(nil), frames...)}, nil
}

// Len is the number of frames.
func (s Sequence) Len() int { return len(s.Frames) }

// Viewer owns the state of one 360° viewer instance: the frame sequence and
// its preload gate, the mode, the accumulated rotation and any drag in
// progress. All methods are safe for concurrent use; preload results usually
// arrive from other goroutines.
type Viewer struct {
	mu sync.Mutex

	cfg    Config
	logger *zap.Logger

	seq      Sequence
	hotspots []Hotspot
	tracker  *preload.Tracker

	mode     Mode
	frame    int
	rotation float64
	drag     *dragSession

	showHotspots bool
	visible      []Hotspot
}

// New validates the inputs and returns a viewer in static mode on frame 0
// with its preload gate closed.
func New(cfg Config, frames []string, hotspots []Hotspot, logger *zap.Logger) (*Viewer, error) {
	cfg.SetDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	v := &Viewer{
		cfg:          cfg,
		logger:       logger.Named("viewer"),
		showHotspots: true,
	}
	if err := v.SetFrames(frames, hotspots); err != nil {
		return nil, err
	}
	return v, nil
}

// SetFrames replaces the frame sequence and hotspots. The view returns to
// static on frame 0 and the preload gate is reset for the new generation; the
// caller must preload the new Sequence before the viewer can be activated.
// On error the viewer is left unchanged.
func (v *Viewer) SetFrames(frames []string, hotspots []Hotspot) error {
	seq, err := NewSequence(frames)
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if err := ValidateHotspots(hotspots, seq.Len()); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq = seq
	v.hotspots = append([]Hotspot(nil), hotspots...)
	v.tracker = preload.NewTracker(seq.ID, seq.Len())
	v.resetLocked()

	v.logger.Debug("Frame sequence set",
		zap.String("generation", seq.ID),
		zap.Int("frames", seq.Len()),
		zap.Int("hotspots", len(hotspots)),
	)
	return nil
}

// Sequence returns the current frame sequence.
func (v *Viewer) Sequence() Sequence {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seq
}

// ReportFrame feeds a preload outcome into the gate. Reports for a previous
// sequence are dropped.
func (v *Viewer) ReportFrame(generation string, index int, info *preload.FrameInfo, err error) bool {
	v.mu.Lock()
	tracker := v.tracker
	v.mu.Unlock()

	if !tracker.ReportFrame(generation, index, info, err) {
		return false
	}
	if tracker.Resolved() {
		v.logger.Info("All frames loaded", zap.String("generation", generation))
	}
	return true
}

// Ready reports whether the preload gate has resolved.
func (v *Viewer) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tracker.Resolved()
}

// Mode returns the current mode.
func (v *Viewer) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Frame returns the displayed frame index.
func (v *Viewer) Frame() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// Rotation returns the accumulated rotation in degrees.
func (v *Viewer) Rotation() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rotation
}

// Activate switches to rotating mode. Rotation is seeded from the displayed
// frame so the first drag continues from what is on screen. It is a no-op,
// returning false, until the preload gate resolves or when already rotating.
func (v *Viewer) Activate() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode == ModeRotating || !v.tracker.Resolved() {
		return false
	}
	v.mode = ModeRotating
	v.rotation = RotationForFrame(v.frame, v.seq.Len())
	v.refreshHotspotsLocked()

	v.logger.Info("360 mode activated", zap.Int("frame", v.frame))
	return true
}

// Reset returns to static mode on frame 0 with no rotation and no drag.
func (v *Viewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
	v.logger.Info("View reset")
}

func (v *Viewer) resetLocked() {
	v.mode = ModeStatic
	v.frame = 0
	v.rotation = 0
	v.drag = nil
	v.refreshHotspotsLocked()
}

// SetShowHotspots turns the hotspot overlay on or off.
func (v *Viewer) SetShowHotspots(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showHotspots = show
}

// ToggleHotspots flips the overlay and returns the new setting.
func (v *Viewer) ToggleHotspots() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showHotspots = !v.showHotspots
	return v.showHotspots
}

// VisibleHotspots returns the hotspots the filter selects for the current
// frame, regardless of the overlay toggle.
func (v *Viewer) VisibleHotspots() []Hotspot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Hotspot(nil), v.visible...)
}

// setFrameLocked moves to frame and refreshes the visible set when it changed.
func (v *Viewer) setFrameLocked(frame int) {
	if frame == v.frame {
		return
	}
	v.frame = frame
	v.refreshHotspotsLocked()

	if v.cfg.Debug {
		v.logger.Debug("Frame changed",
			zap.Int("frame", v.frame),
			zap.Float64("rotation", math.Round(v.rotation)),
		)
	}
}

func (v *Viewer) refreshHotspotsLocked() {
	v.visible = VisibleHotspots(v.mode, v.frame, v.seq.Len(), v.cfg.HotspotTolerance, v.hotspots)
}

// State returns a snapshot for rendering.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := State{
		Generation:   v.seq.ID,
		Mode:         v.mode,
		Frame:        v.frame,
		FrameCount:   v.seq.Len(),
		Locator:      v.seq.Frames[v.frame],
		Rotation:     v.rotation,
		Ready:        v.tracker.Resolved(),
		Dragging:     v.drag != nil,
		ShowHotspots: v.showHotspots,
		Preload:      v.tracker.Counts(),
	}
	if v.showHotspots {
		s.Hotspots = append([]Hotspot(nil), v.visible...)
	}
	return s
}

// State is a point-in-time view of a Viewer for the rendering layer.
type State struct {
	Generation   string         `json:"generation"`
	Mode         Mode           `json:"mode"`
	Frame        int            `json:"frame"`
	FrameCount   int            `json:"frame_count"`
	Locator      string         `json:"locator"`
	Rotation     float64        `json:"rotation"`
	Ready        bool           `json:"ready"`
	Dragging     bool           `json:"dragging"`
	ShowHotspots bool           `json:"show_hotspots"`
	Hotspots     []Hotspot      `json:"hotspots"`
	Preload      preload.Counts `json:"preload"`
}

// Indicator is the "current / total" label, 1-based.
func (s State) Indicator() string {
	return fmt.Sprintf("%d / %d", s.Frame+1, s.FrameCount)
}

// CanActivate reports whether the activate control should be offered.
func (s State) CanActivate() bool {
	return s.Mode == ModeStatic && s.Ready
}
