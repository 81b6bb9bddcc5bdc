// File: internal/viewer/hotspot.go
package viewer

import (
	"fmt"
	"math"
	"strings"
)

// DefaultHotspotTolerance is how many frames either side of its anchor a
// hotspot stays visible while rotating.
const DefaultHotspotTolerance = 2

// Hotspot is an annotation pinned to a position on one frame.
type Hotspot struct {
	ID string `json:"id" mapstructure:"id" yaml:"id"`
	// X and Y are percentages of the frame width and height.
	X           float64 `json:"x" mapstructure:"x" yaml:"x"`
	Y           float64 `json:"y" mapstructure:"y" yaml:"y"`
	Frame       int     `json:"frame" mapstructure:"frame" yaml:"frame"`
	Title       string  `json:"title" mapstructure:"title" yaml:"title"`
	Description string  `json:"description,omitempty" mapstructure:"description" yaml:"description,omitempty"`
}

// ValidateHotspots checks ids and anchors against a sequence of frameCount frames.
func ValidateHotspots(hotspots []Hotspot, frameCount int) error {
	seen := make(map[string]struct{}, len(hotspots))
	for i, h := range hotspots {
		if strings.TrimSpace(h.ID) == "" {
			return fmt.Errorf("hotspot %d: %w: id is required", i, ErrInvalidHotspot)
		}
		if _, dup := seen[h.ID]; dup {
			return fmt.Errorf("hotspot %q: %w", h.ID, ErrDuplicateHotspot)
		}
		seen[h.ID] = struct{}{}

		// NaN fails every comparison, so check it explicitly.
		if math.IsNaN(h.X) || math.IsNaN(h.Y) || h.X < 0 || h.X > 100 || h.Y < 0 || h.Y > 100 {
			return fmt.Errorf("hotspot %q: %w: position (%.1f%%, %.1f%%) outside frame", h.ID, ErrInvalidHotspot, h.X, h.Y)
		}
		if h.Frame < 0 || h.Frame >= frameCount {
			return fmt.Errorf("hotspot %q: %w: frame %d not in [0, %d]", h.ID, ErrHotspotOutOfRange, h.Frame, frameCount-1)
		}
	}
	return nil
}

// VisibleHotspots returns the hotspots shown for the given frame. In static mode
// only hotspots on frame 0 are shown; while rotating, a hotspot is shown when its
// anchor is within tolerance frames of current on the ring.
func VisibleHotspots(mode Mode, current, frameCount, tolerance int, hotspots []Hotspot) []Hotspot {
	var visible []Hotspot
	for _, h := range hotspots {
		if hotspotVisible(mode, current, frameCount, tolerance, h) {
			visible = append(visible, h)
		}
	}
	return visible
}

func hotspotVisible(mode Mode, current, frameCount, tolerance int, h Hotspot) bool {
	if mode != ModeRotating {
		return h.Frame == 0
	}
	return CircularDistance(h.Frame, current, frameCount) <= tolerance
}
