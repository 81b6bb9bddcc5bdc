package viewer

import "errors"

var (
	// ErrEmptySequence is returned when a viewer is given no frames.
	ErrEmptySequence = errors.New("frame sequence is empty")
	// ErrHotspotOutOfRange is returned when a hotspot anchors to a frame the sequence does not have.
	ErrHotspotOutOfRange = errors.New("hotspot frame out of range")
	// ErrDuplicateHotspot is returned when two hotspots share an identifier.
	ErrDuplicateHotspot = errors.New("duplicate hotspot id")
	// ErrInvalidHotspot is returned for a hotspot with no id or a position outside the frame.
	ErrInvalidHotspot = errors.New("invalid hotspot")
)
