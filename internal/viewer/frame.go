// File: internal/viewer/frame.go
package viewer

import "math"

// DegreesPerTurn is the span of one full rotation around the vehicle.
const DegreesPerTurn = 360.0

// frameEpsilon, in frames, absorbs the rounding error of k/n*360 so a rotation
// seeded from frame k maps back to k. It is far below any real pointer step.
const frameEpsilon = 1e-12

// NormalizeRotation folds any rotation into [0, 360). Unlike math.Mod on its own,
// negative inputs land on the positive side of the circle.
func NormalizeRotation(rotation float64) float64 {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return 0
	}
	normalized := math.Mod(math.Mod(rotation, DegreesPerTurn)+DegreesPerTurn, DegreesPerTurn)
	if normalized >= DegreesPerTurn {
		return 0
	}
	return normalized
}

// FrameForRotation maps an accumulated rotation onto a frame index in
// [0, frameCount-1]. A frameCount below 1 yields 0.
func FrameForRotation(rotation float64, frameCount int) int {
	if frameCount < 1 {
		return 0
	}
	normalized := NormalizeRotation(rotation)
	index := int(math.Floor(normalized/DegreesPerTurn*float64(frameCount)+frameEpsilon)) % frameCount
	if index < 0 {
		index += frameCount
	}
	return index
}

// RotationForFrame returns the rotation that seeds a drag so it resumes from frame.
func RotationForFrame(frame, frameCount int) float64 {
	if frameCount < 1 {
		return 0
	}
	return float64(frame) / float64(frameCount) * DegreesPerTurn
}

// CircularDistance is the shortest number of steps between two frames on a ring
// of frameCount frames.
func CircularDistance(a, b, frameCount int) int {
	if frameCount < 1 {
		return 0
	}
	d := (a - b) % frameCount
	if d < 0 {
		d = -d
	}
	if wrapped := frameCount - d; wrapped < d {
		return wrapped
	}
	return d
}
