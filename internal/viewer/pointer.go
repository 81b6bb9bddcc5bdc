package viewer

// PointerPhase is the stage of a pointer interaction.
type PointerPhase int

const (
	PointerStart PointerPhase = iota
	PointerMove
	PointerEnd
	PointerLeave
)

func (p PointerPhase) String() string {
	switch p {
	case PointerStart:
		return "start"
	case PointerMove:
		return "move"
	case PointerEnd:
		return "end"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerSource identifies the input device. Mouse and touch share one contract.
type PointerSource int

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// PointerEvent is a single pointer or touch sample from the host UI.
type PointerEvent struct {
	Phase  PointerPhase
	Source PointerSource
	X, Y   float64
}

// dragSession exists between a pointer start and its end or leave.
type dragSession struct {
	source       PointerSource
	lastX, lastY float64
}

// HandlePointer dispatches ev by phase and reports whether viewer state changed.
func (v *Viewer) HandlePointer(ev PointerEvent) bool {
	switch ev.Phase {
	case PointerStart:
		return v.PointerDown(ev.Source, ev.X, ev.Y)
	case PointerMove:
		return v.PointerMove(ev.X, ev.Y)
	case PointerEnd:
		return v.PointerUp()
	case PointerLeave:
		return v.PointerLeave()
	default:
		return false
	}
}

// PointerDown opens a drag session at (x, y). It does nothing unless the viewer
// is rotating and the preload gate has resolved.
func (v *Viewer) PointerDown(source PointerSource, x, y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode != ModeRotating || !v.tracker.Resolved() {
		return false
	}
	v.drag = &dragSession{source: source, lastX: x, lastY: y}
	return true
}

// PointerMove rotates by the horizontal distance from the previous sample, not
// from the drag origin, then makes (x, y) the new reference. Without an open
// session it does nothing.
func (v *Viewer) PointerMove(x, y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.drag == nil || v.mode != ModeRotating || !v.tracker.Resolved() {
		return false
	}

	deltaX := x - v.drag.lastX
	v.drag.lastX = x
	v.drag.lastY = y
	if deltaX == 0 {
		return false
	}

	v.rotation += deltaX * v.cfg.Sensitivity
	v.setFrameLocked(FrameForRotation(v.rotation, v.seq.Len()))
	return true
}

// PointerUp closes the drag session.
func (v *Viewer) PointerUp() bool {
	return v.endDrag()
}

// PointerLeave closes the drag session when the pointer leaves the viewer.
func (v *Viewer) PointerLeave() bool {
	return v.endDrag()
}

func (v *Viewer) endDrag() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.drag == nil {
		return false
	}
	v.drag = nil
	return true
}

// Dragging reports whether a drag session is open.
func (v *Viewer) Dragging() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drag != nil
}
