package viewer

// Mode is the interaction mode of a viewer.
type Mode int

const (
	// ModeStatic shows the first frame only and ignores drags.
	ModeStatic Mode = iota
	// ModeRotating turns pointer drags into rotation.
	ModeRotating
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeRotating:
		return "rotating"
	default:
		return "unknown"
	}
}
