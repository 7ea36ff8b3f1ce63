// Package viewer provides the interactive terminal level viewer.
package viewer

// State represents what the viewer is showing.
type State int

const (
	// StateTerrain shows the terrain grid only.
	StateTerrain State = iota
	// StateOverlay draws mirrors and rotators over the terrain.
	StateOverlay
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateTerrain:
		return "terrain"
	case StateOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// next returns the state the view toggle switches to.
func (s State) next() State {
	if s == StateTerrain {
		return StateOverlay
	}
	return StateTerrain
}
