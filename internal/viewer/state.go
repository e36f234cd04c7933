// Package viewer provides the interactive layout browser.
package viewer

// State represents what the viewer is showing.
type State int

const (
	// StateExplore is the default mode where the explorer walks the layout.
	StateExplore State = iota
	// StateInspect adds a detail line for the room under the explorer.
	StateInspect
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateInspect:
		return "inspect"
	default:
		return "unknown"
	}
}
