package platform

import "github.com/ckotwn/phoenix-move-windows/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Screen describes a physical display: its full bounds, the usable work
// area after panels and docks, and the number of spaces (virtual
// desktops) it carries. Screens are returned in a stable order so screen
// indices stay meaningful across queries.
type Screen struct {
	Index   int
	Name    string
	Bounds  geometry.Rect
	Visible geometry.Rect
	Spaces  int
}

// Window is one top-level application window tagged with its current
// screen and space.
type Window struct {
	ID     WindowID
	AppID  string
	Title  string
	Screen int
	Space  int
	Frame  geometry.Rect
}

// Backend abstracts window-system operations across platforms. The
// orchestrator consumes only this contract; geometry decisions live
// elsewhere.
type Backend interface {
	// Screens enumerates displays in stable order.
	Screens() ([]Screen, error)
	// Windows lists every normal application window across all screens
	// and spaces.
	Windows() ([]Window, error)
	// MoveResize applies a new frame to a window.
	MoveResize(id WindowID, frame geometry.Rect) error
	// SetSpace moves a window to a space (virtual desktop).
	SetSpace(id WindowID, space int) error
}
