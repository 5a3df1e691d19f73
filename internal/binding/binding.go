// Package binding holds the data model that decides, per application,
// which screen, space and frame a window should end up on. Bindings are
// grouped into named arrangements keyed by a topology signature (the
// per-screen space counts), with a catch-all "default" arrangement as the
// matching fallback.
package binding

import (
	"fmt"

	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
)

// CatchAllAppID marks a binding that applies to any application without an
// explicit entry of its own.
const CatchAllAppID = "*"

// WindowBinding associates an application with a target screen/space and
// an optional explicit percentage frame. Immutable after construction.
type WindowBinding struct {
	AppID  string
	Screen int
	Space  int
	// Frame is a percentage rect (0-100 per field) scaled against the
	// destination screen. Nil means the window keeps its reframed
	// geometry instead of an explicit placement.
	Frame *geometry.Rect
}

// NewWindowBinding validates and builds a WindowBinding. The app
// identifier must be non-empty and screen/space indices non-negative;
// violations are configuration errors and rejected here, never at
// orchestration time.
func NewWindowBinding(appID string, screen, space int, frame *geometry.Rect) (WindowBinding, error) {
	if appID == "" {
		return WindowBinding{}, fmt.Errorf("window binding requires an app identifier")
	}
	if screen < 0 {
		return WindowBinding{}, fmt.Errorf("window binding for %q: screen index %d is negative", appID, screen)
	}
	if space < 0 {
		return WindowBinding{}, fmt.Errorf("window binding for %q: space index %d is negative", appID, space)
	}
	return WindowBinding{AppID: appID, Screen: screen, Space: space, Frame: frame}, nil
}

// SpaceBinding is a named arrangement: a topology signature plus the
// window bindings that apply when that topology is active. Mutated only
// while configuration is being assembled, read-only afterwards.
type SpaceBinding struct {
	name         string
	screenSpaces []int
	windows      map[string]WindowBinding
	fallback     *WindowBinding
}

// NewSpaceBinding creates an empty arrangement with the given name and
// topology signature.
func NewSpaceBinding(name string, screenSpaces []int) *SpaceBinding {
	return &SpaceBinding{
		name:         name,
		screenSpaces: append([]int(nil), screenSpaces...),
		windows:      make(map[string]WindowBinding),
	}
}

// Name returns the arrangement's name.
func (s *SpaceBinding) Name() string {
	return s.name
}

// ScreenSpaces returns a copy of the topology signature.
func (s *SpaceBinding) ScreenSpaces() []int {
	return append([]int(nil), s.screenSpaces...)
}

// SetScreenSpaces replaces the topology signature.
func (s *SpaceBinding) SetScreenSpaces(screenSpaces []int) {
	s.screenSpaces = append([]int(nil), screenSpaces...)
}

// Add inserts a binding, replacing any existing binding for the same app.
// A catch-all binding (AppID "*") becomes the arrangement's default,
// applied to windows with no explicit entry.
func (s *SpaceBinding) Add(b WindowBinding) {
	if b.AppID == CatchAllAppID {
		s.fallback = &b
		return
	}
	s.windows[b.AppID] = b
}

// Remove drops the binding for an app. Removing "*" clears the default.
func (s *SpaceBinding) Remove(appID string) {
	if appID == CatchAllAppID {
		s.fallback = nil
		return
	}
	delete(s.windows, appID)
}

// Match reports whether the given per-screen space counts are element-wise
// equal to the arrangement's signature, including length.
func (s *SpaceBinding) Match(screenSpaces []int) bool {
	if len(screenSpaces) != len(s.screenSpaces) {
		return false
	}
	for i, n := range s.screenSpaces {
		if screenSpaces[i] != n {
			return false
		}
	}
	return true
}

// Binding resolves the binding for an app: the explicit entry when
// present, else the arrangement default, else ok=false (window untouched).
func (s *SpaceBinding) Binding(appID string) (WindowBinding, bool) {
	if b, ok := s.windows[appID]; ok {
		return b, true
	}
	if s.fallback != nil {
		return *s.fallback, true
	}
	return WindowBinding{}, false
}

// Default returns the catch-all binding, if one is set.
func (s *SpaceBinding) Default() (WindowBinding, bool) {
	if s.fallback == nil {
		return WindowBinding{}, false
	}
	return *s.fallback, true
}

// Len returns the number of explicit (non-default) bindings.
func (s *SpaceBinding) Len() int {
	return len(s.windows)
}

// AppIDs returns the explicitly bound app identifiers in unspecified order.
func (s *SpaceBinding) AppIDs() []string {
	ids := make([]string, 0, len(s.windows))
	for id := range s.windows {
		ids = append(ids, id)
	}
	return ids
}
