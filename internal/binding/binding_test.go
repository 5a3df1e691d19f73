package binding

import (
	"testing"

	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
)

func TestNewWindowBinding_Validation(t *testing.T) {
	cases := []struct {
		name    string
		appID   string
		screen  int
		space   int
		wantErr bool
	}{
		{"valid", "org.mozilla.firefox", 0, 1, false},
		{"catch-all", "*", 1, 0, false},
		{"empty app id", "", 0, 0, true},
		{"negative screen", "app", -1, 0, true},
		{"negative space", "app", 0, -2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindowBinding(tc.appID, tc.screen, tc.space, nil)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewWindowBinding(%q, %d, %d) error = %v, wantErr %v",
					tc.appID, tc.screen, tc.space, err, tc.wantErr)
			}
		})
	}
}

func TestSpaceBinding_AddReplacesByAppID(t *testing.T) {
	sb := NewSpaceBinding("desk", []int{2, 1})
	first, _ := NewWindowBinding("app", 0, 0, nil)
	second, _ := NewWindowBinding("app", 1, 0, &geometry.Maximize)
	sb.Add(first)
	sb.Add(second)

	if sb.Len() != 1 {
		t.Fatalf("expected 1 binding after replace, got %d", sb.Len())
	}
	got, ok := sb.Binding("app")
	if !ok || got.Screen != 1 || got.Frame == nil {
		t.Fatalf("expected replacement binding, got %+v ok=%v", got, ok)
	}
}

func TestSpaceBinding_Match(t *testing.T) {
	sb := NewSpaceBinding("desk", []int{3, 2})
	cases := []struct {
		name   string
		spaces []int
		want   bool
	}{
		{"exact", []int{3, 2}, true},
		{"wrong counts", []int{2, 3}, false},
		{"shorter", []int{3}, false},
		{"longer", []int{3, 2, 1}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sb.Match(tc.spaces); got != tc.want {
				t.Fatalf("Match(%v) = %v, want %v", tc.spaces, got, tc.want)
			}
		})
	}
}

func TestSpaceBinding_CatchAllFallback(t *testing.T) {
	sb := NewSpaceBinding("desk", []int{1})
	explicit, _ := NewWindowBinding("mail", 0, 0, nil)
	catchAll, _ := NewWindowBinding(CatchAllAppID, 1, 0, nil)
	sb.Add(explicit)
	sb.Add(catchAll)

	if got, ok := sb.Binding("mail"); !ok || got.Screen != 0 {
		t.Fatalf("explicit binding should win, got %+v ok=%v", got, ok)
	}
	if got, ok := sb.Binding("anything-else"); !ok || got.Screen != 1 {
		t.Fatalf("unbound app should fall back to catch-all, got %+v ok=%v", got, ok)
	}

	sb.Remove(CatchAllAppID)
	if _, ok := sb.Binding("anything-else"); ok {
		t.Fatalf("expected no binding after removing the catch-all")
	}
	if _, ok := sb.Binding("mail"); !ok {
		t.Fatalf("explicit binding should survive catch-all removal")
	}
}

func TestSet_AlwaysContainsDefault(t *testing.T) {
	s := NewSet()
	if _, ok := s.Binding(DefaultName); !ok {
		t.Fatalf("new set should contain %q", DefaultName)
	}
}

func TestSet_MatchFallsBackToDefault(t *testing.T) {
	s := NewSet()
	desk := NewSpaceBinding("desk", []int{3, 2})
	s.Add(desk)

	if got := s.Match([]int{3, 2}); got != "desk" {
		t.Fatalf("expected desk, got %q", got)
	}
	if got := s.Match([]int{1}); got != DefaultName {
		t.Fatalf("expected %q for unknown topology, got %q", DefaultName, got)
	}
}

func TestSet_MatchPrefersFirstInserted(t *testing.T) {
	s := NewSet()
	s.Add(NewSpaceBinding("first", []int{2, 2}))
	s.Add(NewSpaceBinding("second", []int{2, 2}))

	if got := s.Match([]int{2, 2}); got != "first" {
		t.Fatalf("expected first-inserted arrangement to win, got %q", got)
	}
}

func TestSet_MatchAfterDefaultRemoved(t *testing.T) {
	s := NewSet()
	s.Remove(DefaultName)

	// Matching still resolves to the literal name even though the
	// arrangement itself is gone; the caller treats the failed lookup as
	// fatal for the pass.
	if got := s.Match([]int{5}); got != DefaultName {
		t.Fatalf("expected %q, got %q", DefaultName, got)
	}
	if _, ok := s.Binding(DefaultName); ok {
		t.Fatalf("default arrangement should be gone after removal")
	}
}

func TestSet_ReplaceKeepsMatchOrder(t *testing.T) {
	s := NewSet()
	s.Add(NewSpaceBinding("home", []int{1, 1}))
	s.Add(NewSpaceBinding("office", []int{1, 1}))
	// Re-adding home must not demote it behind office.
	s.Add(NewSpaceBinding("home", []int{1, 1}))

	if got := s.Match([]int{1, 1}); got != "home" {
		t.Fatalf("expected home to keep its position, got %q", got)
	}
}
