package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ckotwn/phoenix-move-windows/internal/binding"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if _, ok := cfg.Bindings.Binding(binding.DefaultName); !ok {
		t.Fatalf("expected default arrangement to exist")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EdgeThreshold != DefaultEdgeThreshold {
		t.Fatalf("expected default edge threshold, got %g", cfg.EdgeThreshold)
	}
}

func TestLoadFromPath_FullDocument(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
notifications: false
edge_threshold: 6
excluded_apps: [org.kde.plasmashell]
app_frames:
  editor: {x: 0, y: 0, width: 50, height: 100}
arrangements:
  desk:
    screen_spaces: [3, 2]
    default: {screen: 0, space: 0}
    windows:
      mail: {screen: 1, space: 1}
      editor: {screen: 0, space: 2}
      player: {screen: 1, space: 0, maximize: true}
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Notifications || cfg.EdgeThreshold != 6 {
		t.Fatalf("scalar fields not applied: %+v", cfg)
	}
	if !cfg.Excluded("org.kde.plasmashell") || cfg.Excluded("mail") {
		t.Fatalf("exclusion set is wrong")
	}

	if got := cfg.Bindings.Match([]int{3, 2}); got != "desk" {
		t.Fatalf("expected desk to match, got %q", got)
	}
	desk, ok := cfg.Bindings.Binding("desk")
	if !ok {
		t.Fatalf("desk arrangement missing")
	}

	mail, ok := desk.Binding("mail")
	if !ok || mail.Screen != 1 || mail.Space != 1 || mail.Frame != nil {
		t.Fatalf("mail binding wrong: %+v ok=%v", mail, ok)
	}
	// editor inherits the app_frames percentage.
	editor, _ := desk.Binding("editor")
	if editor.Frame == nil || editor.Frame.Width != 50 {
		t.Fatalf("editor should inherit the app frame, got %+v", editor.Frame)
	}
	player, _ := desk.Binding("player")
	if player.Frame == nil || player.Frame.Width != 100 || player.Frame.Height != 100 {
		t.Fatalf("maximize shorthand not applied: %+v", player.Frame)
	}
	// Anything else falls through to the arrangement default.
	other, ok := desk.Binding("unlisted")
	if !ok || other.Screen != 0 || other.Space != 0 {
		t.Fatalf("default binding wrong: %+v ok=%v", other, ok)
	}
}

func TestLoadFromPath_ArrangementOrderPinsMatching(t *testing.T) {
	path := writeConfig(t, `
arrangement_order: [office, home]
arrangements:
  home:
    screen_spaces: [2]
  office:
    screen_spaces: [2]
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Bindings.Match([]int{2}); got != "office" {
		t.Fatalf("expected office to win by pinned order, got %q", got)
	}
}

func TestLoadFromPath_ValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		wantPath string
	}{
		{
			"missing signature",
			"arrangements:\n  desk:\n    windows:\n      mail: {screen: 0}\n",
			"arrangements.desk.screen_spaces",
		},
		{
			"zero space count",
			"arrangements:\n  desk:\n    screen_spaces: [0]\n",
			"arrangements.desk.screen_spaces[0]",
		},
		{
			"negative screen",
			"arrangements:\n  desk:\n    screen_spaces: [1]\n    windows:\n      mail: {screen: -1}\n",
			"arrangements.desk.windows.mail",
		},
		{
			"frame out of range",
			"arrangements:\n  desk:\n    screen_spaces: [1]\n    windows:\n      mail: {frame: {x: 0, y: 0, width: 150, height: 50}}\n",
			"arrangements.desk.windows.mail.frame",
		},
		{
			"maximize conflicts with frame",
			"arrangements:\n  desk:\n    screen_spaces: [1]\n    windows:\n      mail: {maximize: true, frame: {x: 0, y: 0, width: 50, height: 50}}\n",
			"arrangements.desk.windows.mail",
		},
		{
			"bad log level",
			"log_level: loud\n",
			"log_level",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantPath) {
				t.Fatalf("error %q should mention %q", err, tc.wantPath)
			}
		})
	}
}
