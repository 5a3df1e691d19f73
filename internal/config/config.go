package config

import (
	"fmt"
	"strings"

	"github.com/ckotwn/phoenix-move-windows/internal/binding"
	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
)

const (
	// DefaultEdgeThreshold is the distance in device units within which a
	// window edge counts as snapped to a screen edge.
	DefaultEdgeThreshold = 10

	DefaultHotkey   = "Mod4-Shift-p"
	DefaultLogLevel = "info"
)

// Frame is a percentage rect (0-100 per field) as written in the config
// file.
type Frame struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect converts the frame to a geometry rect.
func (f Frame) Rect() geometry.Rect {
	return geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Config is the effective, validated configuration. Built once at startup
// (or on explicit reload) and treated as read-only by the daemon.
type Config struct {
	LogLevel      string
	Notifications bool
	EdgeThreshold float64
	Hotkey        string

	// ExcludedApps are app identifiers whose windows are never touched.
	ExcludedApps []string

	// AppFrames are per-app percentage frames applied when a window
	// binding does not carry an explicit frame of its own.
	AppFrames map[string]geometry.Rect

	// Bindings holds every named arrangement, ready for topology
	// matching.
	Bindings *binding.Set

	excluded map[string]struct{}
}

// DefaultConfig returns the configuration used when no file exists: no
// arrangements beyond the empty default, nothing excluded.
func DefaultConfig() *Config {
	cfg := &Config{
		LogLevel:      DefaultLogLevel,
		Notifications: true,
		EdgeThreshold: DefaultEdgeThreshold,
		Hotkey:        DefaultHotkey,
		AppFrames:     map[string]geometry.Rect{},
		Bindings:      binding.NewSet(),
	}
	cfg.buildExclusionIndex()
	return cfg
}

// Excluded reports whether an app identifier is in the exclusion set.
func (c *Config) Excluded(appID string) bool {
	_, ok := c.excluded[appID]
	return ok
}

func (c *Config) buildExclusionIndex() {
	c.excluded = make(map[string]struct{}, len(c.ExcludedApps))
	for _, id := range c.ExcludedApps {
		c.excluded[id] = struct{}{}
	}
}

// Validate checks the effective configuration for values the rest of the
// system assumes to hold.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if c.EdgeThreshold < 0 {
		return fmt.Errorf("edge_threshold: must be non-negative, got %g", c.EdgeThreshold)
	}
	for app, frame := range c.AppFrames {
		if err := validateFrame(frame); err != nil {
			return fmt.Errorf("app_frames.%s: %w", app, err)
		}
	}
	return nil
}

func validateFrame(r geometry.Rect) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height},
	} {
		if f.value < 0 || f.value > 100 {
			return fmt.Errorf("%s: percentage %g out of range 0-100", f.name, f.value)
		}
	}
	if r.Width == 0 || r.Height == 0 {
		return fmt.Errorf("width and height must be positive percentages")
	}
	return nil
}
