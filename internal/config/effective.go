package config

import (
	"fmt"
	"sort"

	"github.com/ckotwn/phoenix-move-windows/internal/binding"
	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
)

// ValidationError carries the YAML path of the offending value.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validationErr(path string, format string, args ...any) error {
	return &ValidationError{Path: path, Err: fmt.Errorf(format, args...)}
}

// BuildEffectiveConfig merges a raw document over the defaults and builds
// the binding set. Invalid bindings are rejected here so the orchestrator
// never sees them.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Notifications != nil {
		cfg.Notifications = *raw.Notifications
	}
	if raw.EdgeThreshold != nil {
		cfg.EdgeThreshold = *raw.EdgeThreshold
	}
	if raw.Hotkey != nil {
		cfg.Hotkey = *raw.Hotkey
	}
	cfg.ExcludedApps = append(cfg.ExcludedApps, raw.ExcludedApps...)
	cfg.buildExclusionIndex()

	for app, frame := range raw.AppFrames {
		if app == "" {
			return nil, validationErr("app_frames", "empty app identifier")
		}
		cfg.AppFrames[app] = frame.Rect()
	}

	for _, name := range arrangementOrder(raw) {
		rawArr := raw.Arrangements[name]
		sb, err := buildArrangement(name, rawArr, cfg.AppFrames)
		if err != nil {
			return nil, err
		}
		cfg.Bindings.Add(sb)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// arrangementOrder resolves the match order: arrangement_order entries
// first, remaining arrangements in name order for determinism.
func arrangementOrder(raw RawConfig) []string {
	seen := make(map[string]bool, len(raw.Arrangements))
	var order []string
	for _, name := range raw.ArrangementOrder {
		if _, ok := raw.Arrangements[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range raw.Arrangements {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func buildArrangement(name string, raw RawArrangement, appFrames map[string]geometry.Rect) (*binding.SpaceBinding, error) {
	path := "arrangements." + name
	if name == "" {
		return nil, validationErr("arrangements", "empty arrangement name")
	}
	if name != binding.DefaultName && len(raw.ScreenSpaces) == 0 {
		return nil, validationErr(path+".screen_spaces", "topology signature is required")
	}
	for i, n := range raw.ScreenSpaces {
		if n <= 0 {
			return nil, validationErr(fmt.Sprintf("%s.screen_spaces[%d]", path, i),
				"space count must be positive, got %d", n)
		}
	}

	sb := binding.NewSpaceBinding(name, raw.ScreenSpaces)

	if raw.Default != nil {
		wb, err := buildWindowBinding(path+".default", binding.CatchAllAppID, *raw.Default, appFrames)
		if err != nil {
			return nil, err
		}
		sb.Add(wb)
	}

	for appID, rawWB := range raw.Windows {
		wb, err := buildWindowBinding(path+".windows."+appID, appID, rawWB, appFrames)
		if err != nil {
			return nil, err
		}
		sb.Add(wb)
	}
	return sb, nil
}

func buildWindowBinding(path, appID string, raw RawWindowBinding, appFrames map[string]geometry.Rect) (binding.WindowBinding, error) {
	screen, space := 0, 0
	if raw.Screen != nil {
		screen = *raw.Screen
	}
	if raw.Space != nil {
		space = *raw.Space
	}

	var frame *geometry.Rect
	switch {
	case raw.Maximize != nil && *raw.Maximize:
		if raw.Frame != nil {
			return binding.WindowBinding{}, validationErr(path, "maximize and frame are mutually exclusive")
		}
		m := geometry.Maximize
		frame = &m
	case raw.Frame != nil:
		r := raw.Frame.Rect()
		if err := validateFrame(r); err != nil {
			return binding.WindowBinding{}, validationErr(path+".frame", "%v", err)
		}
		frame = &r
	default:
		// Fall back to any configured per-app frame percentage.
		if r, ok := appFrames[appID]; ok {
			frame = &r
		}
	}

	wb, err := binding.NewWindowBinding(appID, screen, space, frame)
	if err != nil {
		return binding.WindowBinding{}, validationErr(path, "%v", err)
	}
	return wb, nil
}
