// Package manager orchestrates a placement pass: detect the current
// screen/space topology, resolve the matching binding arrangement, and
// move every bound window to its target screen, space and frame.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ckotwn/phoenix-move-windows/internal/binding"
	"github.com/ckotwn/phoenix-move-windows/internal/config"
	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
	"github.com/ckotwn/phoenix-move-windows/internal/platform"
)

// StatusReporter surfaces short user-facing messages about a pass. Purely
// informational; the manager never consults the outcome.
type StatusReporter interface {
	Summary(arrangement string, changed, total int)
	NoArrangement(topology []int)
}

// Summary aggregates what one pass did.
type Summary struct {
	Arrangement string
	Topology    []int
	Total       int
	Changed     int
	Skipped     int
	Errors      int
	// Aborted is set when no arrangement matched the topology and the
	// pass performed zero actions.
	Aborted bool
}

// Manager runs placement passes against a platform backend. At most one
// pass is expected to run at a time; the daemon serializes triggers.
type Manager struct {
	backend platform.Backend
	logger  *slog.Logger
	status  StatusReporter

	mu  sync.RWMutex
	cfg *config.Config
}

// New builds a Manager. status may be nil when no user-facing surface is
// available (one-shot CLI runs).
func New(backend platform.Backend, cfg *config.Config, logger *slog.Logger, status StatusReporter) *Manager {
	return &Manager{backend: backend, cfg: cfg, logger: logger, status: status}
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// SetConfig swaps in a freshly loaded configuration (daemon reload).
func (m *Manager) SetConfig(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Topology reads the current per-screen space counts, the key used for
// arrangement matching.
func (m *Manager) Topology() ([]int, error) {
	screens, err := m.backend.Screens()
	if err != nil {
		return nil, err
	}
	return topologyOf(screens), nil
}

// Screens exposes the backend's screen enumeration for diagnostics.
func (m *Manager) Screens() ([]platform.Screen, error) {
	return m.backend.Screens()
}

func topologyOf(screens []platform.Screen) []int {
	spaces := make([]int, len(screens))
	for i, s := range screens {
		spaces[i] = s.Spaces
	}
	return spaces
}

// Apply runs one placement pass. Windows are classified and acted on
// concurrently; all workers join before the summary is reported. A
// topology with no matching arrangement aborts the pass with zero
// actions and a diagnostic listing every known signature.
func (m *Manager) Apply(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	cfg := m.Config()

	screens, err := m.backend.Screens()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to enumerate screens: %w", err)
	}
	topology := topologyOf(screens)

	name := cfg.Bindings.Match(topology)
	arrangement, ok := cfg.Bindings.Binding(name)
	if !ok || !arrangement.Match(topology) {
		// Fell through to the default without a genuine signature match.
		m.logger.Warn("no arrangement matches current topology",
			"topology", topology,
			"known", cfg.Bindings.Signatures())
		if m.status != nil {
			m.status.NoArrangement(topology)
		}
		return Summary{Arrangement: name, Topology: topology, Aborted: true}, nil
	}

	windows, err := m.backend.Windows()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	m.logger.Info("placement pass started",
		"arrangement", name, "topology", topology, "windows", len(windows))

	results := make([]placeResult, len(windows))
	var wg sync.WaitGroup
	for i, w := range windows {
		wg.Add(1)
		go func(i int, w platform.Window) {
			defer wg.Done()
			results[i] = m.placeWindow(cfg, arrangement, screens, w)
		}(i, w)
	}
	wg.Wait()

	summary := Summary{Arrangement: name, Topology: topology, Total: len(windows)}
	for _, r := range results {
		switch r.outcome {
		case outcomeChanged:
			summary.Changed++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeError:
			summary.Errors++
		}
	}

	m.logger.Info("placement pass finished",
		"arrangement", name, "changed", summary.Changed,
		"skipped", summary.Skipped, "errors", summary.Errors)
	if m.status != nil {
		m.status.Summary(name, summary.Changed, summary.Total)
	}
	return summary, nil
}

type outcome int

const (
	outcomeUntouched outcome = iota
	outcomeChanged
	outcomeSkipped
	outcomeError
)

type placeResult struct {
	outcome outcome
}

// placeWindow classifies one window against the arrangement and applies
// any move/resize. Independent of every other window; safe to run
// concurrently.
func (m *Manager) placeWindow(cfg *config.Config, arrangement *binding.SpaceBinding, screens []platform.Screen, w platform.Window) placeResult {
	log := m.logger.With("app", w.AppID, "window", w.ID)

	if cfg.Excluded(w.AppID) {
		log.Debug("window excluded")
		return placeResult{outcomeSkipped}
	}
	wb, bound := arrangement.Binding(w.AppID)
	if !bound {
		log.Debug("window unbound")
		return placeResult{outcomeSkipped}
	}

	if wb.Screen >= len(screens) {
		log.Warn("binding targets a screen absent from current topology",
			"screen", wb.Screen, "screens", len(screens))
		return placeResult{outcomeSkipped}
	}
	target := screens[wb.Screen]
	if wb.Space >= target.Spaces {
		log.Warn("binding targets a space absent from current topology",
			"screen", wb.Screen, "space", wb.Space, "spaces", target.Spaces)
		return placeResult{outcomeSkipped}
	}

	moved := wb.Screen != w.Screen || wb.Space != w.Space
	if !moved && wb.Frame == nil {
		// Already in place and no explicit frame to enforce.
		return placeResult{outcomeUntouched}
	}

	var frame geometry.Rect
	if wb.Frame != nil {
		frame = geometry.ScaleFrame(*wb.Frame, target.Visible)
	} else {
		source := screens[w.Screen]
		var err error
		frame, err = geometry.Reframe(w.Frame, source.Visible, target.Visible, cfg.EdgeThreshold)
		if err != nil {
			// Invariant violation in the axis rule set; the returned
			// frame is the leading-edge fallback.
			log.Error("unclassified window placement", "error", err,
				"frame", w.Frame, "source", source.Visible, "target", target.Visible)
		}
	}

	changed := false
	if wb.Space != w.Space {
		if err := m.backend.SetSpace(w.ID, wb.Space); err != nil {
			log.Error("failed to move window to space", "space", wb.Space, "error", err)
			return placeResult{outcomeError}
		}
		changed = true
	}
	if !geometry.LooseEqualRect(frame, w.Frame) {
		if err := m.backend.MoveResize(w.ID, frame); err != nil {
			log.Error("failed to apply window frame", "frame", frame, "error", err)
			return placeResult{outcomeError}
		}
		changed = true
	}

	if !changed {
		log.Debug("window already within tolerance")
		return placeResult{outcomeUntouched}
	}
	log.Info("window placed", "screen", wb.Screen, "space", wb.Space, "frame", frame)
	return placeResult{outcomeChanged}
}
