package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ckotwn/phoenix-move-windows/internal/config"
	"github.com/ckotwn/phoenix-move-windows/internal/hotkeys"
	"github.com/ckotwn/phoenix-move-windows/internal/ipc"
	"github.com/ckotwn/phoenix-move-windows/internal/manager"
	"github.com/ckotwn/phoenix-move-windows/internal/notify"
	"github.com/ckotwn/phoenix-move-windows/internal/platform"
)

// DebounceDelay is how long the daemon waits after the last screen
// change event before running a placement pass.
const DebounceDelay = 500 * time.Millisecond

// Daemon ties the window manager to its triggers: the global hotkey,
// screen topology changes, and IPC commands. Placement passes from all
// triggers are serialized through a single mutex.
type Daemon struct {
	backend    *platform.LinuxBackend
	mgr        *manager.Manager
	notifier   *notify.Notifier
	logger     *slog.Logger
	configPath string

	server *ipc.Server

	passMu sync.Mutex
	lastMu sync.RWMutex
	last   *manager.Summary
}

// New assembles a daemon around a connected backend. configPath may be
// empty, in which case reloads read the default config location.
func New(backend *platform.LinuxBackend, cfg *config.Config, configPath string, logger *slog.Logger) *Daemon {
	notifier := notify.New(cfg.Notifications)
	return &Daemon{
		backend:    backend,
		mgr:        manager.New(backend, cfg, logger, notifier),
		notifier:   notifier,
		logger:     logger,
		configPath: configPath,
	}
}

// Manager exposes the placement manager, mainly for diagnostics.
func (d *Daemon) Manager() *manager.Manager {
	return d.mgr
}

// RunPass executes one placement pass and records its summary. Passes
// are serialized; concurrent triggers queue up behind the mutex.
func (d *Daemon) RunPass() (manager.Summary, error) {
	d.passMu.Lock()
	defer d.passMu.Unlock()

	summary, err := d.mgr.Apply(context.Background())
	if err != nil {
		return manager.Summary{}, err
	}

	d.lastMu.Lock()
	d.last = &summary
	d.lastMu.Unlock()
	return summary, nil
}

// LastPass reports the most recent pass summary, if any pass has run.
func (d *Daemon) LastPass() (manager.Summary, bool) {
	d.lastMu.RLock()
	defer d.lastMu.RUnlock()
	if d.last == nil {
		return manager.Summary{}, false
	}
	return *d.last, true
}

// Reload re-reads the configuration file and swaps it into the manager.
// A changed hotkey takes effect on the next daemon restart.
func (d *Daemon) Reload() error {
	var cfg *config.Config
	var err error
	if d.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(d.configPath)
	}
	if err != nil {
		return err
	}

	old := d.mgr.Config()
	d.mgr.SetConfig(cfg)
	d.notifier.SetEnabled(cfg.Notifications)
	if old.Hotkey != cfg.Hotkey {
		d.logger.Warn("hotkey changed in config; restart the daemon to apply",
			"old", old.Hotkey, "new", cfg.Hotkey)
	}
	d.logger.Info("configuration reloaded", "arrangements", cfg.Bindings.Names())
	return nil
}

// Run registers triggers, starts the IPC server and blocks in the X
// event loop until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.mgr.Config()

	if cfg.Hotkey != "" {
		handler, err := hotkeys.NewHandler(d.backend)
		if err != nil {
			d.logger.Warn("hotkey support unavailable", "error", err)
		} else if err := handler.Register(cfg.Hotkey, func() {
			go d.triggerPass("hotkey")
		}); err != nil {
			d.logger.Warn("failed to register hotkey", "hotkey", cfg.Hotkey, "error", err)
		} else {
			d.logger.Info("hotkey registered", "hotkey", cfg.Hotkey)
		}
	}

	deb := newDebouncer(DebounceDelay, func() {
		d.triggerPass("screen change")
	})
	go deb.Run(ctx)
	if err := d.backend.WatchScreenChanges(deb.Trigger); err != nil {
		d.logger.Warn("screen change events unavailable", "error", err)
	} else {
		d.logger.Info("watching for screen changes", "debounce", DebounceDelay)
	}

	server, err := ipc.NewServer(d.mgr, ipc.Handlers{
		RunPass:  d.RunPass,
		Reload:   d.Reload,
		LastPass: d.LastPass,
	}, d.logger)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	d.server = server

	// Place windows per the arrangement active at startup.
	go d.triggerPass("startup")

	go func() {
		<-ctx.Done()
		server.Stop()
		d.backend.StopEventLoop()
	}()

	d.backend.EventLoop()
	return nil
}

func (d *Daemon) triggerPass(trigger string) {
	d.logger.Info("placement pass triggered", "trigger", trigger)
	if _, err := d.RunPass(); err != nil {
		d.logger.Error("placement pass failed", "trigger", trigger, "error", err)
		d.notifier.Error(err.Error())
	}
}
