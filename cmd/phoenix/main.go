package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/ckotwn/phoenix-move-windows/internal/config"
	"github.com/ckotwn/phoenix-move-windows/internal/daemon"
	"github.com/ckotwn/phoenix-move-windows/internal/ipc"
	"github.com/ckotwn/phoenix-move-windows/internal/manager"
	"github.com/ckotwn/phoenix-move-windows/internal/notify"
	"github.com/ckotwn/phoenix-move-windows/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "apply":
		os.Exit(runApply(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "topology":
		os.Exit(runTopology(os.Args[2:]))
	case "arrangements":
		os.Exit(runArrangements(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: phoenix <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the phoenix daemon (foreground)")
	fmt.Fprintln(w, "  apply               Run a placement pass now")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  topology            Show current screens and spaces")
	fmt.Fprintln(w, "  arrangements        List configured arrangements")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'phoenix <command> --help' for command-specific options.")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/phoenix/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: phoenix daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run in the foreground, replacing windows on hotkey, screen")
		fmt.Fprintln(os.Stderr, "changes and IPC commands. SIGHUP reloads the configuration.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	d := daemon.New(backend, cfg, *configPath, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading configuration")
				if err := d.Reload(); err != nil {
					logger.Error("config reload failed", "error", err)
				}
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
			cancel()
			return
		}
	}()

	logger.Info("phoenix daemon starting")
	if err := d.Run(ctx); err != nil {
		logger.Error("daemon failed", "error", err)
		return 1
	}
	return 0
}

func runApply(args []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	direct := fs.Bool("direct", false, "Run the pass in-process instead of via the daemon")
	configPath := fs.String("config", "", "Config file path for --direct (default: ~/.config/phoenix/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: phoenix apply [--direct] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to run a placement pass. Falls back to a")
		fmt.Fprintln(os.Stderr, "one-shot in-process pass when the daemon is not running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "apply takes no arguments")
		fs.Usage()
		return 2
	}

	if !*direct {
		client := ipc.NewClient()
		data, err := client.Apply()
		if err == nil {
			printApply(data)
			if data.Aborted {
				return 1
			}
			return 0
		}
		fmt.Fprintf(os.Stderr, "daemon unavailable (%v), running one-shot pass\n", err)
	}
	return applyDirect(*configPath)
}

func applyDirect(configPath string) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	mgr := manager.New(backend, cfg, logger, notify.New(cfg.Notifications))
	summary, err := mgr.Apply(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	data := ipc.ApplyDataFromSummary(summary)
	printApply(&data)
	if data.Aborted {
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: phoenix status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printStatus(status)
	return 0
}

func runTopology(args []string) int {
	fs := flag.NewFlagSet("topology", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: phoenix topology")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show current screens and per-screen space counts. Works")
		fmt.Fprintln(os.Stderr, "without the daemon by reading the display directly.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "topology takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if data, err := client.GetTopology(); err == nil {
		printTopology(data)
		return 0
	}

	// Daemon not running: read the display directly.
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	screens, err := backend.Screens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printTopology(topologyData(screens))
	return 0
}

func topologyData(screens []platform.Screen) *ipc.TopologyData {
	data := &ipc.TopologyData{}
	for _, s := range screens {
		data.ScreenSpaces = append(data.ScreenSpaces, s.Spaces)
		data.Screens = append(data.Screens, ipc.ScreenInfo{
			Index:  s.Index,
			Name:   s.Name,
			X:      int(s.Bounds.X),
			Y:      int(s.Bounds.Y),
			Width:  int(s.Bounds.Width),
			Height: int(s.Bounds.Height),
			Spaces: s.Spaces,
		})
	}
	return data
}

func runArrangements(args []string) int {
	fs := flag.NewFlagSet("arrangements", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/phoenix/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: phoenix arrangements [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List configured arrangements and which one is active. Reads")
		fmt.Fprintln(os.Stderr, "the config file directly when the daemon is not running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "arrangements takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if data, err := client.ListArrangements(); err == nil {
		printArrangements(data)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	data := &ipc.ArrangementsData{}
	for _, name := range cfg.Bindings.Names() {
		sb, ok := cfg.Bindings.Binding(name)
		if !ok {
			continue
		}
		_, hasDefault := sb.Default()
		data.Arrangements = append(data.Arrangements, ipc.ArrangementInfo{
			Name:         name,
			ScreenSpaces: sb.ScreenSpaces(),
			Bindings:     sb.Len(),
			HasDefault:   hasDefault,
		})
	}
	printArrangements(data)
	return 0
}

// printableConfig is the yaml view emitted by "config print". The
// effective config holds compiled bindings, so this flattens them back
// into a readable document.
type printableConfig struct {
	LogLevel      string           `yaml:"log_level"`
	Notifications bool             `yaml:"notifications"`
	EdgeThreshold float64          `yaml:"edge_threshold"`
	Hotkey        string           `yaml:"hotkey"`
	ExcludedApps  []string         `yaml:"excluded_apps,omitempty"`
	Arrangements  []printableArrng `yaml:"arrangements"`
}

type printableArrng struct {
	Name         string   `yaml:"name"`
	ScreenSpaces []int    `yaml:"screen_spaces,flow"`
	Apps         []string `yaml:"apps,omitempty"`
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  phoenix config validate [--config PATH]")
		fmt.Fprintln(os.Stderr, "  phoenix config print [--config PATH]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		configPath := fs.String("config", "", "Config file path (default: ~/.config/phoenix/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		configPath := fs.String("config", "", "Config file path (default: ~/.config/phoenix/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out := printableConfig{
			LogLevel:      cfg.LogLevel,
			Notifications: cfg.Notifications,
			EdgeThreshold: cfg.EdgeThreshold,
			Hotkey:        cfg.Hotkey,
			ExcludedApps:  cfg.ExcludedApps,
		}
		for _, name := range cfg.Bindings.Names() {
			sb, ok := cfg.Bindings.Binding(name)
			if !ok {
				continue
			}
			out.Arrangements = append(out.Arrangements, printableArrng{
				Name:         name,
				ScreenSpaces: sb.ScreenSpaces(),
				Apps:         sb.AppIDs(),
			})
		}

		data, err := yaml.Marshal(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
