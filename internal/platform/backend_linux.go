//go:build linux

package platform

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/ckotwn/phoenix-move-windows/internal/geometry"
	"github.com/ckotwn/phoenix-move-windows/internal/x11"
)

// LinuxBackend implements Backend on X11. Spaces map to EWMH virtual
// desktops; desktops are global on X11, so every screen reports the same
// space count. Windows on a sticky desktop (-1) are reported on space 0.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// StopEventLoop asks the running event loop to exit.
func (b *LinuxBackend) StopEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.StopEventLoop()
	}
}

// WatchScreenChanges registers a callback for RandR layout changes.
func (b *LinuxBackend) WatchScreenChanges(fn func()) error {
	return b.conn.WatchScreenChanges(fn)
}

// XUtil exposes the xgbutil connection for X11-specific collaborators
// (hotkey registration).
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Screens returns all active monitors with their work areas and space
// counts.
func (b *LinuxBackend) Screens() ([]Screen, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	desktops, err := b.conn.GetDesktopCount()
	if err != nil {
		return nil, err
	}
	if desktops < 1 {
		desktops = 1
	}

	screens := make([]Screen, 0, len(monitors))
	for _, m := range monitors {
		screens = append(screens, Screen{
			Index:   m.ID,
			Name:    m.Name,
			Bounds:  rectFromInts(m.X, m.Y, m.Width, m.Height),
			Visible: rectFromInts(m.WorkX, m.WorkY, m.WorkWidth, m.WorkHeight),
			Spaces:  desktops,
		})
	}
	return screens, nil
}

// Windows lists normal application windows tagged with the screen holding
// their center and their current desktop.
func (b *LinuxBackend) Windows() ([]Window, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	infos, err := b.conn.ListWindows()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(infos))
	for _, info := range infos {
		space := info.Desktop
		if space < 0 {
			space = 0
		}
		screen := 0
		if len(monitors) > 0 {
			screen = x11.MonitorForPoint(monitors, info.X+info.Width/2, info.Y+info.Height/2)
		}
		windows = append(windows, Window{
			ID:     WindowID(info.ID),
			AppID:  info.AppID,
			Title:  info.Title,
			Screen: screen,
			Space:  space,
			Frame:  rectFromInts(info.X, info.Y, info.Width, info.Height),
		})
	}
	return windows, nil
}

// MoveResize applies a frame, rounding to whole pixels.
func (b *LinuxBackend) MoveResize(id WindowID, frame geometry.Rect) error {
	return b.conn.MoveResizeWindow(uint32(id),
		int(math.Round(frame.X)),
		int(math.Round(frame.Y)),
		int(math.Round(frame.Width)),
		int(math.Round(frame.Height)))
}

// SetSpace moves a window to a virtual desktop.
func (b *LinuxBackend) SetSpace(id WindowID, space int) error {
	return b.conn.SetWindowDesktop(uint32(id), space)
}

func rectFromInts(x, y, w, h int) geometry.Rect {
	return geometry.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
}
