package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowInfo is the geometry and identity of one managed window.
type WindowInfo struct {
	ID      uint32
	AppID   string
	Title   string
	Desktop int

	X      int
	Y      int
	Width  int
	Height int
}

// ListWindows returns every normal application window from the EWMH
// client list with its root-relative geometry, WM_CLASS identity and
// desktop. Sticky windows (on all desktops) report desktop -1.
func (c *Connection) ListWindows() ([]WindowInfo, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	windows := make([]WindowInfo, 0, len(clients))
	for _, id := range clients {
		if !c.IsNormalWindow(id) {
			continue
		}

		info := WindowInfo{ID: uint32(id)}

		if class, err := icccm.WmClassGet(c.XUtil, id); err == nil {
			info.AppID = class.Class
		}
		if name, err := ewmh.WmNameGet(c.XUtil, id); err == nil {
			info.Title = name
		}
		desktop, err := c.GetWindowDesktop(uint32(id))
		if err != nil {
			continue
		}
		info.Desktop = desktop

		geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(id)).Reply()
		if err != nil {
			continue
		}
		translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), id, c.Root, 0, 0).Reply()
		if err != nil {
			continue
		}
		info.X = int(translate.DstX)
		info.Y = int(translate.DstY)
		info.Width = int(geom.Width)
		info.Height = int(geom.Height)

		windows = append(windows, info)
	}
	return windows, nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry,
// clearing any maximized state first so the WM does not fight the new
// frame.
func (c *Connection) MoveResizeWindow(windowID uint32, x, y, width, height int) error {
	id := xproto.Window(windowID)
	if err := c.unmaximizeWindow(id); err != nil {
		// Some windows do not support state changes; geometry still applies.
	}

	err := ewmh.MoveresizeWindow(c.XUtil, id, x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation.
		xwindow.New(c.XUtil, id).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window.
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, 0, state)
		}
	}
	return nil
}

// IsNormalWindow checks if a window is a normal application window rather
// than a desktop, dock, splash or notification surface.
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine the type, assume it's normal.
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return len(types) == 0
}
