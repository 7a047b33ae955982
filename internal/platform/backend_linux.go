//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/deskhop/deskhop/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend
// interface. EWMH desktops are 0-based; the Backend contract is 1-based.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
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

// StopEventLoop asks the X11 event loop to quit.
func (b *LinuxBackend) StopEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.StopEventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
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

// Connection returns the wrapped X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// CurrentDesktop returns the live desktop number (1-based).
func (b *LinuxBackend) CurrentDesktop() (int, error) {
	desktop, err := b.conn.CurrentDesktop()
	if err != nil {
		return 0, err
	}
	return desktop + 1, nil
}

// DesktopCount returns the number of virtual desktops.
func (b *LinuxBackend) DesktopCount() (int, error) {
	return b.conn.DesktopCount()
}

// SetDesktopCount requests the given number of virtual desktops.
func (b *LinuxBackend) SetDesktopCount(count int) error {
	return b.conn.SetDesktopCount(count)
}

// SwitchToDesktop makes desktop n (1-based) current.
func (b *LinuxBackend) SwitchToDesktop(n int) error {
	return b.conn.SwitchToDesktop(n - 1)
}

// ActiveWindow returns the focused window, or 0 when nothing has focus.
func (b *LinuxBackend) ActiveWindow() (WindowHandle, error) {
	win, err := b.conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowHandle(win), nil
}

// MoveWindowToDesktop moves a window to desktop n (1-based).
func (b *LinuxBackend) MoveWindowToDesktop(win WindowHandle, n int) error {
	return b.conn.SetWindowDesktop(uint32(win), n-1)
}

// WindowPinned reports whether a window is visible on all desktops.
func (b *LinuxBackend) WindowPinned(win WindowHandle) (bool, error) {
	return b.conn.WindowPinned(uint32(win))
}

// PinWindow makes a window visible on all desktops.
func (b *LinuxBackend) PinWindow(win WindowHandle) error {
	return b.conn.PinWindow(uint32(win))
}

// Monitors returns a fresh snapshot of attached displays.
func (b *LinuxBackend) Monitors() ([]Monitor, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	out := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Monitor{
			Index:  m.Index,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return out, nil
}
