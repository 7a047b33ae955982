package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// stickyDesktop is the _NET_WM_DESKTOP value for windows visible on all
// desktops.
const stickyDesktop = 0xFFFFFFFF

// CurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses the _NET_CURRENT_DESKTOP atom.
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// DesktopCount returns the number of virtual desktops.
func (c *Connection) DesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// SetDesktopCount asks the window manager for the given number of virtual
// desktops. Sends a _NET_NUMBER_OF_DESKTOPS client message to the root
// window per EWMH spec. We build the message manually because the xgbutil
// ewmh request helpers panic on this library version (uint vs int type
// assertion).
func (c *Connection) SetDesktopCount(count int) error {
	if err := c.sendRootClientMessage(c.Root, "_NET_NUMBER_OF_DESKTOPS",
		[5]uint32{uint32(count), 0, 0, 0, 0}); err != nil {
		return fmt.Errorf("failed to request %d desktops: %w", count, err)
	}
	return nil
}

// SwitchToDesktop switches to the given virtual desktop (0-indexed).
// Sends a _NET_CURRENT_DESKTOP client message to the root window.
func (c *Connection) SwitchToDesktop(desktop int) error {
	if err := c.sendRootClientMessage(c.Root, "_NET_CURRENT_DESKTOP",
		[5]uint32{uint32(desktop), 0, 0, 0, 0}); err != nil {
		return fmt.Errorf("failed to switch to desktop %d: %w", desktop, err)
	}
	return nil
}

// ActiveWindow returns the currently focused top-level window, or 0 when
// no window has focus.
func (c *Connection) ActiveWindow() (uint32, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return uint32(win), nil
}

// WindowDesktop returns the desktop number a window is on.
// Uses the _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows
// (visible on all desktops).
func (c *Connection) WindowDesktop(windowID uint32) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == stickyDesktop {
		return -1, nil
	}
	return int(desktop), nil
}

// SetWindowDesktop moves a window to the specified virtual desktop
// (0-indexed). Sends a _NET_WM_DESKTOP client message to the root window
// per EWMH spec.
func (c *Connection) SetWindowDesktop(windowID uint32, desktop int) error {
	const sourceIndication = 2 // pager/direct action
	if err := c.sendRootClientMessage(xproto.Window(windowID), "_NET_WM_DESKTOP",
		[5]uint32{uint32(desktop), sourceIndication, 0, 0, 0}); err != nil {
		return fmt.Errorf("failed to move window to desktop %d: %w", desktop, err)
	}
	return nil
}

// WindowPinned reports whether a window is visible on all desktops, either
// via the _NET_WM_STATE_STICKY state or the all-desktops _NET_WM_DESKTOP
// value.
func (c *Connection) WindowPinned(windowID uint32) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, xproto.Window(windowID))
	if err == nil {
		for _, state := range states {
			if state == "_NET_WM_STATE_STICKY" {
				return true, nil
			}
		}
	}

	desktop, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return false, fmt.Errorf("failed to get window pin state: %w", err)
	}
	return desktop == stickyDesktop, nil
}

// PinWindow makes a window visible on all desktops by adding the
// _NET_WM_STATE_STICKY state.
func (c *Connection) PinWindow(windowID uint32) error {
	stickyAtom, err := c.internAtom("_NET_WM_STATE_STICKY")
	if err != nil {
		return err
	}

	const (
		stateAdd         = 1
		sourceIndication = 2
	)
	if err := c.sendRootClientMessage(xproto.Window(windowID), "_NET_WM_STATE",
		[5]uint32{stateAdd, uint32(stickyAtom), 0, sourceIndication, 0}); err != nil {
		return fmt.Errorf("failed to pin window: %w", err)
	}
	return nil
}

// sendRootClientMessage sends a 32-bit-format EWMH client message for the
// given window to the root window, with the substructure event mask the
// window manager listens on.
func (c *Connection) sendRootClientMessage(window xproto.Window, atomName string, data [5]uint32) error {
	atom, err := c.internAtom(atomName)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func (c *Connection) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}
