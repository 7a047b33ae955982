package platform

// WindowHandle is a platform-neutral identifier for a top-level window.
// The zero value means "no window".
type WindowHandle uint32

// Monitor describes a physical display. Index is assigned in enumeration
// order and is only stable within a single Monitors call.
type Monitor struct {
	Index  int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the monitor's right edge in screen coordinates.
func (m Monitor) Right() int { return m.X + m.Width }

// Bottom returns the monitor's bottom edge in screen coordinates.
func (m Monitor) Bottom() int { return m.Y + m.Height }

// Backend abstracts the window-system operations deskhop depends on.
// Desktop numbers are 1-based at this boundary; implementations translate
// to whatever the underlying system uses.
type Backend interface {
	// CurrentDesktop returns the live desktop number (1-based).
	CurrentDesktop() (int, error)
	// DesktopCount returns how many virtual desktops exist.
	DesktopCount() (int, error)
	// SetDesktopCount asks the window manager for the given desktop count.
	SetDesktopCount(count int) error
	// SwitchToDesktop makes desktop n (1-based) current.
	SwitchToDesktop(n int) error
	// ActiveWindow returns the focused window, or 0 when nothing has focus.
	ActiveWindow() (WindowHandle, error)
	// MoveWindowToDesktop moves a window to desktop n (1-based).
	MoveWindowToDesktop(win WindowHandle, n int) error
	// WindowPinned reports whether a window is visible on all desktops.
	WindowPinned(win WindowHandle) (bool, error)
	// PinWindow makes a window visible on all desktops.
	PinWindow(win WindowHandle) error
	// Monitors returns a fresh snapshot of attached displays.
	Monitors() ([]Monitor, error)
}
