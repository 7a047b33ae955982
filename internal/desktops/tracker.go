// Package desktops tracks virtual-desktop switches and executes
// switch/move/pin requests against the platform backend.
package desktops

import (
	"errors"
	"fmt"

	"github.com/deskhop/deskhop/internal/platform"
)

// Desktops are numbered 1..DesktopCount; the daemon ensures the full set
// exists on startup.
const (
	MinDesktop   = 1
	MaxDesktop   = 10
	DesktopCount = MaxDesktop
)

var (
	// ErrInvalidDesktop is returned for desktop numbers outside [1,10].
	ErrInvalidDesktop = errors.New("desktop number out of range")
	// ErrNoPreviousDesktop is returned by SwitchToPrevious before any
	// successful switch has been recorded.
	ErrNoPreviousDesktop = errors.New("no previous desktop recorded")
	// ErrNoActiveWindow is returned when no window has input focus.
	ErrNoActiveWindow = errors.New("no active window")
)

// SwitchOutcome reports what a successful SwitchTo actually did.
type SwitchOutcome int

const (
	// Switched means the desktop transition happened.
	Switched SwitchOutcome = iota
	// AlreadyOnDesktop means the target was already current; nothing
	// changed and no overlay is shown.
	AlreadyOnDesktop
)

// PinOutcome reports what a successful PinActiveWindow actually did.
type PinOutcome int

const (
	// Pinned means the window was newly pinned to all desktops.
	Pinned PinOutcome = iota
	// AlreadyPinned means the window was pinned before the call; the pin
	// primitive was not re-invoked.
	AlreadyPinned
)

// Tracker holds the current/previous desktop numbers and executes
// switch/move/pin requests. It is owned by the dispatch loop and must not
// be shared across goroutines.
//
// The current field is a cache of the last tracker-initiated transition,
// not a live query; external desktop changes are tolerated by re-querying
// the backend at the start of every switch.
type Tracker struct {
	backend  platform.Backend
	onSwitch func(n int)

	current  int // 0 = unset
	previous int // 0 = unset
}

// NewTracker creates a tracker. onSwitch is invoked after every actual
// desktop transition (not for no-ops) with the new desktop number; it may
// be nil.
func NewTracker(backend platform.Backend, onSwitch func(n int)) *Tracker {
	return &Tracker{backend: backend, onSwitch: onSwitch}
}

// Init ensures the full desktop set exists and seeds the current-desktop
// cache from a live query. Both steps are best-effort: a failure leaves
// the tracker in a degraded state where operations keep failing fast with
// descriptive errors instead of crashing the daemon.
func (t *Tracker) Init() error {
	var errs []error

	if err := t.EnsureDesktops(DesktopCount); err != nil {
		errs = append(errs, err)
	}

	if current, err := t.backend.CurrentDesktop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to query current desktop: %w", err))
	} else {
		t.current = current
	}

	return errors.Join(errs...)
}

// EnsureDesktops requests enough desktops to reach count. Idempotent: when
// enough desktops already exist it does nothing.
func (t *Tracker) EnsureDesktops(count int) error {
	existing, err := t.backend.DesktopCount()
	if err != nil {
		return fmt.Errorf("failed to query desktop count: %w", err)
	}
	if existing >= count {
		return nil
	}
	if err := t.backend.SetDesktopCount(count); err != nil {
		return fmt.Errorf("failed to grow desktop count from %d to %d: %w", existing, count, err)
	}
	return nil
}

// Current returns the cached current desktop, if a switch or the startup
// seed has set it.
func (t *Tracker) Current() (int, bool) {
	return t.current, t.current != 0
}

// Previous returns the previous desktop, if at least one successful
// switch has recorded one.
func (t *Tracker) Previous() (int, bool) {
	return t.previous, t.previous != 0
}

// SwitchTo switches to desktop n. The live OS desktop is queried first so
// that previous stays correct even when another tool changed desktops
// behind our back. On failure the current/previous pair is left unchanged.
func (t *Tracker) SwitchTo(n int) (SwitchOutcome, error) {
	if n < MinDesktop || n > MaxDesktop {
		return 0, fmt.Errorf("desktop %d: %w", n, ErrInvalidDesktop)
	}

	live, err := t.backend.CurrentDesktop()
	if err != nil {
		return 0, fmt.Errorf("failed to query current desktop: %w", err)
	}

	if live == n {
		t.current = live
		return AlreadyOnDesktop, nil
	}

	if err := t.backend.SwitchToDesktop(n); err != nil {
		return 0, fmt.Errorf("switch to desktop %d failed: %w", n, err)
	}

	t.previous = live
	t.current = n

	if t.onSwitch != nil {
		t.onSwitch(n)
	}
	return Switched, nil
}

// SwitchToPrevious switches back to the previously active desktop. Two
// consecutive calls toggle between exactly two desktops: the delegated
// SwitchTo records the desktop just left as the new previous.
func (t *Tracker) SwitchToPrevious() (SwitchOutcome, error) {
	if t.previous == 0 {
		return 0, ErrNoPreviousDesktop
	}
	return t.SwitchTo(t.previous)
}

// MoveActiveWindowTo moves the focused window to desktop n. Tracker state
// is untouched and no overlay is shown; moving is not switching.
func (t *Tracker) MoveActiveWindowTo(n int) error {
	if n < MinDesktop || n > MaxDesktop {
		return fmt.Errorf("desktop %d: %w", n, ErrInvalidDesktop)
	}

	win, err := t.activeWindow()
	if err != nil {
		return err
	}

	if err := t.backend.MoveWindowToDesktop(win, n); err != nil {
		return fmt.Errorf("move window to desktop %d failed: %w", n, err)
	}
	return nil
}

// PinActiveWindow pins the focused window to all desktops. Idempotent: an
// already-pinned window is reported as AlreadyPinned without re-invoking
// the pin primitive.
func (t *Tracker) PinActiveWindow() (PinOutcome, error) {
	win, err := t.activeWindow()
	if err != nil {
		return 0, err
	}

	pinned, err := t.backend.WindowPinned(win)
	if err != nil {
		return 0, fmt.Errorf("failed to query window pin state: %w", err)
	}
	if pinned {
		return AlreadyPinned, nil
	}

	if err := t.backend.PinWindow(win); err != nil {
		return 0, fmt.Errorf("pin window failed: %w", err)
	}
	return Pinned, nil
}

func (t *Tracker) activeWindow() (platform.WindowHandle, error) {
	win, err := t.backend.ActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve active window: %w", err)
	}
	if win == 0 {
		return 0, ErrNoActiveWindow
	}
	return win, nil
}
