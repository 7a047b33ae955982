package desktops

import (
	"errors"
	"testing"

	"github.com/deskhop/deskhop/internal/platform"
)

// fakeBackend implements platform.Backend in memory.
type fakeBackend struct {
	current      int
	count        int
	active       platform.WindowHandle
	pinned       map[platform.WindowHandle]bool
	switchErr    error
	moveErr      error
	pinErr       error
	currentErr   error
	activeErr    error
	switchCalls  int
	pinCalls     int
	setCountArgs []int
}

func newFakeBackend(current int) *fakeBackend {
	return &fakeBackend{
		current: current,
		count:   10,
		pinned:  make(map[platform.WindowHandle]bool),
	}
}

func (f *fakeBackend) CurrentDesktop() (int, error) {
	if f.currentErr != nil {
		return 0, f.currentErr
	}
	return f.current, nil
}

func (f *fakeBackend) DesktopCount() (int, error) { return f.count, nil }

func (f *fakeBackend) SetDesktopCount(count int) error {
	f.setCountArgs = append(f.setCountArgs, count)
	f.count = count
	return nil
}

func (f *fakeBackend) SwitchToDesktop(n int) error {
	f.switchCalls++
	if f.switchErr != nil {
		return f.switchErr
	}
	f.current = n
	return nil
}

func (f *fakeBackend) ActiveWindow() (platform.WindowHandle, error) {
	if f.activeErr != nil {
		return 0, f.activeErr
	}
	return f.active, nil
}

func (f *fakeBackend) MoveWindowToDesktop(win platform.WindowHandle, n int) error {
	return f.moveErr
}

func (f *fakeBackend) WindowPinned(win platform.WindowHandle) (bool, error) {
	return f.pinned[win], nil
}

func (f *fakeBackend) PinWindow(win platform.WindowHandle) error {
	f.pinCalls++
	if f.pinErr != nil {
		return f.pinErr
	}
	f.pinned[win] = true
	return nil
}

func (f *fakeBackend) Monitors() ([]platform.Monitor, error) { return nil, nil }

func trackerState(t *testing.T, tr *Tracker) (current, previous int) {
	t.Helper()
	current, _ = tr.Current()
	previous, _ = tr.Previous()
	return current, previous
}

func TestSwitchTo_OutOfRange(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	for _, n := range []int{0, -1, 11, 100} {
		if _, err := tracker.SwitchTo(n); !errors.Is(err, ErrInvalidDesktop) {
			t.Errorf("SwitchTo(%d) error = %v, want ErrInvalidDesktop", n, err)
		}
	}

	current, previous := trackerState(t, tracker)
	if current != 3 || previous != 0 {
		t.Errorf("state after invalid switches = (%d, %d), want (3, 0)", current, previous)
	}
	if backend.switchCalls != 0 {
		t.Errorf("switch primitive invoked %d times for invalid numbers", backend.switchCalls)
	}
}

func TestSwitchTo_RecordsPrevious(t *testing.T) {
	backend := newFakeBackend(3)
	var overlays []int
	tracker := NewTracker(backend, func(n int) { overlays = append(overlays, n) })
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	outcome, err := tracker.SwitchTo(5)
	if err != nil {
		t.Fatalf("SwitchTo(5) error: %v", err)
	}
	if outcome != Switched {
		t.Errorf("outcome = %v, want Switched", outcome)
	}

	current, previous := trackerState(t, tracker)
	if current != 5 || previous != 3 {
		t.Errorf("state = (%d, %d), want (5, 3)", current, previous)
	}
	if len(overlays) != 1 || overlays[0] != 5 {
		t.Errorf("overlay hook calls = %v, want [5]", overlays)
	}
}

func TestSwitchTo_AlreadyOnDesktop(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := tracker.SwitchTo(5); err != nil {
		t.Fatalf("SwitchTo(5) error: %v", err)
	}

	var overlays int
	tracker.onSwitch = func(int) { overlays++ }

	// Repeated no-op switches never touch previous, never show an overlay.
	for i := 0; i < 3; i++ {
		outcome, err := tracker.SwitchTo(5)
		if err != nil {
			t.Fatalf("SwitchTo(5) no-op %d error: %v", i, err)
		}
		if outcome != AlreadyOnDesktop {
			t.Errorf("outcome = %v, want AlreadyOnDesktop", outcome)
		}
	}

	current, previous := trackerState(t, tracker)
	if current != 5 || previous != 3 {
		t.Errorf("state = (%d, %d), want (5, 3)", current, previous)
	}
	if overlays != 0 {
		t.Errorf("overlay hook fired %d times for no-op switches", overlays)
	}
}

func TestSwitchTo_FailureLeavesStateUnchanged(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := tracker.SwitchTo(5); err != nil {
		t.Fatalf("SwitchTo(5) error: %v", err)
	}

	backend.switchErr = errors.New("wm rejected the request")
	if _, err := tracker.SwitchTo(7); err == nil {
		t.Fatal("SwitchTo(7) succeeded despite backend failure")
	}

	current, previous := trackerState(t, tracker)
	if current != 5 || previous != 3 {
		t.Errorf("state after failed switch = (%d, %d), want (5, 3)", current, previous)
	}
}

func TestSwitchTo_ExternalDesktopChange(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	// Another tool switched desktops behind our back; the live query at
	// switch time must win over the stale cache.
	backend.current = 8

	if _, err := tracker.SwitchTo(5); err != nil {
		t.Fatalf("SwitchTo(5) error: %v", err)
	}

	_, previous := trackerState(t, tracker)
	if previous != 8 {
		t.Errorf("previous = %d, want live-queried 8", previous)
	}
}

func TestSwitchToPrevious_BeforeAnySwitch(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if _, err := tracker.SwitchToPrevious(); !errors.Is(err, ErrNoPreviousDesktop) {
		t.Errorf("SwitchToPrevious() error = %v, want ErrNoPreviousDesktop", err)
	}
}

func TestSwitchToPrevious_TogglesBetweenTwoDesktops(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := tracker.SwitchTo(5); err != nil {
		t.Fatalf("SwitchTo(5) error: %v", err)
	}

	if _, err := tracker.SwitchToPrevious(); err != nil {
		t.Fatalf("first SwitchToPrevious() error: %v", err)
	}
	current, previous := trackerState(t, tracker)
	if current != 3 || previous != 5 {
		t.Errorf("state = (%d, %d), want (3, 5)", current, previous)
	}

	if _, err := tracker.SwitchToPrevious(); err != nil {
		t.Fatalf("second SwitchToPrevious() error: %v", err)
	}
	current, previous = trackerState(t, tracker)
	if current != 5 || previous != 3 {
		t.Errorf("state = (%d, %d), want (5, 3)", current, previous)
	}
}

func TestMoveActiveWindowTo(t *testing.T) {
	tests := []struct {
		name    string
		desktop int
		active  platform.WindowHandle
		moveErr error
		wantErr error
	}{
		{"valid move", 4, 42, nil, nil},
		{"out of range low", 0, 42, nil, ErrInvalidDesktop},
		{"out of range high", 11, 42, nil, ErrInvalidDesktop},
		{"no active window", 4, 0, nil, ErrNoActiveWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(3)
			backend.active = tt.active
			backend.moveErr = tt.moveErr
			tracker := NewTracker(backend, nil)
			if err := tracker.Init(); err != nil {
				t.Fatalf("Init() error: %v", err)
			}

			err := tracker.MoveActiveWindowTo(tt.desktop)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			// Moving never alters tracker state.
			current, previous := trackerState(t, tracker)
			if current != 3 || previous != 0 {
				t.Errorf("state = (%d, %d), want (3, 0)", current, previous)
			}
		})
	}
}

func TestPinActiveWindow_Idempotent(t *testing.T) {
	backend := newFakeBackend(3)
	backend.active = 42
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	outcome, err := tracker.PinActiveWindow()
	if err != nil {
		t.Fatalf("first PinActiveWindow() error: %v", err)
	}
	if outcome != Pinned {
		t.Errorf("first outcome = %v, want Pinned", outcome)
	}

	outcome, err = tracker.PinActiveWindow()
	if err != nil {
		t.Fatalf("second PinActiveWindow() error: %v", err)
	}
	if outcome != AlreadyPinned {
		t.Errorf("second outcome = %v, want AlreadyPinned", outcome)
	}

	if backend.pinCalls != 1 {
		t.Errorf("pin primitive invoked %d times, want 1", backend.pinCalls)
	}
}

func TestPinActiveWindow_NoActiveWindow(t *testing.T) {
	backend := newFakeBackend(3)
	tracker := NewTracker(backend, nil)
	if err := tracker.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if _, err := tracker.PinActiveWindow(); !errors.Is(err, ErrNoActiveWindow) {
		t.Errorf("PinActiveWindow() error = %v, want ErrNoActiveWindow", err)
	}
}

func TestEnsureDesktops(t *testing.T) {
	backend := newFakeBackend(1)
	backend.count = 4
	tracker := NewTracker(backend, nil)

	if err := tracker.EnsureDesktops(10); err != nil {
		t.Fatalf("EnsureDesktops(10) error: %v", err)
	}
	if len(backend.setCountArgs) != 1 || backend.setCountArgs[0] != 10 {
		t.Errorf("SetDesktopCount calls = %v, want [10]", backend.setCountArgs)
	}

	// Already at the target count: idempotent, no further requests.
	if err := tracker.EnsureDesktops(10); err != nil {
		t.Fatalf("second EnsureDesktops(10) error: %v", err)
	}
	if len(backend.setCountArgs) != 1 {
		t.Errorf("SetDesktopCount called again: %v", backend.setCountArgs)
	}
}

func TestInit_DegradedBackend(t *testing.T) {
	backend := newFakeBackend(3)
	backend.currentErr = errors.New("wm has no EWMH support")
	tracker := NewTracker(backend, nil)

	if err := tracker.Init(); err == nil {
		t.Fatal("Init() succeeded with a degraded backend")
	}

	// Operations keep failing fast instead of crashing.
	if _, err := tracker.SwitchTo(5); err == nil {
		t.Error("SwitchTo(5) succeeded with a degraded backend")
	}
	if _, ok := tracker.Current(); ok {
		t.Error("Current() reported a value after failed seed")
	}
}
