// Package dispatch owns the serialized action loop: every hotkey event,
// tray click, and IPC request is funneled through one goroutine that owns
// the tracker state and the overlay batch set.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deskhop/deskhop/internal/desktops"
	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/overlay"
)

// Outcome describes what an executed action did, for callers that report
// back to a user (CLI, MCP).
type Outcome string

const (
	OutcomeSwitched      Outcome = "switched"
	OutcomeAlreadyOn     Outcome = "already-on-desktop"
	OutcomeMoved         Outcome = "moved"
	OutcomePinned        Outcome = "pinned"
	OutcomeAlreadyPinned Outcome = "already-pinned"
)

// Notifier surfaces operation failures to the user outside the log.
// Implementations must be safe to call from the dispatch goroutine.
type Notifier interface {
	Error(msg string)
}

// Status is a snapshot of the dispatch loop's state.
type Status struct {
	CurrentDesktop  int
	HasCurrent      bool
	PreviousDesktop int
	HasPrevious     bool
	ActiveOverlays  int
	HotkeysBound    int
}

type response struct {
	outcome Outcome
	status  Status
	err     error
}

type event struct {
	hotkeyID int
	action   *hotkeys.Action
	status   bool
	reply    chan response
}

// ErrStopped is returned by Invoke/Status after the loop has shut down.
var ErrStopped = errors.New("dispatch loop stopped")

// Dispatcher runs the single-owner action loop.
type Dispatcher struct {
	tracker  *desktops.Tracker
	overlays *overlay.Manager
	table    *hotkeys.Table
	notifier Notifier
	logger   *slog.Logger

	events  chan event
	quit    chan struct{}
	stopped chan struct{}
}

// New creates a dispatcher. The hotkey table is attached later via
// SetTable, once registration has determined which bindings survived.
// notifier may be nil.
func New(tracker *desktops.Tracker, overlays *overlay.Manager, notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		tracker:  tracker,
		overlays: overlays,
		table:    hotkeys.NewTable(nil),
		notifier: notifier,
		logger:   logger,
		events:   make(chan event, 64),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// SetTable installs the hotkey dispatch table. Call before Run.
func (d *Dispatcher) SetTable(table *hotkeys.Table) {
	d.table = table
}

// Fire queues a raw hotkey-fired event. Safe to call from the X event
// goroutine; events are processed strictly in delivery order.
func (d *Dispatcher) Fire(hotkeyID int) {
	select {
	case d.events <- event{hotkeyID: hotkeyID}:
	case <-d.quit:
	}
}

// Invoke executes an action on the dispatch goroutine and waits for the
// result. Used by the IPC server, the tray menu, and tests.
func (d *Dispatcher) Invoke(action hotkeys.Action) (Outcome, error) {
	reply := make(chan response, 1)
	select {
	case d.events <- event{action: &action, reply: reply}:
	case <-d.stopped:
		return "", ErrStopped
	}
	select {
	case resp := <-reply:
		return resp.outcome, resp.err
	case <-d.stopped:
		return "", ErrStopped
	}
}

// Status reports the loop's state, serialized like any other operation.
func (d *Dispatcher) Status() (Status, error) {
	reply := make(chan response, 1)
	select {
	case d.events <- event{status: true, reply: reply}:
	case <-d.stopped:
		return Status{}, ErrStopped
	}
	select {
	case resp := <-reply:
		return resp.status, nil
	case <-d.stopped:
		return Status{}, ErrStopped
	}
}

// Run processes events until Stop is called. An action's failure is
// logged (and surfaced via the notifier) but never terminates the loop.
func (d *Dispatcher) Run() {
	defer close(d.stopped)
	for {
		select {
		case <-d.quit:
			return
		case ev := <-d.events:
			d.handle(ev)
		}
	}
}

// Stop shuts the loop down and waits for it with a bounded timeout.
func (d *Dispatcher) Stop(timeout time.Duration) error {
	select {
	case <-d.quit:
		// already stopping
	default:
		close(d.quit)
	}

	select {
	case <-d.stopped:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("dispatch loop did not stop within %s", timeout)
	}
}

func (d *Dispatcher) handle(ev event) {
	if ev.status {
		ev.reply <- response{status: d.snapshot()}
		return
	}

	var action hotkeys.Action
	if ev.action != nil {
		action = *ev.action
	} else {
		resolved, ok := d.table.Resolve(ev.hotkeyID)
		if !ok {
			// Unknown id: silently ignored by design.
			d.logger.Debug("ignoring unknown hotkey id", "id", ev.hotkeyID)
			return
		}
		action = resolved
	}

	outcome, err := d.execute(action)
	if err != nil {
		d.logger.Warn("action failed", "action", action.String(), "error", err)
		if d.notifier != nil {
			d.notifier.Error(fmt.Sprintf("%s: %v", action.String(), err))
		}
	} else {
		d.logger.Info("action completed", "action", action.String(), "outcome", string(outcome))
	}

	if ev.reply != nil {
		ev.reply <- response{outcome: outcome, err: err}
	}
}

func (d *Dispatcher) execute(action hotkeys.Action) (Outcome, error) {
	switch action.Kind {
	case hotkeys.KindSwitch:
		outcome, err := d.tracker.SwitchTo(action.Desktop)
		return switchOutcome(outcome), err
	case hotkeys.KindSwitchPrevious:
		outcome, err := d.tracker.SwitchToPrevious()
		return switchOutcome(outcome), err
	case hotkeys.KindMove:
		return OutcomeMoved, d.tracker.MoveActiveWindowTo(action.Desktop)
	case hotkeys.KindPin:
		outcome, err := d.tracker.PinActiveWindow()
		if outcome == desktops.AlreadyPinned {
			return OutcomeAlreadyPinned, err
		}
		return OutcomePinned, err
	default:
		return "", fmt.Errorf("unknown action kind %d", action.Kind)
	}
}

func switchOutcome(outcome desktops.SwitchOutcome) Outcome {
	if outcome == desktops.AlreadyOnDesktop {
		return OutcomeAlreadyOn
	}
	return OutcomeSwitched
}

func (d *Dispatcher) snapshot() Status {
	status := Status{HotkeysBound: d.table.Len()}
	if d.overlays != nil {
		status.ActiveOverlays = d.overlays.ActiveBatches()
	}
	status.CurrentDesktop, status.HasCurrent = d.tracker.Current()
	status.PreviousDesktop, status.HasPrevious = d.tracker.Previous()
	return status
}
