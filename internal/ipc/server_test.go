package ipc

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deskhop/deskhop/internal/dispatch"
	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/platform"
)

type fakeExecutor struct {
	lastAction hotkeys.Action
	outcome    dispatch.Outcome
	invokeErr  error
	status     dispatch.Status
}

func (f *fakeExecutor) Invoke(action hotkeys.Action) (dispatch.Outcome, error) {
	f.lastAction = action
	return f.outcome, f.invokeErr
}

func (f *fakeExecutor) Status() (dispatch.Status, error) {
	return f.status, nil
}

type fakeMonitorBackend struct {
	platform.Backend
	monitors []platform.Monitor
	err      error
}

func (f *fakeMonitorBackend) Monitors() ([]platform.Monitor, error) {
	return f.monitors, f.err
}

func newTestServer(executor Executor, backend platform.Backend) *Server {
	return &Server{executor: executor, backend: backend, startTime: time.Now()}
}

func desktopRequest(t *testing.T, command CommandType, desktop int) *Request {
	t.Helper()
	payload, err := json.Marshal(DesktopPayload{Desktop: desktop})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &Request{Command: command, Payload: payload}
}

func TestHandleSwitchDesktop(t *testing.T) {
	executor := &fakeExecutor{outcome: dispatch.OutcomeSwitched}
	srv := newTestServer(executor, nil)

	resp := srv.handleCommand(desktopRequest(t, CommandSwitchDesktop, 7))
	if resp.Status != "OK" {
		t.Fatalf("status = %q, error = %q", resp.Status, resp.Error)
	}
	if executor.lastAction.Kind != hotkeys.KindSwitch || executor.lastAction.Desktop != 7 {
		t.Errorf("action = %+v, want switch to 7", executor.lastAction)
	}

	var data OutcomeData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.Outcome != string(dispatch.OutcomeSwitched) {
		t.Errorf("outcome = %q, want %q", data.Outcome, dispatch.OutcomeSwitched)
	}
}

func TestHandleMoveWindow(t *testing.T) {
	executor := &fakeExecutor{outcome: dispatch.OutcomeMoved}
	srv := newTestServer(executor, nil)

	resp := srv.handleCommand(desktopRequest(t, CommandMoveWindow, 3))
	if resp.Status != "OK" {
		t.Fatalf("status = %q, error = %q", resp.Status, resp.Error)
	}
	if executor.lastAction.Kind != hotkeys.KindMove || executor.lastAction.Desktop != 3 {
		t.Errorf("action = %+v, want move to 3", executor.lastAction)
	}
}

func TestHandleActionError(t *testing.T) {
	executor := &fakeExecutor{invokeErr: errors.New("no active window")}
	srv := newTestServer(executor, nil)

	resp := srv.handleCommand(&Request{Command: CommandPinWindow})
	if resp.Status != "ERROR" {
		t.Fatalf("status = %q, want ERROR", resp.Status)
	}
	if resp.Error != "no active window" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestHandleInvalidPayload(t *testing.T) {
	srv := newTestServer(&fakeExecutor{}, nil)

	resp := srv.handleCommand(&Request{Command: CommandSwitchDesktop, Payload: json.RawMessage(`{`)})
	if resp.Status != "ERROR" {
		t.Fatalf("status = %q, want ERROR", resp.Status)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	srv := newTestServer(&fakeExecutor{}, nil)

	resp := srv.handleCommand(&Request{Command: "TILE_WINDOWS"})
	if resp.Status != "ERROR" {
		t.Fatalf("status = %q, want ERROR", resp.Status)
	}
}

func TestHandleGetStatus(t *testing.T) {
	executor := &fakeExecutor{status: dispatch.Status{
		CurrentDesktop:  2,
		HasCurrent:      true,
		PreviousDesktop: 5,
		HasPrevious:     true,
		ActiveOverlays:  1,
		HotkeysBound:    22,
	}}
	srv := newTestServer(executor, nil)

	resp := srv.handleCommand(&Request{Command: CommandGetStatus})
	if resp.Status != "OK" {
		t.Fatalf("status = %q, error = %q", resp.Status, resp.Error)
	}

	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.CurrentDesktop != 2 || data.PreviousDesktop != 5 {
		t.Errorf("desktops = %d/%d, want 2/5", data.CurrentDesktop, data.PreviousDesktop)
	}
	if data.HotkeysBound != 22 || data.ActiveOverlays != 1 {
		t.Errorf("bound = %d, overlays = %d", data.HotkeysBound, data.ActiveOverlays)
	}
	if !data.DaemonRunning {
		t.Error("DaemonRunning = false")
	}
}

func TestHandleGetMonitors(t *testing.T) {
	backend := &fakeMonitorBackend{monitors: []platform.Monitor{
		{Index: 0, Name: "DP-1", X: 0, Y: 0, Width: 1920, Height: 1080},
		{Index: 1, Name: "HDMI-1", X: 1920, Y: 0, Width: 2560, Height: 1440},
	}}
	srv := newTestServer(&fakeExecutor{}, backend)

	resp := srv.handleCommand(&Request{Command: CommandGetMonitors})
	if resp.Status != "OK" {
		t.Fatalf("status = %q, error = %q", resp.Status, resp.Error)
	}

	var data MonitorsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.Monitors) != 2 {
		t.Fatalf("monitors = %d, want 2", len(data.Monitors))
	}
	if data.Monitors[1].Name != "HDMI-1" || data.Monitors[1].X != 1920 {
		t.Errorf("monitor[1] = %+v", data.Monitors[1])
	}
}

func TestHandleGetMonitorsError(t *testing.T) {
	backend := &fakeMonitorBackend{err: errors.New("randr unavailable")}
	srv := newTestServer(&fakeExecutor{}, backend)

	resp := srv.handleCommand(&Request{Command: CommandGetMonitors})
	if resp.Status != "ERROR" {
		t.Fatalf("status = %q, want ERROR", resp.Status)
	}
}
