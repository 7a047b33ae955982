package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/deskhop/deskhop/internal/ipc"
)

type fakeController struct {
	lastDesktop int
	outcome     string
	err         error
	status      *ipc.StatusData
	monitors    *ipc.MonitorsData
}

func (f *fakeController) SwitchDesktop(desktop int) (string, error) {
	f.lastDesktop = desktop
	return f.outcome, f.err
}

func (f *fakeController) PreviousDesktop() (string, error) { return f.outcome, f.err }

func (f *fakeController) MoveWindow(desktop int) (string, error) {
	f.lastDesktop = desktop
	return f.outcome, f.err
}

func (f *fakeController) PinWindow() (string, error) { return f.outcome, f.err }

func (f *fakeController) GetStatus() (*ipc.StatusData, error) { return f.status, f.err }

func (f *fakeController) GetMonitors() (*ipc.MonitorsData, error) { return f.monitors, f.err }

func TestSwitchDesktopTool(t *testing.T) {
	ctrl := &fakeController{outcome: "switched"}
	srv := NewServer(ctrl)

	_, out, err := srv.handleSwitchDesktop(context.Background(), nil, SwitchDesktopInput{Desktop: 6})
	if err != nil {
		t.Fatalf("handleSwitchDesktop: %v", err)
	}
	if ctrl.lastDesktop != 6 {
		t.Errorf("desktop forwarded = %d, want 6", ctrl.lastDesktop)
	}
	if out.Outcome != "switched" || out.Desktop != 6 {
		t.Errorf("output = %+v", out)
	}
}

func TestSwitchDesktopToolError(t *testing.T) {
	ctrl := &fakeController{err: errors.New("desktop out of range")}
	srv := NewServer(ctrl)

	if _, _, err := srv.handleSwitchDesktop(context.Background(), nil, SwitchDesktopInput{Desktop: 11}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPreviousDesktopTool(t *testing.T) {
	ctrl := &fakeController{outcome: "switched"}
	srv := NewServer(ctrl)

	_, out, err := srv.handlePreviousDesktop(context.Background(), nil, PreviousDesktopInput{})
	if err != nil {
		t.Fatalf("handlePreviousDesktop: %v", err)
	}
	if out.Outcome != "switched" {
		t.Errorf("outcome = %q", out.Outcome)
	}
}

func TestPinWindowTool(t *testing.T) {
	ctrl := &fakeController{outcome: "already-pinned"}
	srv := NewServer(ctrl)

	_, out, err := srv.handlePinWindow(context.Background(), nil, PinWindowInput{})
	if err != nil {
		t.Fatalf("handlePinWindow: %v", err)
	}
	if out.Outcome != "already-pinned" {
		t.Errorf("outcome = %q", out.Outcome)
	}
}

func TestGetStatusTool(t *testing.T) {
	ctrl := &fakeController{status: &ipc.StatusData{
		CurrentDesktop:  4,
		PreviousDesktop: 2,
		ActiveOverlays:  1,
		HotkeysBound:    22,
		UptimeSeconds:   90,
	}}
	srv := NewServer(ctrl)

	_, out, err := srv.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus: %v", err)
	}
	if out.CurrentDesktop != 4 || out.PreviousDesktop != 2 || out.UptimeSeconds != 90 {
		t.Errorf("output = %+v", out)
	}
}

func TestListMonitorsTool(t *testing.T) {
	ctrl := &fakeController{monitors: &ipc.MonitorsData{Monitors: []ipc.MonitorInfo{
		{ID: 0, Name: "eDP-1", Width: 1920, Height: 1200},
	}}}
	srv := NewServer(ctrl)

	_, out, err := srv.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("handleListMonitors: %v", err)
	}
	if len(out.Monitors) != 1 || out.Monitors[0].Name != "eDP-1" {
		t.Errorf("output = %+v", out)
	}
}
