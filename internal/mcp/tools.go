package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleSwitchDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchDesktopInput) (*mcpsdk.CallToolResult, SwitchDesktopOutput, error) {
	outcome, err := s.controller.SwitchDesktop(args.Desktop)
	if err != nil {
		return nil, SwitchDesktopOutput{}, err
	}
	return nil, SwitchDesktopOutput{Desktop: args.Desktop, Outcome: outcome}, nil
}

func (s *Server) handlePreviousDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, _ PreviousDesktopInput) (*mcpsdk.CallToolResult, PreviousDesktopOutput, error) {
	outcome, err := s.controller.PreviousDesktop()
	if err != nil {
		return nil, PreviousDesktopOutput{}, err
	}
	return nil, PreviousDesktopOutput{Outcome: outcome}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	outcome, err := s.controller.MoveWindow(args.Desktop)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}
	return nil, MoveWindowOutput{Desktop: args.Desktop, Outcome: outcome}, nil
}

func (s *Server) handlePinWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ PinWindowInput) (*mcpsdk.CallToolResult, PinWindowOutput, error) {
	outcome, err := s.controller.PinWindow()
	if err != nil {
		return nil, PinWindowOutput{}, err
	}
	return nil, PinWindowOutput{Outcome: outcome}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.controller.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		CurrentDesktop:  status.CurrentDesktop,
		PreviousDesktop: status.PreviousDesktop,
		ActiveOverlays:  status.ActiveOverlays,
		HotkeysBound:    status.HotkeysBound,
		UptimeSeconds:   status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.controller.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	monitors := make([]MonitorInfo, len(data.Monitors))
	for i, m := range data.Monitors {
		monitors[i] = MonitorInfo{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		}
	}
	return nil, ListMonitorsOutput{Monitors: monitors}, nil
}
