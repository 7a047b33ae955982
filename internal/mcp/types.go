package mcp

// SwitchDesktopInput is the input for the switch_desktop tool.
type SwitchDesktopInput struct {
	Desktop int `json:"desktop" jsonschema:"required,Target desktop number (1-10)"`
}

// SwitchDesktopOutput is the output for the switch_desktop tool.
type SwitchDesktopOutput struct {
	Desktop int    `json:"desktop"`
	Outcome string `json:"outcome"`
}

// PreviousDesktopInput is the input for the previous_desktop tool.
type PreviousDesktopInput struct{}

// PreviousDesktopOutput is the output for the previous_desktop tool.
type PreviousDesktopOutput struct {
	Outcome string `json:"outcome"`
}

// MoveWindowInput is the input for the move_active_window tool.
type MoveWindowInput struct {
	Desktop int `json:"desktop" jsonschema:"required,Destination desktop number (1-10)"`
}

// MoveWindowOutput is the output for the move_active_window tool.
type MoveWindowOutput struct {
	Desktop int    `json:"desktop"`
	Outcome string `json:"outcome"`
}

// PinWindowInput is the input for the pin_active_window tool.
type PinWindowInput struct{}

// PinWindowOutput is the output for the pin_active_window tool.
type PinWindowOutput struct {
	Outcome string `json:"outcome"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	CurrentDesktop  int   `json:"current_desktop"`
	PreviousDesktop int   `json:"previous_desktop,omitempty"`
	ActiveOverlays  int   `json:"active_overlays"`
	HotkeysBound    int   `json:"hotkeys_bound"`
	UptimeSeconds   int64 `json:"uptime_seconds"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a single monitor.
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}
