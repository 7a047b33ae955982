// Package mcp exposes desktop control to MCP clients over stdio. Tool
// calls are forwarded to a running daemon through the IPC socket.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deskhop/deskhop/internal/ipc"
)

const (
	ServerName    = "deskhop"
	ServerVersion = "0.1.0"
)

// Controller is the daemon control surface the tools need. *ipc.Client
// satisfies it.
type Controller interface {
	SwitchDesktop(desktop int) (string, error)
	PreviousDesktop() (string, error)
	MoveWindow(desktop int) (string, error)
	PinWindow() (string, error)
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
}

// Server is the MCP server for desktop control.
type Server struct {
	mcpServer  *mcpsdk.Server
	controller Controller
}

// NewServer creates an MCP server that forwards to controller.
func NewServer(controller Controller) *Server {
	s := &Server{controller: controller}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_desktop",
		Description: "Switch to a numbered virtual desktop (1-10). Switching to the current desktop is a no-op.",
	}, s.handleSwitchDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "previous_desktop",
		Description: "Toggle back to the most recently left desktop. Calling it twice returns to the starting desktop.",
	}, s.handlePreviousDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_active_window",
		Description: "Move the currently focused window to a numbered desktop (1-10) without following it.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pin_active_window",
		Description: "Pin the currently focused window so it appears on every desktop. Pinning an already pinned window is a no-op.",
	}, s.handlePinWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get the daemon's current state: current desktop, previous desktop, active overlay indicators, bound hotkeys, and uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their names and screen geometry.",
	}, s.handleListMonitors)
}
