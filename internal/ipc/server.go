package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/deskhop/deskhop/internal/dispatch"
	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/platform"
	"github.com/deskhop/deskhop/internal/runtimepath"
)

// Executor is the subset of the dispatcher the server needs. Actions are
// forwarded to the dispatch loop so IPC requests serialize with hotkeys.
type Executor interface {
	Invoke(action hotkeys.Action) (dispatch.Outcome, error)
	Status() (dispatch.Status, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	executor     Executor
	backend      platform.Backend
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(executor Executor, backend platform.Backend) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		executor:   executor,
		backend:    backend,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandSwitchDesktop:
		return s.handleDesktopAction(req.Payload, hotkeys.KindSwitch)
	case CommandMoveWindow:
		return s.handleDesktopAction(req.Payload, hotkeys.KindMove)
	case CommandPreviousDesktop:
		return s.handleAction(hotkeys.Action{Kind: hotkeys.KindSwitchPrevious})
	case CommandPinWindow:
		return s.handleAction(hotkeys.Action{Kind: hotkeys.KindPin})
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleDesktopAction(payload json.RawMessage, kind hotkeys.Kind) *Response {
	var p DesktopPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid desktop payload: %v", err))
	}
	return s.handleAction(hotkeys.Action{Kind: kind, Desktop: p.Desktop})
}

func (s *Server) handleAction(action hotkeys.Action) *Response {
	outcome, err := s.executor.Invoke(action)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(OutcomeData{Outcome: string(outcome)})
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	state, err := s.executor.Status()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}

	status := StatusData{
		CurrentDesktop: state.CurrentDesktop,
		ActiveOverlays: state.ActiveOverlays,
		HotkeysBound:   state.HotkeysBound,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}
	if state.HasPrevious {
		status.PreviousDesktop = state.PreviousDesktop
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetMonitors returns information about all monitors
func (s *Server) handleGetMonitors() *Response {
	monitors, err := s.backend.Monitors()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(monitors))
	for i, m := range monitors {
		monitorInfos[i] = MonitorInfo{
			ID:     m.Index,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		}
	}

	data := MonitorsData{
		Monitors: monitorInfos,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
