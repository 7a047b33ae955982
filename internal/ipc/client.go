package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/deskhop/deskhop/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) sendDesktopCommand(command CommandType, desktop int) (string, error) {
	payload, err := json.Marshal(DesktopPayload{Desktop: desktop})
	if err != nil {
		return "", fmt.Errorf("failed to marshal desktop payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: command, Payload: payload})
	if err != nil {
		return "", err
	}
	return parseOutcome(resp)
}

func parseOutcome(resp *Response) (string, error) {
	var data OutcomeData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse outcome data: %w", err)
	}
	return data.Outcome, nil
}

// SwitchDesktop asks the daemon to switch to the given desktop
func (c *Client) SwitchDesktop(desktop int) (string, error) {
	return c.sendDesktopCommand(CommandSwitchDesktop, desktop)
}

// MoveWindow asks the daemon to move the active window to the given desktop
func (c *Client) MoveWindow(desktop int) (string, error) {
	return c.sendDesktopCommand(CommandMoveWindow, desktop)
}

// PreviousDesktop asks the daemon to toggle back to the previous desktop
func (c *Client) PreviousDesktop() (string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandPreviousDesktop})
	if err != nil {
		return "", err
	}
	return parseOutcome(resp)
}

// PinWindow asks the daemon to pin the active window on all desktops
func (c *Client) PinWindow() (string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandPinWindow})
	if err != nil {
		return "", err
	}
	return parseOutcome(resp)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
