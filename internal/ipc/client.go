package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/pixelwin/internal/runtimepath"
)

// Client sends control requests to a running pixelwin.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for socketPath, or runtimepath.SocketPath()
// when it is empty.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		path, err := runtimepath.SocketPath()
		if err == nil {
			// Keep constructor non-failing; sendRequest surfaces connection errors.
			socketPath = path
		}
	}

	return &Client{
		socketPath: socketPath,
		timeout:    2 * defaultCallTimeout,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pixelwin: %w (is 'pixelwin run' running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("pixelwin error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req, err := NewRequest(cmd, payload)
	if err != nil {
		return err
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetStatus retrieves the window status.
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	var monitors MonitorsData
	if err := c.call(CommandGetMonitors, nil, &monitors); err != nil {
		return nil, err
	}
	return &monitors, nil
}

// SetMode switches the window mode and returns the resulting status.
func (c *Client) SetMode(mode string) (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandSetMode, SetModePayload{Mode: mode}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetTitle changes the window title.
func (c *Client) SetTitle(title string) error {
	return c.call(CommandSetTitle, SetTitlePayload{Title: title}, nil)
}

// Snapshot saves the current frame and returns the written path.
func (c *Client) Snapshot() (string, error) {
	var data SnapshotData
	if err := c.call(CommandSnapshot, nil, &data); err != nil {
		return "", err
	}
	return data.Path, nil
}

// Quit asks the window to close.
func (c *Client) Quit() error {
	return c.call(CommandQuit, nil, nil)
}
