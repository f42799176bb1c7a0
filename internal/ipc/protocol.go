package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandSetMode     CommandType = "SET_MODE"
	CommandSetTitle    CommandType = "SET_TITLE"
	CommandSnapshot    CommandType = "SNAPSHOT"
	CommandQuit        CommandType = "QUIT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Title         string `json:"title"`
	Backend       string `json:"backend"`
	Mode          string `json:"mode"`
	EffectiveMode string `json:"effective_mode"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Monitor       int    `json:"monitor"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	X                   int    `json:"x"`
	Y                   int    `json:"y"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	FullscreenSupported bool   `json:"fullscreen_supported"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SetModePayload is the payload for SET_MODE.
type SetModePayload struct {
	Mode string `json:"mode"`
}

// SetTitlePayload is the payload for SET_TITLE.
type SetTitlePayload struct {
	Title string `json:"title"`
}

// SnapshotData is returned by SNAPSHOT once the file is written.
type SnapshotData struct {
	Path string `json:"path"`
}

// NewRequest builds a request, marshaling payload when it is non-nil.
func NewRequest(cmd CommandType, payload interface{}) (*Request, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return req, nil
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// OK wraps data in a successful response, falling back to an error
// response when data cannot be encoded.
func OK(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// DecodePayload unmarshals the request payload into v.
func (r *Request) DecodePayload(v interface{}) error {
	if len(r.Payload) == 0 {
		return fmt.Errorf("%s requires a payload", r.Command)
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", r.Command, err)
	}
	return nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
