package mcp

import "github.com/1broseidon/pixelwin/internal/ipc"

// EmptyInput is the argument type of tools that take no arguments.
type EmptyInput struct{}

// StatusOutput mirrors the control socket's status reply.
type StatusOutput = ipc.StatusData

// MonitorsOutput mirrors the control socket's monitor list.
type MonitorsOutput = ipc.MonitorsData

type SetModeInput struct {
	Mode string `json:"mode" jsonschema:"Window mode: windowed, borderless, fullscreen or borderless-full. Fullscreen falls back to windowed when the display cannot do it; check effective_mode in the result."`
}

type SetTitleInput struct {
	Title string `json:"title" jsonschema:"New window title"`
}

type SetTitleOutput struct {
	Title string `json:"title"`
}

type SnapshotOutput struct {
	Path string `json:"path" jsonschema:"PNG file the current frame was written to"`
}
