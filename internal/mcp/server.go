package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/pixelwin/internal/ipc"
	"github.com/1broseidon/pixelwin/internal/window"
)

const (
	ServerName    = "pixelwin"
	ServerVersion = "0.1.0"
)

// Controller is the subset of the control socket client the tools use.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	SetMode(mode string) (*ipc.StatusData, error)
	SetTitle(title string) error
	Snapshot() (string, error)
}

// Server exposes a running pixelwin window as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to ctl.
func NewServer(ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{ctl: ctl, logger: logger}
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
		Name:        "get_status",
		Description: "Report the window title, requested and effective mode, canvas size and monitor of the running pixelwin window.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the displays known to the running window with their bounds and fullscreen support.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_mode",
		Description: "Switch the window mode. The window is rebuilt and the canvas is resized to the new dimensions.",
	}, s.handleSetMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Change the window title.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snapshot",
		Description: "Save the current frame as a PNG file and return its path.",
	}, s.handleSnapshot)
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	status, err := s.ctl.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, *status, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, MonitorsOutput, error) {
	monitors, err := s.ctl.GetMonitors()
	if err != nil {
		return nil, MonitorsOutput{}, err
	}
	return nil, *monitors, nil
}

func (s *Server) handleSetMode(_ context.Context, _ *mcpsdk.CallToolRequest, args SetModeInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	mode, err := window.ParseMode(args.Mode)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	status, err := s.ctl.SetMode(mode.String())
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("set_mode %s: %w", mode, err)
	}
	s.logger.Info("mode set", "mode", status.Mode, "effective_mode", status.EffectiveMode)
	return nil, *status, nil
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, SetTitleOutput, error) {
	if err := s.ctl.SetTitle(args.Title); err != nil {
		return nil, SetTitleOutput{}, err
	}
	return nil, SetTitleOutput{Title: args.Title}, nil
}

func (s *Server) handleSnapshot(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SnapshotOutput, error) {
	path, err := s.ctl.Snapshot()
	if err != nil {
		return nil, SnapshotOutput{}, err
	}
	s.logger.Info("snapshot saved", "path", path)
	return nil, SnapshotOutput{Path: path}, nil
}
