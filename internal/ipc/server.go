package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/pixelwin/internal/runtimepath"
)

// ErrServerRunning is returned by NewServer when another process already
// answers on the socket.
var ErrServerRunning = errors.New("another pixelwin instance owns the control socket")

const defaultCallTimeout = 5 * time.Second

// Call is a request waiting for the owner of the window to answer it.
// Reply may be called from any goroutine; only the first reply is kept.
type Call struct {
	Request *Request
	reply   chan *Response
}

// NewCall returns a call for req and the channel its reply arrives on.
func NewCall(req *Request) (*Call, <-chan *Response) {
	reply := make(chan *Response, 1)
	return &Call{Request: req, reply: reply}, reply
}

// Reply answers the call.
func (c *Call) Reply(resp *Response) {
	select {
	case c.reply <- resp:
	default:
	}
}

// Server accepts control requests on a unix socket and hands them to the
// goroutine reading Calls.
type Server struct {
	socketPath   string
	listener     net.Listener
	calls        chan *Call
	done         chan struct{}
	logger       *slog.Logger
	timeout      time.Duration
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a server for socketPath, or runtimepath.SocketPath()
// when it is empty. A stale socket file is removed.
func NewServer(socketPath string, logger *slog.Logger) (*Server, error) {
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if conn, err := net.DialTimeout("unix", socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return nil, ErrServerRunning
	}
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		calls:      make(chan *Call),
		done:       make(chan struct{}),
		logger:     logger,
		timeout:    defaultCallTimeout,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Calls delivers parsed requests. Every call must be answered with Reply.
func (s *Server) Calls() <-chan *Call { return s.calls }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("control socket listening", "path", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(2 * s.timeout))
	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Debug("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}
	if !knownCommand(req.Command) {
		s.send(conn, NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command)))
		return
	}

	s.logger.Debug("IPC request", "command", string(req.Command))
	s.send(conn, s.dispatch(req))
}

// dispatch hands req to the Calls reader and waits for its reply.
func (s *Server) dispatch(req *Request) *Response {
	call, reply := NewCall(req)
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.calls <- call:
	case <-s.done:
		return NewErrorResponse("server shutting down")
	case <-timer.C:
		return NewErrorResponse(fmt.Sprintf("%s was not accepted in time", req.Command))
	}

	select {
	case resp := <-reply:
		if resp == nil {
			return NewErrorResponse(fmt.Sprintf("%s produced no response", req.Command))
		}
		return resp
	case <-s.done:
		return NewErrorResponse("server shutting down")
	case <-timer.C:
		return NewErrorResponse(fmt.Sprintf("%s timed out", req.Command))
	}
}

func knownCommand(cmd CommandType) bool {
	switch cmd {
	case CommandGetStatus, CommandGetMonitors, CommandSetMode, CommandSetTitle, CommandSnapshot, CommandQuit:
		return true
	}
	return false
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Debug("failed to send response", "error", err)
	}
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
