package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/ckotwn/phoenix-move-windows/internal/manager"
	"github.com/ckotwn/phoenix-move-windows/internal/runtimepath"
)

// Handlers are the daemon operations the server exposes over the socket.
// RunPass and Reload are expected to serialize internally; the server
// calls them from per-connection goroutines.
type Handlers struct {
	RunPass  func() (manager.Summary, error)
	Reload   func() error
	LastPass func() (manager.Summary, bool)
}

// Server answers IPC requests from clients.
type Server struct {
	socketPath string
	listener   net.Listener
	mgr        *manager.Manager
	handlers   Handlers
	logger     *slog.Logger
	startTime  time.Time

	shutdownMu   sync.Mutex
	shuttingDown bool
}

// NewServer creates a new IPC server.
func NewServer(mgr *manager.Manager, handlers Handlers, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove a stale socket from a previous run.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		mgr:        mgr,
		handlers:   handlers,
		logger:     logger,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			done := s.shuttingDown
			s.shutdownMu.Unlock()
			if done {
				return
			}
			s.logger.Error("IPC accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	var resp *Response
	if err != nil {
		resp = ErrorResponse(fmt.Sprintf("invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Error("failed to send IPC response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandApply:
		return s.handleApply()
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetTopology:
		return s.handleGetTopology()
	case CommandListArrangements:
		return s.handleListArrangements()
	default:
		return ErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleApply() *Response {
	summary, err := s.handlers.RunPass()
	if err != nil {
		return ErrorResponse(err.Error())
	}
	resp, err := OKResponse(ApplyDataFromSummary(summary))
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	if err := s.handlers.Reload(); err != nil {
		return ErrorResponse(fmt.Sprintf("reload failed: %v", err))
	}
	resp, err := OKResponse(struct{}{})
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
	if topology, err := s.mgr.Topology(); err == nil {
		status.Topology = topology
		status.Arrangement = s.mgr.Config().Bindings.Match(topology)
	}
	if last, ok := s.handlers.LastPass(); ok {
		data := ApplyDataFromSummary(last)
		status.LastPass = &data
	}

	resp, err := OKResponse(status)
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetTopology() *Response {
	screens, err := s.mgr.Screens()
	if err != nil {
		return ErrorResponse(fmt.Sprintf("failed to enumerate screens: %v", err))
	}

	data := TopologyData{}
	for _, sc := range screens {
		data.ScreenSpaces = append(data.ScreenSpaces, sc.Spaces)
		data.Screens = append(data.Screens, ScreenInfo{
			Index:  sc.Index,
			Name:   sc.Name,
			X:      int(sc.Bounds.X),
			Y:      int(sc.Bounds.Y),
			Width:  int(sc.Bounds.Width),
			Height: int(sc.Bounds.Height),
			Spaces: sc.Spaces,
		})
	}

	resp, err := OKResponse(data)
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleListArrangements() *Response {
	cfg := s.mgr.Config()
	active := ""
	if topology, err := s.mgr.Topology(); err == nil {
		active = cfg.Bindings.Match(topology)
	}

	data := ArrangementsData{}
	for _, name := range cfg.Bindings.Names() {
		sb, ok := cfg.Bindings.Binding(name)
		if !ok {
			continue
		}
		_, hasDefault := sb.Default()
		data.Arrangements = append(data.Arrangements, ArrangementInfo{
			Name:         name,
			ScreenSpaces: sb.ScreenSpaces(),
			Bindings:     sb.Len(),
			HasDefault:   hasDefault,
			Active:       name == active,
		})
	}

	resp, err := OKResponse(data)
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return resp
}

// ApplyDataFromSummary converts a pass summary to its wire form.
func ApplyDataFromSummary(s manager.Summary) ApplyData {
	return ApplyData{
		Arrangement: s.Arrangement,
		Topology:    s.Topology,
		Total:       s.Total,
		Changed:     s.Changed,
		Skipped:     s.Skipped,
		Errors:      s.Errors,
		Aborted:     s.Aborted,
	}
}
