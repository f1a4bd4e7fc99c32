// Package web serves the game to browsers. The page is a thin canvas
// client: the session runs on the server and every frame is streamed over
// a websocket as msgpack-encoded draw calls.
package web

import (
	_ "embed"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/planewar/internal/loop/server"
)

//go:embed static/index.html
var htmlPage []byte

// Options configures a Server.
type Options struct {
	Seed   int64       // Base seed; each connection gets Seed+n. 0 picks per-session seeds.
	Logger *log.Logger // Optional
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	registry *server.Server
	upgrader websocket.Upgrader
	logger   *log.Logger
	seed     int64
	conns    atomic.Int64
}

// NewServer creates a web server with its own client registry.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		registry: server.NewServer(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow connections from any origin
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
		seed:   opts.Seed,
	}
}

// Handler returns the routes: the page at / and the game socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Shutdown tells every connected browser the server is going away and
// waits up to timeout for their sessions to end.
func (s *Server) Shutdown(timeout time.Duration) int {
	return s.registry.Shutdown(timeout)
}

// ClientCount returns the number of live sessions.
func (s *Server) ClientCount() int {
	return s.registry.ClientCount()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(htmlPage)
}

// handleWebSocket upgrades the connection and runs its session until the
// browser leaves. The handler does not return before the session ends.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	n := s.conns.Add(1)
	var seed int64
	if s.seed != 0 {
		seed = s.seed + n
	}

	handle := s.registry.RegisterClient(r.RemoteAddr)
	defer s.registry.UnregisterClient(handle.ID)

	logger := s.logger.With("client", handle.ID, "remote", r.RemoteAddr)
	logger.Info("session started")

	client := newClient(conn, handle, seed, logger)
	go client.readPump()
	go client.writePump()

	if err := client.run(r.Context()); err != nil {
		logger.Debug("session loop ended", "err", err)
	}
	logger.Info("session ended", "score", client.session.Stats().Score)
}
