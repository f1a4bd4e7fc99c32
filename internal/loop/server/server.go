// Package server keeps track of connected players so a shutdown can warn
// every one of them and wait for them to leave. Each player owns a private
// game session; nothing about gameplay is shared between connections.
package server

import (
	"sync"
	"time"
)

// Registry is the interface clients use to announce themselves.
// Decouples the Client from the concrete Server implementation, enabling
// testing without a running server.
type Registry interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
}

// Server tracks connected clients.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	mu           sync.RWMutex
}

// Compile-time check that Server implements Registry.
var _ Registry = (*Server)(nil)

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	Connected time.Time        // When the client registered
	EventsCh  chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates an empty registry.
func NewServer() *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients joining after Shutdown started are told about it immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:        s.nextClientID,
		Username:  username,
		Connected: time.Now(),
		EventsCh:  make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, clientID)
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// Returns the number of clients still connected when it gave up.
func (s *Server) Shutdown(timeout time.Duration) int {
	// Notify all connected clients about the shutdown
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := s.ClientCount(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return s.ClientCount()
		case <-ticker.C:
		}
	}
}
