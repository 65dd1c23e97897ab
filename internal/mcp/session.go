// ABOUTME: MCP session state: identifier, origin, and negotiated client details
// ABOUTME: Session IDs are random UUIDs; one session per stdio process or per HTTP initialize

package mcp

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one MCP client connection.
type Session struct {
	ID     string
	Origin string

	mu              sync.RWMutex
	client          Implementation
	protocolVersion string
}

// NewSession creates a session with a fresh random ID.
func NewSession(origin string) *Session {
	return &Session{ID: uuid.NewString(), Origin: origin}
}

func (s *Session) setClient(client Implementation, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	s.protocolVersion = version
}

// Client returns the clientInfo sent on initialize.
func (s *Session) Client() Implementation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// ProtocolVersion returns the negotiated protocol version, empty before initialize.
func (s *Session) ProtocolVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.protocolVersion
}
