// ABOUTME: MCP Streamable HTTP endpoint: JSON-RPC over POST with Mcp-Session-Id sessions
// ABOUTME: initialize opens a session and returns its ID header; DELETE or idle expiry closes it

package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mauromedda/storybook-mcp-go/internal/log"
)

const (
	headerSessionID = "Mcp-Session-Id"
	contentTypeJSON = "application/json"

	maxRequestBytes = 4 << 20

	// DefaultSessionIdleTimeout closes sessions that send nothing for this long.
	DefaultSessionIdleTimeout = 30 * time.Minute
	// DefaultMaxSessions caps open sessions; the least recently used is evicted.
	DefaultMaxSessions = 1024
)

// HTTPOption configures an HTTPHandler.
type HTTPOption func(*HTTPHandler)

// WithSessionIdleTimeout sets the idle expiry. Non-positive disables expiry.
func WithSessionIdleTimeout(d time.Duration) HTTPOption {
	return func(h *HTTPHandler) { h.idleTimeout = d }
}

// WithMaxSessions sets the open session cap. Non-positive disables the cap.
func WithMaxSessions(n int) HTTPOption {
	return func(h *HTTPHandler) { h.maxSessions = n }
}

type httpSession struct {
	session  *Session
	lastSeen time.Time
}

// HTTPHandler serves MCP over HTTP. Each initialize creates a session.
// Expired sessions are pruned on access and whenever a session is opened.
type HTTPHandler struct {
	dispatcher  *Dispatcher
	origin      string
	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*httpSession
}

// NewHTTPHandler creates the handler. When origin is empty the session origin
// is derived from the request host.
func NewHTTPHandler(d *Dispatcher, origin string, opts ...HTTPOption) *HTTPHandler {
	h := &HTTPHandler{
		dispatcher:  d,
		origin:      origin,
		idleTimeout: DefaultSessionIdleTimeout,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*httpSession),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SessionCount returns the number of open, unexpired sessions.
func (h *HTTPHandler) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pruneLocked(h.now())
	return len(h.sessions)
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(json.RawMessage("null"), codeParseError, "Parse error"))
		return
	}

	var sess *Session
	if req.Method == "initialize" {
		sess = NewSession(h.originFor(r))
	} else {
		id := r.Header.Get(headerSessionID)
		if id == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse(req.ID, codeInvalidRequest, "missing "+headerSessionID+" header"))
			return
		}
		if sess = h.lookup(id); sess == nil {
			writeJSON(w, http.StatusNotFound, errorResponse(req.ID, codeInvalidRequest, "unknown session"))
			return
		}
	}

	resp := h.dispatcher.Handle(r.Context(), sess, &req)

	if req.Method == "initialize" && resp != nil && resp.Error == nil {
		h.open(sess)
		w.Header().Set(headerSessionID, sess.ID)
		log.Debug("mcp/http: opened session %s from %s", sess.ID, sess.Origin)
	}

	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(headerSessionID)

	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	log.Debug("mcp/http: closed session %s", id)
	w.WriteHeader(http.StatusNoContent)
}

// open registers sess, evicting the least recently used session at the cap.
func (h *HTTPHandler) open(sess *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	h.pruneLocked(now)
	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		var oldest *httpSession
		for _, s := range h.sessions {
			if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
				oldest = s
			}
		}
		delete(h.sessions, oldest.session.ID)
		log.Debug("mcp/http: evicted session %s at cap %d", oldest.session.ID, h.maxSessions)
	}
	h.sessions[sess.ID] = &httpSession{session: sess, lastSeen: now}
}

// lookup returns a live session and marks it used, or nil.
func (h *HTTPHandler) lookup(id string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return nil
	}
	now := h.now()
	if h.expired(s, now) {
		delete(h.sessions, id)
		log.Debug("mcp/http: session %s expired", id)
		return nil
	}
	s.lastSeen = now
	return s.session
}

func (h *HTTPHandler) expired(s *httpSession, now time.Time) bool {
	return h.idleTimeout > 0 && now.Sub(s.lastSeen) > h.idleTimeout
}

// pruneLocked drops expired sessions. Must hold mu.
func (h *HTTPHandler) pruneLocked(now time.Time) {
	for id, s := range h.sessions {
		if h.expired(s, now) {
			delete(h.sessions, id)
		}
	}
}

func (h *HTTPHandler) originFor(r *http.Request) string {
	if h.origin != "" {
		return h.origin
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("mcp/http: write response: %v", err)
	}
}
