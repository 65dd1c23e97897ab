// ABOUTME: MCP server over stdin/stdout: newline-delimited JSON-RPC, one session per process
// ABOUTME: Requests run concurrently up to a limit; writes are serialized

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/storybook-mcp-go/internal/log"
)

const maxScannerBuffer = 10 * 1024 * 1024 // 10MB

// Server serves one MCP session over a byte stream.
type Server struct {
	dispatcher *Dispatcher
	session    *Session
	reader     *bufio.Scanner
	limit      int

	mu     sync.Mutex // guards writer
	writer io.Writer
}

// NewServer creates a stdio-style server reading requests from r and writing
// responses to w. At most limit requests run at once; limit <= 0 means 1.
func NewServer(d *Dispatcher, sess *Session, r io.Reader, w io.Writer, limit int) *Server {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScannerBuffer)
	if limit <= 0 {
		limit = 1
	}
	return &Server{
		dispatcher: d,
		session:    sess,
		reader:     scanner,
		limit:      limit,
		writer:     w,
	}
}

// Session returns the session served by this server.
func (s *Server) Session() *Session {
	return s.session
}

// Serve reads JSON-RPC messages until EOF or ctx is done, then waits for
// in-flight requests to finish.
func (s *Server) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	var loopErr error
	for s.reader.Scan() {
		if err := ctx.Err(); err != nil {
			loopErr = err
			break
		}

		line := bytes.TrimSpace(s.reader.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.write(errorResponse(json.RawMessage("null"), codeParseError, "Parse error"))
			continue
		}

		g.Go(func() error {
			if resp := s.dispatcher.Handle(gctx, s.session, &req); resp != nil {
				s.write(resp)
			}
			return nil
		})
	}

	waitErr := g.Wait()
	if loopErr != nil {
		return loopErr
	}
	return errors.Join(s.reader.Err(), waitErr)
}

func (s *Server) write(resp *Response) {
	out, err := json.Marshal(resp)
	if err != nil {
		log.Error("mcp: marshal response: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.writer, "%s\n", out); err != nil {
		log.Warn("mcp: write response: %v", err)
	}
}
