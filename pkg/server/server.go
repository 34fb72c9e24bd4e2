package server

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"typeahead/pkg/config"
	"typeahead/pkg/typeahead"
)

// Server handles the IPC for typeahead queries. One widget instance
// serves all requests; the widget should be built with rendering
// disabled since the client owns presentation.
type Server struct {
	widget *typeahead.Widget
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder

	maxLimit int
	maxQuery int
}

// NewServer creates a query server using stdin/stdout for IPC.
func NewServer(widget *typeahead.Widget, cfg config.ServerConfig) *Server {
	return NewServerWithIO(widget, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a query server over explicit streams.
func NewServerWithIO(widget *typeahead.Widget, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = config.DefaultConfig().Server.MaxLimit
	}
	maxQuery := cfg.MaxQuery
	if maxQuery <= 0 {
		maxQuery = config.DefaultConfig().Server.MaxQuery
	}
	return &Server{
		widget:   widget,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		maxLimit: maxLimit,
		maxQuery: maxQuery,
	}
}

// Start begins listening for IPC requests. It returns nil on clean
// client disconnect (EOF).
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request QueryRequest
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request QueryRequest) {
	switch request.Cmd {
	case "":
		s.handleQuery(request)
	case "ping":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, "unknown command: "+request.Cmd, 400)
	}
}

// handleQuery validates the request, runs the search, and encodes the
// ordered matches with their highlight positions.
func (s *Server) handleQuery(request QueryRequest) {
	query := request.Query

	if query == "" {
		s.sendError(request.ID, "missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if len(query) > s.maxQuery {
		s.sendError(request.ID, "query exceeds maximum length", 400)
		log.Debug("Query is too long in request")
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	fb, err := s.widget.Start(context.Background(), query)
	elapsed := time.Since(start)
	if err != nil {
		switch {
		case errors.Is(err, typeahead.ErrSuperseded):
			// A newer request already answered; nothing to report.
			return
		case errors.Is(err, typeahead.ErrClosed):
			s.sendError(request.ID, "server shutting down", 503)
		default:
			log.Errorf("Query %q failed: %v", query, err)
			s.sendError(request.ID, "search failed", 500)
		}
		return
	}
	if fb == nil {
		// Below the trigger threshold: an empty result set, not an error.
		s.send(QueryResponse{ID: request.ID, Results: []ResultEntry{}, TimeTaken: elapsed.Microseconds()})
		return
	}

	matches := fb.Matches
	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]ResultEntry, len(matches))
	for i, m := range matches {
		results[i] = ResultEntry{
			Value:   m.Value,
			Rank:    i + 1,
			Indexes: m.Indexes,
		}
	}

	s.send(QueryResponse{
		ID:        request.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	})
}

// send encodes a response onto the output stream
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(QueryError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
