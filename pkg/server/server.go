package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordindex/internal/logger"
	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/bastiangx/wordindex/pkg/config"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest = 400
	codeTooLarge   = 413
	codeInternal   = 500
)

// Server handles the msgpack IPC for word completions
type Server struct {
	completer    suggest.Completer
	config       *config.Config
	dec          *msgpack.Decoder
	in           io.Closer
	out          *bufio.Writer
	enc          *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

type decoded struct {
	req Request
	err error
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(completer suggest.Completer, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	in, _ := r.(io.Closer)
	return &Server{
		in:        in,
		completer: completer,
		config:    cfg,
		dec:       msgpack.NewDecoder(bufio.NewReader(r)),
		out:       out,
		enc:       msgpack.NewEncoder(out),
		logger:    logger.New("ipc"),
	}
}

// Start announces readiness and serves requests until the input ends or ctx is done.
// A message that cannot be decoded ends the session, since the stream cannot be
// resynchronized after it.
//
// When ctx is done and the reader is an io.Closer, it is closed to unblock the pending
// read. Otherwise the reading goroutine stays blocked until the input ends.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting IPC server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	reqs := make(chan decoded)
	go func() {
		defer close(reqs)
		for {
			var req Request
			err := s.dec.Decode(&req)
			select {
			case reqs <- decoded{req: req, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if s.in != nil {
				_ = s.in.Close()
			}
			s.logger.Debug("IPC server stopped", "requests", s.requestCount)
			return nil
		case d, ok := <-reqs:
			if !ok {
				return nil
			}
			if d.err != nil {
				if errors.Is(d.err, io.EOF) {
					s.logger.Debug("Input closed", "requests", s.requestCount)
					return nil
				}
				s.logger.Errorf("Decoding request: %v", d.err)
				_ = s.sendError("", "invalid msgpack request", codeBadRequest)
				return fmt.Errorf("decode request: %w", d.err)
			}
			if err := s.handleRequest(d.req); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleRequest(req Request) error {
	s.requestCount++

	switch req.Action {
	case "", ActionComplete:
		return s.handleComplete(req)
	case ActionInsert:
		return s.handleInsert(req)
	case ActionBulk:
		return s.handleBulk(req)
	case ActionStats:
		return s.send(StatsResponse{ID: req.ID, Status: "ok", Stats: s.completer.Stats()})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), codeBadRequest)
	}
}

func (s *Server) handleComplete(req Request) error {
	srv := s.config.Server
	prefixLen := len(req.Prefix)

	if prefixLen < srv.MinPrefix {
		s.logger.Debug("Prefix too short", "prefix", req.Prefix)
		return s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d bytes", srv.MinPrefix), codeBadRequest)
	}
	if prefixLen > srv.MaxPrefix {
		s.logger.Debug("Prefix too long", "len", prefixLen)
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d bytes", srv.MaxPrefix), codeBadRequest)
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.config.Index.DefaultLimit
	}
	if limit > srv.MaxLimit {
		limit = srv.MaxLimit
	}

	start := time.Now()
	var results []suggest.Suggestion
	if srv.EnableFilter && req.Prefix != "" && !utils.IsValidInput(req.Prefix) {
		s.logger.Debug("Prefix filtered out", "prefix", req.Prefix)
	} else {
		results = s.completer.SuggestScored(req.Prefix, limit)
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(results))
	suggestions := make([]CompletionSuggestion, len(results))
	for i, r := range results {
		suggestions[i] = CompletionSuggestion{Word: r.Term, Rank: ranks[i], Score: r.Score}
	}

	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleInsert(req Request) error {
	score := req.Score
	if score == 0 {
		score = s.config.Index.DefaultScore
	}
	if err := s.completer.Insert(req.Word, score); err != nil {
		s.logger.Debug("Insert rejected", "word", req.Word, "err", err)
		return s.sendError(req.ID, err.Error(), codeBadRequest)
	}
	return s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleBulk(req Request) error {
	if max := s.config.Index.MaxBatch; len(req.Terms) > max {
		return s.sendError(req.ID, fmt.Sprintf("batch of %d terms exceeds limit of %d", len(req.Terms), max), codeTooLarge)
	}

	entries := make([]suggest.Entry, len(req.Terms))
	for i, e := range req.Terms {
		if e.Score == 0 {
			e.Score = s.config.Index.DefaultScore
		}
		entries[i] = e
	}

	res := s.completer.BulkLoad(entries)
	if res.Rejected > 0 {
		s.logger.Debugf("Bulk request %s rejected %d of %d terms", req.ID, res.Rejected, len(entries))
	}
	return s.send(BulkResponse{
		ID:       req.ID,
		Status:   "ok",
		Inserted: res.Inserted,
		Updated:  res.Updated,
		Repeated: res.Repeated,
		Rejected: res.Rejected,
	})
}

// send encodes one response and flushes it so the client can read it right away.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
