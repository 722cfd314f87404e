package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/unipick/internal/logger"
	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/config"
	"github.com/bastiangx/unipick/pkg/mode"
)

// Server handles the IPC between a host launcher and the unicode mode
type Server struct {
	mode       *mode.Mode
	loader     *config.Loader
	generation uint64
	limit      int
	lastErr    error
	logger     *log.Logger

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
}

// NewServer creates a server speaking over stdin/stdout
func NewServer(build mode.IndexFunc, loader *config.Loader) *Server {
	return NewServerIO(build, loader, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over arbitrary streams
func NewServerIO(build mode.IndexFunc, loader *config.Loader, r io.Reader, w io.Writer) *Server {
	if loader == nil {
		loader = config.NewLoader("", nil)
	}
	cfg := loader.Config()

	bw := bufio.NewWriter(w)
	s := &Server{
		loader:     loader,
		generation: loader.Generation(),
		limit:      cfg.Search.DefaultLimit,
		logger:     logger.New("server"),
		decoder:    msgpack.NewDecoder(r),
		writer:     bw,
		encoder:    msgpack.NewEncoder(bw),
	}
	s.mode = mode.New(build, mode.Config{
		Name:   "unicode",
		Limit:  func() int { return s.limit },
		Search: cfg.SearchOptions(),
	})
	return s
}

// Mode returns the adapter the server drives
func (s *Server) Mode() *mode.Mode {
	return s.mode
}

// Start sends the ready signal and serves requests until the input closes
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server.")
				return nil
			}
			// the stream cannot be resynchronized after a broken value
			s.sendError("", "Malformed msgpack stream", CodeBadRequest)
			return fmt.Errorf("reading request: %w", err)
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", CodeBadRequest)
			continue
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches on the op after picking up config changes
func (s *Server) handleRequest(req Request) {
	s.refreshConfig()

	switch req.Op {
	case OpEnter:
		s.handleEnter(req)
	case OpExit:
		s.mode.Deactivate()
		s.sendResponse(StatusResponse{ID: req.ID, Status: mode.StateInactive.String()})
	case OpQuery:
		s.handleQuery(req)
	case OpSelect:
		s.handleSelect(req)
	case OpComplete:
		s.handleComplete(req)
	case OpInfo:
		s.handleInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %q", req.Op), CodeBadRequest)
	}
}

// refreshConfig applies a reloaded config; it runs on the request goroutine
// so the mode never sees concurrent changes.
func (s *Server) refreshConfig() {
	gen := s.loader.Generation()
	if gen == s.generation {
		return
	}
	s.generation = gen
	s.mode.Configure(s.loader.Config().SearchOptions())
	s.logger.Debugf("Applied config generation %d", gen)
}

func (s *Server) handleEnter(req Request) {
	if err := s.mode.Activate(); err != nil {
		s.lastErr = err
		s.sendError(req.ID, err.Error(), CodeUnavailable)
		return
	}
	s.lastErr = nil
	s.sendResponse(StatusResponse{ID: req.ID, Status: s.mode.State().String()})
}

// requireActive reports an error response when the mode cannot take events
func (s *Server) requireActive(req Request) bool {
	if s.mode.State() == mode.StateActive {
		return true
	}
	if s.lastErr != nil {
		s.sendError(req.ID, s.lastErr.Error(), CodeUnavailable)
		return false
	}
	s.sendError(req.ID, mode.ErrInactive.Error(), CodeInactive)
	return false
}

func (s *Server) handleQuery(req Request) {
	if !s.requireActive(req) {
		return
	}

	s.limit = s.loader.Config().Limit(req.Limit)

	start := time.Now()
	lines := s.mode.OnQueryChanged(req.Query)
	elapsed := time.Since(start)

	results := s.mode.Results()
	ranks := utils.CreateRankList(len(lines))
	rows := make([]QueryRow, len(lines))
	for i, line := range lines {
		rows[i] = QueryRow{
			Display:   line,
			Codepoint: int32(results[i].Codepoint),
			Rank:      ranks[i],
		}
	}

	s.sendResponse(QueryResponse{
		ID:        req.ID,
		Rows:      rows,
		Count:     len(rows),
		TimeTaken: elapsed.Microseconds(),
		Message:   s.mode.Message(),
	})
}

func (s *Server) handleSelect(req Request) {
	if !s.requireActive(req) {
		return
	}

	out := s.mode.OnEntrySelected(req.Index)
	if out.Action != mode.ActionSelect {
		resp := SelectResponse{ID: req.ID, OK: false}
		if out.Err != nil {
			resp.Reason = out.Err.Error()
		}
		s.sendResponse(resp)
		return
	}

	s.sendResponse(SelectResponse{
		ID:        req.ID,
		OK:        true,
		Codepoint: int32(out.Entry.Codepoint),
		Name:      out.Entry.Name,
		Emit:      s.mode.OnActivate(out.Entry),
	})
}

func (s *Server) handleComplete(req Request) {
	if !s.requireActive(req) {
		return
	}
	text, ok := s.mode.OnComplete(req.Index)
	s.sendResponse(CompleteResponse{ID: req.ID, OK: ok, Text: text})
}

func (s *Server) handleInfo(req Request) {
	cfg := s.loader.Config()
	info := InfoResponse{
		ID:           req.ID,
		State:        s.mode.State().String(),
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Categories:   cfg.Search.Categories,
		ConfigPath:   s.loader.Path(),
	}
	if searcher := s.mode.Searcher(); searcher != nil {
		stats := searcher.Stats()
		info.Entries = stats["entries"]
		info.Tokens = stats["tokens"]
		for _, cat := range searcher.Index().Catalog().Categories() {
			info.Available = append(info.Available, string(cat))
		}
	}
	s.sendResponse(info)
}

// sendResponse encodes one msgpack value and flushes it to the host
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
