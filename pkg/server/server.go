package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/avosk/gridfill/pkg/config"
	"github.com/avosk/gridfill/pkg/fill"
	"github.com/avosk/gridfill/pkg/grid"
	"github.com/avosk/gridfill/pkg/wordsrc"
)

// envelope is the union of all request shapes; one decode, then dispatch on
// which fields are set.
type envelope struct {
	FillRequest
	Pattern string `msgpack:"q"`
	Limit   int    `msgpack:"l"`
}

// Server handles the IPC for grid generation
type Server struct {
	source wordsrc.Source
	cfg    *config.Config
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	out    *bufio.Writer
}

// NewServer creates a generation server using stdin/stdout for IPC
func NewServer(cfg *config.Config, source wordsrc.Source) *Server {
	out := bufio.NewWriter(os.Stdout)
	return &Server{
		source: source,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(bufio.NewReader(os.Stdin)),
		enc:    msgpack.NewEncoder(out),
		out:    out,
	}
}

// Start begins listening for IPC requests. It returns nil on EOF, when the
// client closed our stdin.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting server.")
	s.send(map[string]string{"status": "ready"})

	for {
		var req envelope
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}

		switch {
		case req.Pattern != "":
			s.handleLookup(req.ID, req.Pattern, req.Limit)
		case len(req.Rows) > 0:
			s.handleFill(ctx, req.FillRequest)
		default:
			s.sendError(req.ID, "request needs a grid ('g') or a pattern ('q')", 400)
		}
	}
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(FillError{ID: id, Error: message, Code: code})
}

// handleFill parses the grid, merges per-request overrides over the config
// defaults and runs the engine.
func (s *Server) handleFill(ctx context.Context, req FillRequest) {
	g, err := grid.Parse(req.Rows)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	opts, err := s.cfg.ToOptions()
	if err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	if req.Strategy != "" {
		strategy, err := fill.ParseStrategy(req.Strategy)
		if err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		opts.Strategy = strategy
	}
	if req.MaxAttempts > 0 {
		opts.MaxAttempts = req.MaxAttempts
	}
	if req.TimeoutMs > 0 {
		opts.MaxDuration = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	if req.Randomized {
		opts.TieBreak = fill.Randomized
		opts.Seed = req.Seed
	}
	if req.RepairBudget > 0 {
		opts.RepairBudget = req.RepairBudget
	}
	opts.RequireFullFill = req.RequireFull

	sources := []wordsrc.Source{s.source}
	if len(req.Words) > 0 {
		sources = append(sources, wordsrc.FromWords(req.Words))
	}

	f := fill.New(opts, sources...)
	f.SetBlacklist(s.cfg.Sources.Blacklist...)

	start := time.Now()
	res, err := f.Fill(ctx, g)
	if err != nil {
		if errors.Is(err, fill.ErrNoSolution) {
			s.sendError(req.ID, "no full fill exists for this grid", 409)
			return
		}
		s.sendError(req.ID, err.Error(), 500)
		return
	}

	assignments := make([]FillAssignment, len(res.Assignments))
	for i, a := range res.Assignments {
		dir := "across"
		if a.Slot.Dir == grid.Down {
			dir = "down"
		}
		assignments[i] = FillAssignment{
			Row:  a.Slot.Start.Row,
			Col:  a.Slot.Start.Col,
			Dir:  dir,
			Word: a.Word,
		}
	}
	s.send(FillResponse{
		ID:          req.ID,
		Rows:        g.TextRows(),
		Assignments: assignments,
		Complete:    res.Complete,
		CellRatio:   res.Score.FilledCellRatio,
		SlotRatio:   res.Score.FilledSlotRatio,
		Attempts:    res.Attempts,
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

// handleLookup answers a raw pattern query against the word sources.
func (s *Server) handleLookup(id, pattern string, limit int) {
	if limit < 1 {
		limit = s.cfg.CLI.MaxResults
	}

	start := time.Now()
	words, err := s.source.Lookup(pattern, nil)
	if err != nil {
		var bad *wordsrc.InvalidPatternError
		if errors.As(err, &bad) {
			s.sendError(id, bad.Error(), 400)
			return
		}
		s.sendError(id, err.Error(), 500)
		return
	}
	if len(words) > limit {
		words = words[:limit]
	}
	s.send(LookupResponse{
		ID:        id,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}
