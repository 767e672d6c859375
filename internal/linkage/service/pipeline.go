// Package service runs a scoring pass over a whole table: frequencies,
// per-row comparison, ordering.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"linkage-service/internal/linkage/compare"
	"linkage-service/internal/linkage/freq"
	"linkage-service/internal/linkage/model"
)

var ErrSortColumn = errors.New("sort column not found")

// DefaultChunkRows is how many rows a worker takes at a time.
const DefaultChunkRows = 100

// Stage is the lifecycle position of a Pipeline.
type Stage int

const (
	StageInit Stage = iota
	StageBuildFrequencies
	StageScoreRows
	StageSort
	StageWrite
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageBuildFrequencies:
		return "build_frequencies"
	case StageScoreRows:
		return "score_rows"
	case StageSort:
		return "sort"
	case StageWrite:
		return "write"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ProgressFunc receives percent done (0..100), a "processed/total" message
// and the estimated seconds left. It is only ever called from the goroutine
// running the pipeline.
type ProgressFunc func(percent int, msg string, eta float64)

type Options struct {
	SortBy    string // output column to order by; "" keeps input order
	Ascending bool
	Workers   int // <= 0 uses every CPU; 1 scores on the calling goroutine
	ChunkRows int
	Compare   compare.Options
	Progress  ProgressFunc
	Logger    zerolog.Logger
}

// Pipeline scores one table for a fixed list of field pairs.
type Pipeline struct {
	pairs  []model.FieldPair
	opts   Options
	stage  Stage
	runID  string
	header []string
	log    zerolog.Logger
}

func New(pairs []model.FieldPair, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ChunkRows <= 0 {
		opts.ChunkRows = DefaultChunkRows
	}
	id := uuid.NewString()
	return &Pipeline{
		pairs: pairs,
		opts:  opts,
		runID: id,
		log:   opts.Logger.With().Str("run", id).Logger(),
	}
}

func (p *Pipeline) Stage() Stage { return p.stage }

func (p *Pipeline) RunID() string { return p.runID }

// Header is the output header, known once Init has passed.
func (p *Pipeline) Header() []string { return p.header }

func (p *Pipeline) enter(s Stage) {
	p.stage = s
	p.log.Debug().Stringer("stage", s).Msg("pipeline stage")
}

// Init checks the pairs against the input header and the sort column
// against the output header. Nothing is built or scored before it passes.
func (p *Pipeline) Init(header []string) error {
	p.enter(StageInit)
	for i, fp := range p.pairs {
		if fp.Type.Width() == 0 {
			return fmt.Errorf("pair %d: %w: %q", i, model.ErrUnknownType, fp.Type.String())
		}
		if fp.Left < 0 || fp.Left >= len(header) || fp.Right < 0 || fp.Right >= len(header) {
			return fmt.Errorf("pair %d (%d,%d) with %d columns: %w", i, fp.Left, fp.Right, len(header), model.ErrColumnIndex)
		}
	}
	out := model.OutputColumns(header, p.pairs)
	if p.opts.SortBy != "" && indexOf(out, p.opts.SortBy) < 0 {
		return fmt.Errorf("%w: %q", ErrSortColumn, p.opts.SortBy)
	}
	p.header = out
	return nil
}

// Run takes tbl from Init through Sort. freqs builds the frequency context
// of each pair; it is only called once Init has passed. The caller writes
// the returned table and then calls Finish.
func (p *Pipeline) Run(ctx context.Context, tbl *model.Table, freqs func() (freq.Set, error)) (*model.Table, error) {
	start := time.Now()
	if err := p.Init(tbl.Header); err != nil {
		return nil, err
	}

	p.enter(StageBuildFrequencies)
	set, err := freqs()
	if err != nil {
		return nil, err
	}

	p.enter(StageScoreRows)
	rows, err := p.score(ctx, tbl.Rows, set)
	if err != nil {
		return nil, err
	}
	out := &model.Table{Header: p.header, Rows: rows}

	p.enter(StageSort)
	if p.opts.SortBy != "" {
		sortRows(out.Rows, indexOf(out.Header, p.opts.SortBy), p.opts.Ascending)
	}
	p.enter(StageWrite)

	p.log.Info().
		Str("rows", humanize.Comma(int64(len(rows)))).
		Int("pairs", len(p.pairs)).
		Int("workers", p.opts.Workers).
		Dur("elapsed", time.Since(start)).
		Msg("rows scored")
	return out, nil
}

// Finish marks the run as written.
func (p *Pipeline) Finish() { p.enter(StageDone) }

func (p *Pipeline) score(ctx context.Context, rows [][]string, set freq.Set) ([][]string, error) {
	prog := newTracker(len(rows), p.opts.Progress)
	prog.begin()
	var (
		out [][]string
		err error
	)
	if p.opts.Workers == 1 || len(rows) <= p.opts.ChunkRows {
		out, err = p.scoreSequential(ctx, rows, set, prog)
	} else {
		out, err = p.scoreParallel(ctx, rows, set, prog)
	}
	if err != nil {
		return nil, err
	}
	prog.finish()
	return out, nil
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
