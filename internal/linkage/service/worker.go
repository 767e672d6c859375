package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/sync/errgroup"

	"linkage-service/internal/linkage/compare"
	"linkage-service/internal/linkage/freq"
	"linkage-service/internal/linkage/model"
	"linkage-service/internal/linkage/textnorm"
	"linkage-service/internal/utils"
)

// worker holds what every row needs. One is built per goroutine and is
// only read after that.
type worker struct {
	pairs []model.FieldPair
	freqs freq.Set
	cmp   compare.Options
	width int
}

func (p *Pipeline) newWorker(set freq.Set) *worker {
	return &worker{
		pairs: p.pairs,
		freqs: set,
		cmp:   p.opts.Compare,
		width: len(p.header),
	}
}

// scoreRow returns row ++ every pair's sub-scores ++ the row total.
func (w *worker) scoreRow(row []string) []string {
	out := make([]string, 0, w.width)
	out = append(out, row...)
	total := 0.0
	for i, fp := range w.pairs {
		a, b := prepare(fp, cellAt(row, fp.Left)), prepare(fp, cellAt(row, fp.Right))
		var r compare.Result
		if fp.Role == model.RoleBirth && (len(a) != 8 || len(b) != 8) {
			r = compare.Zero(fp.Type)
		} else {
			r = w.cmp.Compare(fp.Type, a, b, w.freqs.For(i))
		}
		out = append(out, r.Formatted()...)
		total += r.Total
	}
	return append(out, utils.FormatScore(total))
}

// prepare normalizes a cell for its comparator. Numbers keep their sign and
// separators; birth dates of the fixed run are taken as written.
func prepare(fp model.FieldPair, v string) string {
	if fp.Type == model.Numeric || fp.Role == model.RoleBirth {
		return strings.TrimSpace(v)
	}
	return textnorm.Normalize(v)
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func (p *Pipeline) scoreSequential(ctx context.Context, rows [][]string, set freq.Set, prog *tracker) ([][]string, error) {
	w := p.newWorker(set)
	out := make([][]string, len(rows))
	for i, row := range rows {
		if i%p.opts.ChunkRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = w.scoreRow(row)
		prog.advance(1)
	}
	return out, nil
}

type span struct{ start, end int }

// scoreParallel hands fixed-size chunks to a pool of workers. Each chunk
// writes only its own slots of out, so the input order holds however the
// chunks finish. Progress is reported here, as chunks come back.
func (p *Pipeline) scoreParallel(ctx context.Context, rows [][]string, set freq.Set, prog *tracker) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]string, len(rows))
	g, gctx := errgroup.WithContext(ctx)

	spans := make(chan span)
	g.Go(func() error {
		defer close(spans)
		for start := 0; start < len(rows); start += p.opts.ChunkRows {
			s := span{start, min(start+p.opts.ChunkRows, len(rows))}
			select {
			case spans <- s:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	done := make(chan int, p.opts.Workers)
	for n := 0; n < p.opts.Workers; n++ {
		w := p.newWorker(set)
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					p.log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("worker panic")
					err = fmt.Errorf("worker panic: %v", rec)
				}
			}()
			for s := range spans {
				for i := s.start; i < s.end; i++ {
					out[i] = w.scoreRow(rows[i])
				}
				select {
				case done <- s.end - s.start:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(done)
	}()
	for n := range done {
		prog.advance(n)
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return out, nil
}
