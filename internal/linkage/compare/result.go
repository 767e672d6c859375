// Package compare holds the per-type field comparators and the string
// metrics they are built on.
package compare

import (
	"fmt"

	"linkage-service/internal/linkage/model"
	"linkage-service/internal/utils"
)

// Result is one field pair's sub-scores and their sum.
type Result struct {
	Scores []float64
	Total  float64
}

func newResult(t model.TypeCode) Result {
	return Result{Scores: make([]float64, t.Width())}
}

// done fills Total. Weights live inside each sub-score.
func (r Result) done() Result {
	r.Total = 0
	for _, s := range r.Scores {
		r.Total += s
	}
	return r
}

// Formatted renders every sub-score as "0,00".
func (r Result) Formatted() []string {
	out := make([]string, len(r.Scores))
	for i, s := range r.Scores {
		out[i] = utils.FormatScore(s)
	}
	return out
}

// Zero is the all-zero result of type t.
func Zero(t model.TypeCode) Result { return newResult(t) }

// Options tune the comparators. The zero value is the default setup.
type Options struct {
	NoAbbrev bool // skip the name abbreviation bonus
}

// Compare dispatches with default options.
func Compare(t model.TypeCode, a, b string, fc model.FreqContext) Result {
	return Options{}.Compare(t, a, b, fc)
}

// Compare dispatches on the pair type. Values must already be normalized.
// Type codes are validated when a run is configured, so an unknown one here
// is a programming error.
func (o Options) Compare(t model.TypeCode, a, b string, fc model.FreqContext) Result {
	switch t {
	case model.Date:
		return CompareDate(a, b)
	case model.Name:
		return CompareName(a, b, fc.Names, !o.NoAbbrev)
	case model.Locality:
		return CompareLocality(a, b)
	case model.Address:
		return CompareAddress(a, b)
	case model.Numeric:
		return CompareNumeric(a, b)
	case model.Text:
		return CompareText(a, b, fc.Flat)
	}
	panic(fmt.Sprintf("compare: unknown type %q", rune(t)))
}
