package compare

import (
	"strings"

	"linkage-service/internal/linkage/model"
)

// CompareName scores two normalized personal names. a is the reference
// side: ratios are taken over its fragment count. freq may be nil, in which
// case the rare/common slots stay at zero.
func CompareName(a, b string, freq *model.NameFreq, abbrev bool) Result {
	r := newResult(model.Name)
	p1, p2 := strings.Fields(a), strings.Fields(b)
	if len(p1) == 0 || len(p2) == 0 {
		return r
	}
	fragmentScores(p1, p2, r.Scores, abbrev)

	if freq != nil {
		t1 := float64(len(p1))
		r.Scores[3] = float64(countByPosition(p1, freq, func(n int) bool { return n < rareBelow })) / t1
		r.Scores[4] = -float64(countByPosition(p1, freq, func(n int) bool { return n > commonAbove })) / t1
	}
	return r.done()
}

// countByPosition looks the first fragment up in First, the inner ones in
// Middle and the last one in Last. A one-fragment name is looked up twice.
func countByPosition(parts []string, freq *model.NameFreq, hit func(int) bool) int {
	n := 0
	if hit(freq.First[parts[0]]) {
		n++
	}
	if len(parts) > 2 {
		for _, p := range parts[1 : len(parts)-1] {
			if hit(freq.Middle[p]) {
				n++
			}
		}
	}
	if hit(freq.Last[parts[len(parts)-1]]) {
		n++
	}
	return n
}
