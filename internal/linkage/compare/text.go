package compare

import (
	"strings"

	"linkage-service/internal/linkage/model"
)

// CompareText scores free text like a name, except that rarity is read from
// one flat map. A nil map counts as empty, so every fragment is rare.
// Two bare YYYYMMDD values skip the rare/common slots.
func CompareText(a, b string, freq model.FreqMap) Result {
	r := newResult(model.Text)
	p1, p2 := strings.Fields(a), strings.Fields(b)
	if len(p1) == 0 || len(p2) == 0 {
		return r
	}
	fragmentScores(p1, p2, r.Scores, true)

	if !dateShaped(p1, p2) {
		t1 := float64(len(p1))
		rare, common := 0, 0
		for _, p := range p1 {
			n := freq[p]
			if n < rareBelow {
				rare++
			}
			if n > commonAbove {
				common++
			}
		}
		r.Scores[3] = float64(rare) / t1
		r.Scores[4] = -float64(common) / t1
	}
	return r.done()
}

func dateShaped(p1, p2 []string) bool {
	return len(p1) == 1 && len(p2) == 1 &&
		len(p1[0]) == 8 && isDigits(p1[0]) &&
		len(p2[0]) == 8 && isDigits(p2[0])
}
