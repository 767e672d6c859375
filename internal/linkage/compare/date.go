package compare

import (
	"sort"

	"linkage-service/internal/linkage/model"
)

// CompareDate scores two YYYYMMDD strings: equal, one typo, or (with two
// edits) swapped day digits, swapped month digits, or a permuted year.
// At most one of the last three is set. Empty values are compared like any
// other string.
func CompareDate(a, b string) Result {
	r := newResult(model.Date)
	if a == b {
		r.Scores[0] = 1
	}

	switch dist := EditDistance(a, b); {
	case dist == 1:
		r.Scores[1] = 1
	case dist == 2 && len(a) == 8 && len(b) == 8:
		dayA, monthA, yearA := a[6:], a[4:6], a[:4]
		dayB, monthB, yearB := b[6:], b[4:6], b[:4]
		switch {
		case reverse(dayA) == dayB:
			r.Scores[2] = 1
		case reverse(monthA) == monthB:
			r.Scores[3] = 1
		case EditDistance(yearA, yearB) == 2 && sortedChars(yearA) == sortedChars(yearB):
			r.Scores[4] = 1
		}
	}
	return r.done()
}

func reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

func sortedChars(s string) string {
	rs := []rune(s)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return string(rs)
}
