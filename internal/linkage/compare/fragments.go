package compare

import (
	"strings"
)

const (
	rareBelow   = 5    // count < 5: rare fragment
	commonAbove = 1000 // count > 1000: common fragment

	phoneticWeight = 0.8
	abbrevWeight   = 0.5
)

// fragmentScores fills the slots shared by names and free text: first/last
// fragment equal, share of p1 found in p2, sound-alikes and abbreviations.
// Every ratio divides by len(p1), so the result depends on argument order.
func fragmentScores(p1, p2 []string, scores []float64, abbrev bool) {
	t1 := float64(len(p1))
	if p1[0] == p2[0] {
		scores[0] = 1
	}
	if p1[len(p1)-1] == p2[len(p2)-1] {
		scores[1] = 1
	}

	inter := 0
	for _, f := range p1 {
		if contains(p2, f) {
			inter++
		}
	}
	scores[2] = float64(inter) / t1

	codes2 := make([]string, len(p2))
	for i, f := range p2 {
		codes2[i] = PhoneticCode(f)
	}
	alike := 0
	for _, f := range p1 {
		c1 := PhoneticCode(f)
		for _, c2 := range codes2 {
			if codesClose(c1, c2) {
				alike++
				break
			}
		}
	}
	scores[5] = float64(alike) / t1 * phoneticWeight

	if abbrev {
		scores[6] = float64(abbreviations(p1, p2)+abbreviations(p2, p1)) / t1 * abbrevWeight
	}
}

// abbreviations counts one-letter fragments of xs that start some fragment of ys.
func abbreviations(xs, ys []string) int {
	n := 0
	for _, x := range xs {
		if len([]rune(x)) != 1 {
			continue
		}
		for _, y := range ys {
			if strings.HasPrefix(y, x) {
				n++
				break
			}
		}
	}
	return n
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
