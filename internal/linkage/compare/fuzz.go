package compare

import (
	"sort"
	"strings"
)

// indelDistance counts insertions+deletions turning a into b
// (len(a)+len(b)-2*LCS). Substitutions are not allowed.
func indelDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
	}
	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return al + bl - 2*dp[al][bl]
}

// normSim turns a distance over lensum characters into a 0..100 score.
func normSim(dist, lensum int) float64 {
	if lensum == 0 {
		return 100
	}
	return 100 - 100*float64(dist)/float64(lensum)
}

// setRatio is the classic token-set ratio (0..100) over whitespace tokens:
// the shared tokens are compared against each side's leftovers and the best
// of the three pairings wins. Full containment scores 100.
func setRatio(s1, s2 string) float64 {
	a, b := tokenSet(s1), tokenSet(s2)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var sect, onlyA, onlyB []string
	for t := range a {
		if _, ok := b[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range b {
		if _, ok := a[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	joinedA := strings.Join(onlyA, " ")
	joinedB := strings.Join(onlyB, " ")

	sectLen := len([]rune(strings.Join(sect, " ")))
	sep := 0
	if sectLen > 0 {
		sep = 1
	}
	abLen := len([]rune(joinedA))
	baLen := len([]rune(joinedB))
	sectABLen := sectLen + sep + abLen
	sectBALen := sectLen + sep + baLen

	// "sect ab" vs "sect ba" differ only in their tails
	best := normSim(indelDistance(joinedA, joinedB), sectABLen+sectBALen)
	if sectLen == 0 {
		return best
	}
	// "sect" vs "sect ab" / "sect ba": the distance is the appended tail
	best = max(best, normSim(sep+abLen, sectLen+sectABLen))
	best = max(best, normSim(sep+baLen, sectLen+sectBALen))
	return best
}

func tokenSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		m[t] = struct{}{}
	}
	return m
}

// TokenSetRatio scores two token lists in [0,1]: the token-set ratio of the
// space-joined lists, scaled by multiset overlap / max(len) so that extra
// tokens on either side cost something.
func TokenSetRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	base := setRatio(strings.Join(a, " "), strings.Join(b, " ")) / 100

	counts := make(map[string]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	inter := 0
	for _, t := range b {
		if counts[t] > 0 {
			counts[t]--
			inter++
		}
	}
	return base * float64(inter) / float64(max(len(a), len(b)))
}

// JaccardRatio is |A∩B| / |A∪B| over token sets; 0 when either is empty.
func JaccardRatio(a, b []string) float64 {
	sa, sb := tokenSet(strings.Join(a, " ")), tokenSet(strings.Join(b, " "))
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}
