package compare

import (
	"strings"

	"linkage-service/internal/linkage/model"
)

// CompareLocality scores "UF"+4-digit codes such as "SP1234". Anything that
// is not exactly six characters on both sides scores zero.
func CompareLocality(a, b string) Result {
	r := newResult(model.Locality)
	ra, rb := []rune(strings.ToUpper(a)), []rune(strings.ToUpper(b))
	if len(ra) != 6 || len(rb) != 6 {
		return r
	}
	ufA, codeA := string(ra[:2]), string(ra[2:])
	ufB, codeB := string(rb[:2]), string(rb[2:])

	switch {
	case ufA == ufB:
		r.Scores[0] = 1
	case EditDistance(ufA, ufB) == 1:
		r.Scores[1] = 0.5
	case PhoneticCode(ufA) == PhoneticCode(ufB):
		r.Scores[1] = 0.3
	}

	if codeA == codeB {
		r.Scores[2] = 1
		return r.done()
	}
	switch dist := EditDistance(codeA, codeB); {
	case dist == 1:
		r.Scores[3] = 0.8
	case dist == 2:
		r.Scores[3] = 0.5
	case !(isDigits(codeA) && isDigits(codeB)) && PhoneticCode(codeA) == PhoneticCode(codeB):
		r.Scores[3] = 0.4
	}
	return r.done()
}
