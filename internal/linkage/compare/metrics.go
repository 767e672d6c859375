package compare

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// EditDistance is plain Levenshtein (unit costs, no transposition).
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

var soundexDigit = map[rune]rune{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// PhoneticCode is American Soundex: the first letter kept, then up to three
// digits. H and W do not break a run of equal digits, vowels and other
// characters do. Empty input yields "0000".
func PhoneticCode(word string) string {
	if word == "" {
		return "0000"
	}
	rs := []rune(strings.ToUpper(word))

	code := make([]rune, 1, 4)
	code[0] = rs[0]
	last, hasLast := soundexDigit[rs[0]]
	count := 1
	for _, r := range rs[1:] {
		if count == 4 {
			break
		}
		if d, ok := soundexDigit[r]; ok {
			if !hasLast || d != last {
				code = append(code, d)
				count++
			}
			last, hasLast = d, true
			continue
		}
		if r != 'H' && r != 'W' {
			hasLast = false
		}
	}
	for ; count < 4; count++ {
		code = append(code, '0')
	}
	return string(code)
}

// PhoneticClose reports whether two tokens share at least three of the four
// soundex positions.
func PhoneticClose(a, b string) bool {
	return codesClose(PhoneticCode(a), PhoneticCode(b))
}

func codesClose(ca, cb string) bool {
	ra, rb := []rune(ca), []rune(cb)
	same := 0
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] == rb[i] {
			same++
		}
	}
	return same >= 3
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
