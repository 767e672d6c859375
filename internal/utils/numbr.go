package utils

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// plain decimal digits with an optional exponent; no base prefixes or fractions
var decimalRe = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var spaceRepl = strings.NewReplacer(" ", "", "\u00A0", "", "\u202F", "", "\u2009", "", "\t", "", "_", "", "'", "")

// ParseDecimal parses "1.234,50", "1,234.50", "-7", "+3", "2 345,6" etc.
// When both separators appear the rightmost one is the decimal point;
// a lone comma is a decimal comma.
func ParseDecimal(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u2212", "-"))
	if s == "" {
		return nil, false
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	s = spaceRepl.Replace(s)
	if s == "" {
		return nil, false
	}

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}
	// "1.234.567" -> "1234.567"
	if strings.Count(s, ".") > 1 {
		i := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
	}
	if !decimalRe.MatchString(s) {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(sign + s)
	if !ok {
		return nil, false
	}
	return r, true
}

// ParseFloat is ParseDecimal rounded to float64.
func ParseFloat(s string) (float64, bool) {
	r, ok := ParseDecimal(s)
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

// FormatScore renders v with two fractional digits, half-up (away from
// zero) rounding and a decimal comma: 0.665 -> "0,67", -1/3 -> "-0,33".
func FormatScore(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	cents := int64(math.Floor(math.Abs(v)*100 + 0.5))
	var b strings.Builder
	if v < 0 && cents != 0 {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(cents/100, 10))
	b.WriteByte(',')
	frac := cents % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}
