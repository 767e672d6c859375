// Package textnorm canonicalizes raw cell values before comparison.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// name particles dropped from every value
var stopWords = map[string]struct{}{
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {},
}

// Kinship suffixes; at most one is stripped, and only from the end.
var kinshipSuffixes = []string{
	" junior", " jr", " neto", " bisneto",
	" filho", " filha", " sobrinha", " sobrinho",
	" segundo", " terceiro",
}

var notAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize is the main pipeline: "  João da Silva Jr. " -> "joao silva".
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	out := FoldLower(s)

	// 1) only letters, digits and spaces survive
	out = notAlnum.ReplaceAllString(out, "")

	// 2) particles
	parts := strings.Fields(out)
	kept := parts[:0]
	for _, p := range parts {
		if _, ok := stopWords[p]; !ok {
			kept = append(kept, p)
		}
	}
	out = strings.Join(kept, " ")

	// 3) kinship suffix
	for _, suf := range kinshipSuffixes {
		if strings.HasSuffix(out, suf) {
			out = out[:len(out)-len(suf)]
			break
		}
	}
	return strings.TrimSpace(out)
}

// FoldLower lower-cases, trims and transliterates to ASCII (Á -> a, º -> o).
func FoldLower(s string) string {
	return unidecode.Unidecode(strings.TrimSpace(strings.ToLower(s)))
}
