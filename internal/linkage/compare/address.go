package compare

import (
	"regexp"
	"strings"

	"linkage-service/internal/linkage/textnorm"
)

var addressStopWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "e": {},
}

// street-type abbreviations
var streetEquiv = map[string]string{
	"av": "avenida", "avd": "avenida", "aven": "avenida", "avenida": "avenida", "ave": "avenida",
	"al": "alameda", "alm": "alameda", "alameda": "alameda",
	"r": "rua", "rua": "rua",
	"rod": "rodovia", "rodovia": "rodovia",
	"estr": "estrada", "est": "estrada", "estrada": "estrada",
	"tv": "travessa", "trav": "travessa", "travessa": "travessa",
	"pc": "praca", "prac": "praca", "praca": "praca",
	"lgo": "largo", "largo": "largo",
	"vl": "vila", "vila": "vila",
	"jd": "jardim", "jardim": "jardim",
	"pq": "parque", "pqe": "parque", "parque": "parque",
}

// complement abbreviations
var complementEquiv = map[string]string{
	"ap": "apto", "apt": "apto", "apto": "apto", "apartamento": "apto", "apart": "apto",
	"bl": "bloco", "blc": "bloco", "bloco": "bloco", "blocos": "bloco",
	"cj": "conjunto", "cjto": "conjunto", "conj": "conjunto", "conjunto": "conjunto",
	"sala": "sala", "sl": "sala",
	"casa": "casa", "cs": "casa",
	"andar": "andar",
	"qd": "quadra", "quadra": "quadra",
	"lt": "lote", "lote": "lote",
	"fundos": "fundos", "frente": "frente",
	"galpao": "galpao",
	"box": "box",
}

var numberMarkers = map[string]struct{}{
	"n": {}, "no": {}, "num": {}, "numero": {}, "nro": {}, "nr": {},
}

var noNumberMarkers = map[string]struct{}{
	"sn": {}, "s": {}, "semnumero": {}, "sem_numero": {}, "semn": {},
}

// a single letter right after one of these belongs to the complement
var allowSingleAfter = map[string]struct{}{
	"bloco": {}, "casa": {}, "apto": {}, "quadra": {}, "lote": {}, "andar": {}, "box": {},
}

const (
	numberToken   = "numero"
	noNumberToken = "semnumero"
	// NoNumber is the house number of "s/n" addresses.
	NoNumber = "sn"
)

var (
	reAddrPunct    = regexp.MustCompile(`[#'"()\[\]{}\-/\\.,;:]`)
	reDigitLetter  = regexp.MustCompile(`(\d+)([a-z])`)
	reLetterDigit  = regexp.MustCompile(`([a-z])(\d+)`)
	ordinalReplace = strings.NewReplacer("º", " ", "°", " ", "ª", " ")
)

// Tokenize splits a free-form address into canonical tokens:
// "R. dos Andradas, nº 123 - Bl A" -> [rua andradas numero 123 bloco a].
func Tokenize(raw string) []string {
	if raw == "" {
		return nil
	}
	txt := textnorm.FoldLower(raw)
	txt = ordinalReplace.Replace(txt)
	txt = reAddrPunct.ReplaceAllString(txt, " ")
	txt = reDigitLetter.ReplaceAllString(txt, "$1 $2")
	txt = reLetterDigit.ReplaceAllString(txt, "$1 $2")

	fields := strings.Fields(txt)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, ok := numberMarkers[tok]; ok {
			tok = numberToken
		}
		if v, ok := streetEquiv[tok]; ok {
			tok = v
		}
		if v, ok := complementEquiv[tok]; ok {
			tok = v
		}
		if _, ok := noNumberMarkers[tok]; ok {
			tok = noNumberToken
		}
		if _, ok := addressStopWords[tok]; ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// AddressParts is a tokenized address split into its components.
type AddressParts struct {
	Street           string
	StreetTokens     []string
	Number           string // digits without leading zeros, NoNumber, or ""
	Complement       string
	ComplementTokens []string
	AllTokens        []string // street ++ number ++ complement
}

var complementMarkers = func() map[string]struct{} {
	m := make(map[string]struct{}, len(complementEquiv))
	for _, v := range complementEquiv {
		m[v] = struct{}{}
	}
	return m
}()

// NormalizeAddress walks the tokens left to right. The first bare number is
// the house number; a number marker, a later number or a complement marker
// switches to complement mode, after which everything is complement.
func NormalizeAddress(raw string) AddressParts {
	tokens := Tokenize(raw)
	if len(tokens) == 0 {
		return AddressParts{}
	}

	var (
		street, compl  []string
		number         string
		complementMode bool
		lastMarker     string
	)
	isMarker := func(tok string) bool {
		_, ok := complementMarkers[tok]
		return ok
	}
	for _, tok := range tokens {
		switch {
		case tok == numberToken:
			complementMode = true
			lastMarker = ""
		case tok == noNumberToken:
			number = NoNumber
			complementMode = true
			lastMarker = ""
		case isDigits(tok):
			val := strings.TrimLeft(tok, "0")
			if val == "" {
				val = "0"
			}
			if number == "" {
				number = val
			} else {
				compl = append(compl, val)
			}
			complementMode = true
			lastMarker = ""
		case isMarker(tok):
			compl = append(compl, tok)
			complementMode = true
			lastMarker = tok
		default:
			_, afterMarker := allowSingleAfter[lastMarker]
			if len([]rune(tok)) == 1 && (afterMarker || complementMode) {
				// lastMarker is kept: "bloco a b"
				compl = append(compl, tok)
				continue
			}
			if complementMode {
				compl = append(compl, tok)
			} else {
				street = append(street, tok)
			}
			lastMarker = ""
		}
	}

	all := make([]string, 0, len(street)+1+len(compl))
	all = append(all, street...)
	if number != "" {
		all = append(all, number)
	}
	all = append(all, compl...)

	return AddressParts{
		Street:           strings.Join(street, " "),
		StreetTokens:     street,
		Number:           number,
		Complement:       strings.Join(compl, " "),
		ComplementTokens: compl,
		AllTokens:        all,
	}
}
