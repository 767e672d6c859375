package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType = errors.New("unknown field type")
	ErrColumnIndex = errors.New("column index out of range")
)

// TypeCode selects the comparator applied to a field pair.
type TypeCode byte

const (
	Date     TypeCode = 'D'
	Name     TypeCode = 'N'
	Locality TypeCode = 'C' // UF + 4-digit municipality code
	Address  TypeCode = 'L' // logradouro
	Numeric  TypeCode = 'M'
	Text     TypeCode = 'T'
)

// ParseTypeCode accepts the single-letter codes, case-insensitive.
func ParseTypeCode(s string) (TypeCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 {
		switch t := TypeCode(s[0]); t {
		case Date, Name, Locality, Address, Numeric, Text:
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t TypeCode) String() string { return string(rune(t)) }

// Width is the number of sub-scores the comparator emits.
func (t TypeCode) Width() int { return len(t.Criteria()) }

// Criteria are the fixed sub-score names, in output order.
func (t TypeCode) Criteria() []string {
	switch t {
	case Date:
		return []string{"dt iguais", "dt ap 1digi", "dt inv dia", "dt inv mes", "dt inv ano"}
	case Locality:
		return []string{"uf igual", "uf prox", "local igual", "local prox"}
	case Address:
		return []string{"via igual", "via prox", "numero igual", "compl prox", "texto prox", "tokens jacc"}
	case Numeric:
		return []string{"num igual", "num prox abs", "num prox rel", "num prox arred"}
	case Name, Text:
		return []string{
			"prim frag igual", "ult frag igual", "qtd frag iguais", "qtd frag raros",
			"qtd frag comuns", "qtd frag muito parec", "qtd frag abrev",
		}
	}
	return nil
}

// Role marks the pairs of the fixed subject/mother run. Name roles pick
// their triple from the six-file cache; a birth date is only compared when
// both sides are full YYYYMMDD values.
type Role int

const (
	RoleNone Role = iota
	RoleSubject
	RoleMother
	RoleBirth
)

// TotalColumn is the trailing aggregate column of every output table.
const TotalColumn = "nota final"

type FieldPair struct {
	Left  int      `yaml:"left" json:"left"`
	Right int      `yaml:"right" json:"right"`
	Type  TypeCode `yaml:"-" json:"-"`
	Label string   `yaml:"label" json:"label"`
	Role  Role     `yaml:"-" json:"-"`
}

// Columns returns the output column names this pair contributes.
func (p FieldPair) Columns() []string {
	crit := p.Type.Criteria()
	out := make([]string, len(crit))
	for i, c := range crit {
		out[i] = strings.TrimSpace(p.Label + " " + c)
	}
	return out
}

// OutputColumns is header ++ criteria of every pair ++ TotalColumn.
func OutputColumns(header []string, pairs []FieldPair) []string {
	out := make([]string, 0, len(header)+len(pairs)*7+1)
	out = append(out, header...)
	for _, p := range pairs {
		out = append(out, p.Columns()...)
	}
	return append(out, TotalColumn)
}

// FreqMap counts normalized token occurrences.
type FreqMap map[string]int

// NameFreq holds the first/middle/last token counts of one name role.
type NameFreq struct {
	First  FreqMap
	Middle FreqMap
	Last   FreqMap
}

// FreqContext is whatever frequency data a single pair needs.
type FreqContext struct {
	Flat  FreqMap   // Text pairs
	Names *NameFreq // Name pairs
}
