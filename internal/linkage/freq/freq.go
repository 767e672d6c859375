// Package freq counts name and text fragments so comparators can tell rare
// fragments from common ones.
package freq

import (
	"strings"

	"linkage-service/internal/linkage/model"
	"linkage-service/internal/linkage/textnorm"
)

// SplitName splits a normalized name into first, middle and last fragments.
// A one-fragment name is both first and last.
func SplitName(name string) (first string, middle []string, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", nil, ""
	case 1:
		return parts[0], nil, parts[0]
	}
	return parts[0], parts[1 : len(parts)-1], parts[len(parts)-1]
}

// NewNameFreq returns an empty first/middle/last triple.
func NewNameFreq() *model.NameFreq {
	return &model.NameFreq{First: model.FreqMap{}, Middle: model.FreqMap{}, Last: model.FreqMap{}}
}

// AddName counts one already normalized name into nf.
func AddName(nf *model.NameFreq, name string) {
	first, middle, last := SplitName(name)
	if first == "" {
		return
	}
	nf.First[first]++
	for _, m := range middle {
		nf.Middle[m]++
	}
	nf.Last[last]++
}

// AddText counts every fragment of an already normalized value.
func AddText(m model.FreqMap, value string) {
	for _, p := range strings.Fields(value) {
		m[p]++
	}
}

// Set is the frequency context of each configured pair, by pair index.
type Set []model.FreqContext

// For returns the context of pair i, or an empty one.
func (s Set) For(i int) model.FreqContext {
	if i < 0 || i >= len(s) {
		return model.FreqContext{}
	}
	return s[i]
}

// FromTable builds ad hoc maps straight from the two columns of each pair:
// one flat map per Text pair, one triple per Name pair. Other types get an
// empty context.
func FromTable(tbl *model.Table, pairs []model.FieldPair) Set {
	set := make(Set, len(pairs))
	for i, p := range pairs {
		switch p.Type {
		case model.Text:
			flat := model.FreqMap{}
			eachValue(tbl, p, func(v string) { AddText(flat, v) })
			set[i] = model.FreqContext{Flat: flat}
		case model.Name:
			nf := NewNameFreq()
			eachValue(tbl, p, func(v string) { AddName(nf, v) })
			set[i] = model.FreqContext{Names: nf}
		}
	}
	return set
}

// eachValue yields every normalized left value, then every right value.
func eachValue(tbl *model.Table, p model.FieldPair, fn func(string)) {
	for _, col := range []int{p.Left, p.Right} {
		for _, row := range tbl.Rows {
			if col < len(row) {
				fn(textnorm.Normalize(row[col]))
			}
		}
	}
}

// FromRoles gives every Name pair with a role the matching cached triple.
// Name pairs without a role get no frequencies; other types need none.
func FromRoles(pairs []model.FieldPair, maps RoleMaps) Set {
	set := make(Set, len(pairs))
	for i, p := range pairs {
		if p.Type == model.Name && p.Role != model.RoleNone {
			set[i] = model.FreqContext{Names: maps.Triple(p.Role)}
		}
	}
	return set
}
