package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeCode(t *testing.T) {
	for in, want := range map[string]TypeCode{"D": Date, "n": Name, " c ": Locality, "L": Address, "m": Numeric, "T": Text} {
		got, err := ParseTypeCode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "X", "NN"} {
		_, err := ParseTypeCode(in)
		assert.ErrorIs(t, err, ErrUnknownType, in)
	}
}

func TestWidths(t *testing.T) {
	assert.Equal(t, 5, Date.Width())
	assert.Equal(t, 7, Name.Width())
	assert.Equal(t, 4, Locality.Width())
	assert.Equal(t, 6, Address.Width())
	assert.Equal(t, 4, Numeric.Width())
	assert.Equal(t, 7, Text.Width())
	assert.Equal(t, 0, TypeCode('X').Width())
}

func TestOutputColumns(t *testing.T) {
	pairs := []FieldPair{
		{Left: 0, Right: 1, Type: Locality, Label: "mun"},
		{Left: 2, Right: 3, Type: Numeric},
	}
	cols := OutputColumns([]string{"a", "b", "c", "d"}, pairs)
	assert.Equal(t, []string{
		"a", "b", "c", "d",
		"mun uf igual", "mun uf prox", "mun local igual", "mun local prox",
		"num igual", "num prox abs", "num prox rel", "num prox arred",
		TotalColumn,
	}, cols)
}

func TestTableIndex(t *testing.T) {
	tbl := &Table{Header: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}
	assert.Equal(t, 1, tbl.Index("b"))
	assert.Equal(t, -1, tbl.Index("z"))
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"1", "2"}, tbl.Row(0))
}
