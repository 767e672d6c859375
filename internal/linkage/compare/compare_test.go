package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linkage-service/internal/linkage/model"
)

func TestCompareNameIdentical(t *testing.T) {
	r := Compare(model.Name, "ana silva", "ana silva", model.FreqContext{})
	assert.Equal(t, []float64{1, 1, 1, 0, 0, 0.8, 0}, r.Scores)
	assert.Greater(t, r.Total, 2.0)
}

func TestCompareNameIsAsymmetric(t *testing.T) {
	ab := CompareName("ana maria silva", "ana silva", nil, true)
	ba := CompareName("ana silva", "ana maria silva", nil, true)
	assert.InDelta(t, 2.0/3.0, ab.Scores[2], 1e-9)
	assert.Equal(t, 1.0, ba.Scores[2])
}

func TestCompareNameAbbreviation(t *testing.T) {
	r := CompareName("joao m silva", "joao maria silva", nil, true)
	assert.InDelta(t, 1.0/3.0*0.5, r.Scores[6], 1e-9)

	r = CompareName("joao m silva", "joao maria silva", nil, false)
	assert.Equal(t, 0.0, r.Scores[6])
}

func TestCompareNameFrequencies(t *testing.T) {
	freq := &model.NameFreq{
		First:  model.FreqMap{"ana": 2},
		Middle: model.FreqMap{},
		Last:   model.FreqMap{"silva": 5000},
	}
	r := CompareName("ana silva", "ana silva", freq, true)
	assert.InDelta(t, 0.5, r.Scores[3], 1e-9)
	assert.InDelta(t, -0.5, r.Scores[4], 1e-9)

	// a single fragment is both first and last
	r = CompareName("ana", "ana", &model.NameFreq{First: model.FreqMap{"ana": 2}}, true)
	assert.InDelta(t, 2.0, r.Scores[3], 1e-9)
}

func TestCompareNameEmpty(t *testing.T) {
	r := CompareName("", "ana", nil, true)
	assert.Len(t, r.Scores, 7)
	assert.Equal(t, 0.0, r.Total)
}

func TestCompareText(t *testing.T) {
	freq := model.FreqMap{"ana": 4, "maria": 3}
	r := Compare(model.Text, "ana maria", "ana maria", model.FreqContext{Flat: freq})
	assert.Equal(t, []string{"1,00", "1,00", "1,00", "1,00", "0,00", "0,80", "0,00"}, r.Formatted())
	assert.InDelta(t, 4.8, r.Total, 1e-9)

	// unknown fragments are rare
	r = CompareText("abc", "abc", nil)
	assert.Equal(t, 1.0, r.Scores[3])

	// YYYYMMDD values are not weighed by frequency
	r = CompareText("20200101", "20200101", nil)
	assert.Equal(t, 0.0, r.Scores[3])
	assert.Equal(t, 0.0, r.Scores[4])
	assert.Equal(t, 1.0, r.Scores[0])
}

func TestCompareDate(t *testing.T) {
	cases := []struct {
		a, b string
		want []float64
	}{
		{"20200101", "20200101", []float64{1, 0, 0, 0, 0}},
		{"20200101", "20200102", []float64{0, 1, 0, 0, 0}},
		{"20200112", "20200121", []float64{0, 0, 1, 0, 0}},
		{"20201201", "20202101", []float64{0, 0, 0, 1, 0}},
		{"20210101", "20120101", []float64{0, 0, 0, 0, 1}},
		{"20200101", "19991231", []float64{0, 0, 0, 0, 0}},
		{"", "20200101", []float64{0, 0, 0, 0, 0}},
		{"", "", []float64{1, 0, 0, 0, 0}},
		{"", "1", []float64{0, 1, 0, 0, 0}},
	}
	for _, c := range cases {
		r := CompareDate(c.a, c.b)
		assert.Equal(t, c.want, r.Scores, "%s vs %s", c.a, c.b)
	}
	assert.Equal(t, 1.0, CompareDate("20200101", "20200101").Total)
}

func TestCompareLocality(t *testing.T) {
	r := Compare(model.Locality, "SP1234", "SP1234", model.FreqContext{})
	assert.Equal(t, []float64{1, 0, 1, 0}, r.Scores)
	assert.Equal(t, 2.0, r.Total)

	r = CompareLocality("SP1234", "sp1235")
	assert.Equal(t, []float64{1, 0, 0, 0.8}, r.Scores)

	r = CompareLocality("SP1234", "SC1243")
	assert.Equal(t, []float64{0, 0.5, 0, 0.5}, r.Scores)

	r = CompareLocality("SP123", "SP1234")
	assert.Equal(t, 0.0, r.Total)
}

func TestCompareNumeric(t *testing.T) {
	r := CompareNumeric("10,50", "10.5")
	assert.Equal(t, []float64{1, 1, 1, 1}, r.Scores)

	r = CompareNumeric("1.234,56", "1234.56")
	assert.Equal(t, 1.0, r.Scores[0])

	r = CompareNumeric("100", "103")
	assert.Equal(t, 0.0, r.Scores[0])
	assert.InDelta(t, 0.4, r.Scores[1], 1e-9)
	assert.InDelta(t, 1-3.0/103.0, r.Scores[2], 1e-9)
	assert.Equal(t, 0.0, r.Scores[3])

	r = CompareNumeric("7", "8")
	assert.Equal(t, 1.0, r.Scores[3])

	r = CompareNumeric("-2", "2")
	assert.InDelta(t, 0.2, r.Scores[1], 1e-9)
	assert.Equal(t, 0.0, r.Scores[2])

	r = CompareNumeric("0.004", "0.001")
	assert.InDelta(t, 0.94, r.Scores[1], 1e-9)
	assert.Equal(t, 1.0, r.Scores[3])

	for _, bad := range [][2]string{{"abc", "1"}, {"0x10", "16"}, {"0b11", "3"}, {"0o17", "15"}, {"16", "0x1p4"}} {
		r = CompareNumeric(bad[0], bad[1])
		assert.Equal(t, []float64{0, 0, 0, 0}, r.Scores, "%s vs %s", bad[0], bad[1])
	}
}

func TestCompareUnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() { Compare(model.TypeCode('X'), "a", "b", model.FreqContext{}) })
}

func TestOptionsNoAbbrev(t *testing.T) {
	on := Compare(model.Name, "joao m silva", "joao maria silva", model.FreqContext{})
	off := Options{NoAbbrev: true}.Compare(model.Name, "joao m silva", "joao maria silva", model.FreqContext{})
	assert.Greater(t, on.Scores[6], 0.0)
	assert.Equal(t, 0.0, off.Scores[6])
	assert.Equal(t, on.Scores[:6], off.Scores[:6])
}
