package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldLower(t *testing.T) {
	assert.Equal(t, "aei ou", FoldLower(" ÁÉÍ ÓÚ "))
	assert.Equal(t, "conceicao", FoldLower("CONCEIÇÃO"))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  João da Silva Jr.  ", "joao silva"},
		{"Maria dos Santos Neto", "maria santos"},
		{"Pedro Filho", "pedro"},
		{"Neto", "neto"},
		{"José de Souza Filho Neto", "jose souza filho"},
		{"1990-01-01", "19900101"},
		{"Ana  Maria", "ana maria"},
		{"   ", ""},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}
