package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"avenida", "brasil", "10", "a"}, Tokenize("Av. Brasil, 10A"))
	assert.Equal(t, []string{"rua", "flores", "semnumero", "numero"}, Tokenize("R. das Flores s/n"))
	assert.Nil(t, Tokenize(""))
}

func TestNormalizeAddress(t *testing.T) {
	p := NormalizeAddress("Rua dos Andradas, nº 123 - Bl A")
	assert.Equal(t, "rua andradas", p.Street)
	assert.Equal(t, "123", p.Number)
	assert.Equal(t, []string{"bloco", "a"}, p.ComplementTokens)
	assert.Equal(t, []string{"rua", "andradas", "123", "bloco", "a"}, p.AllTokens)

	p = NormalizeAddress("Rua X 0012 apto 004")
	assert.Equal(t, "rua x", p.Street)
	assert.Equal(t, "12", p.Number)
	assert.Equal(t, []string{"apto", "4"}, p.ComplementTokens)

	p = NormalizeAddress("Rua das Flores SN")
	assert.Equal(t, NoNumber, p.Number)
	assert.Equal(t, "rua flores", p.Street)

	assert.Equal(t, AddressParts{}, NormalizeAddress("  "))
}

func TestCompareAddress(t *testing.T) {
	r := CompareAddress("Rua das Flores SN", "R. das Flores s/n")
	assert.Equal(t, 1.0, r.Scores[0])
	assert.InDelta(t, 0.8, r.Scores[1], 1e-9)
	assert.Equal(t, 1.0, r.Scores[2])

	r = CompareAddress("Av. Paulista 1000", "Avenida Paulista, 1000")
	assert.Equal(t, []string{"1,00", "0,80", "1,00", "0,00", "0,80", "0,50"}, r.Formatted())
	assert.InDelta(t, 4.1, r.Total, 1e-9)

	r = CompareAddress("", "Rua A")
	assert.Equal(t, 0.0, r.Total)
}
