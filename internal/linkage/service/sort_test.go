package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRowsNumericDescendingIsStable(t *testing.T) {
	rows := [][]string{{"a", "9,00"}, {"b", "10,50"}, {"c", "9,00"}, {"d", "-1,00"}}
	sortRows(rows, 1, false)
	assert.Equal(t, [][]string{{"b", "10,50"}, {"a", "9,00"}, {"c", "9,00"}, {"d", "-1,00"}}, rows)
}

func TestSortRowsTextAscending(t *testing.T) {
	rows := [][]string{{"b", "x"}, {"a", "10"}, {"c", "9"}}
	sortRows(rows, 0, true)
	assert.Equal(t, [][]string{{"a", "10"}, {"b", "x"}, {"c", "9"}}, rows)

	// one non-number makes the whole column text
	sortRows(rows, 1, true)
	assert.Equal(t, [][]string{{"a", "10"}, {"c", "9"}, {"b", "x"}}, rows)
}
