package service

import (
	"sort"

	"linkage-service/internal/utils"
)

// sortRows orders rows by column col, keeping ties in input order. The
// column sorts numerically when every value parses as a number (comma or
// dot decimals), as text otherwise.
func sortRows(rows [][]string, col int, ascending bool) {
	nums := make([]float64, len(rows))
	numeric := true
	for i, r := range rows {
		v, ok := utils.ParseFloat(r[col])
		if !ok {
			numeric = false
			break
		}
		nums[i] = v
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	less := func(a, b int) bool {
		if numeric {
			return nums[a] < nums[b]
		}
		return rows[a][col] < rows[b][col]
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if ascending {
			return less(idx[i], idx[j])
		}
		return less(idx[j], idx[i])
	})

	sorted := make([][]string, len(rows))
	for i, k := range idx {
		sorted[i] = rows[k]
	}
	copy(rows, sorted)
}
