package freq

import (
	"fmt"

	"linkage-service/internal/linkage/model"
)

// TableSource serves an in-memory table as a Source.
type TableSource struct {
	Table *model.Table
}

func (s TableSource) EachChunk(size int, cols []int, fn func(rows [][]string) error) error {
	if size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", size)
	}
	rows := s.Table.Rows
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunk := make([][]string, 0, end-start)
		for _, row := range rows[start:end] {
			sel := make([]string, len(cols))
			for i, c := range cols {
				if c >= 0 && c < len(row) {
					sel[i] = row[c]
				}
			}
			chunk = append(chunk, sel)
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}
