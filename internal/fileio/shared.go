// Package fileio reads and writes the tables scored by the linkage service.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"linkage-service/internal/linkage/model"
)

// DefaultDelimiter separates CSV fields when none is configured.
const DefaultDelimiter = '|'

// ReadOptions control how a table is parsed. HeaderRow is 1-based.
type ReadOptions struct {
	Delimiter rune
	HeaderRow int
}

func (o ReadOptions) withDefaults() ReadOptions {
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.HeaderRow <= 0 {
		o.HeaderRow = 1
	}
	return o
}

// ReadTable picks a parser by extension and returns the rows below the
// header, each padded to the header width.
func ReadTable(r io.Reader, filename string, opts ReadOptions) (*model.Table, error) {
	opts = opts.withDefaults()
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r, opts.HeaderRow)
	case ".csv", ".txt", "":
		rows, err = readCSV(r, opts.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}
	if len(rows) == 0 {
		return &model.Table{}, nil
	}
	h := pickHeader(rows, opts.HeaderRow)
	return &model.Table{Header: h, Rows: bodyRows(rows, len(h), opts.HeaderRow)}, nil
}

// ReadFile opens path and calls ReadTable.
func ReadFile(path string, opts ReadOptions) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f, path, opts)
}

// pickHeader takes the header row and names blank cells "Column N".
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// bodyRows returns the rows after the header, padded or cut to width.
// Rows with no cells at all (empty lines, missing sheet rows) are skipped;
// a row of empty cells such as "||" is kept so it still gets scored.
func bodyRows(rows [][]string, width, headerRow int) [][]string {
	var out [][]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		if len(rec) == 0 {
			continue
		}
		out = append(out, fitRow(rec, width))
	}
	return out
}

func fitRow(rec []string, width int) []string {
	row := make([]string, width)
	copy(row, rec)
	return row
}

var cellSpace = strings.NewReplacer("\u00A0", " ", "\r", "")

// normalizeCell trims a spreadsheet cell and drops non-breaking spaces.
func normalizeCell(s string) string {
	return strings.TrimSpace(cellSpace.Replace(s))
}
