package fileio

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	excelize "github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"linkage-service/internal/linkage/model"
)

// SQLiteTable is the table name used for .sqlite/.db output.
const SQLiteTable = "linkage"

// WriteFile writes tbl to path, choosing the format by extension. A path
// without extension gets ".csv". The final path is returned.
func WriteFile(path string, tbl *model.Table, delim rune) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		path += ".csv"
		ext = ".csv"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	switch ext {
	case ".sqlite", ".db":
		return path, writeSQLite(path, tbl)
	case ".csv", ".txt", ".xlsx":
	default:
		return "", fmt.Errorf("unsupported output: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if ext == ".xlsx" {
		err = WriteXLSX(f, tbl)
	} else {
		err = WriteCSV(f, tbl, delim)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// WriteCSV writes the header and rows with the given delimiter.
func WriteCSV(w io.Writer, tbl *model.Table, delim rune) error {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(tbl.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(tbl.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteXLSX writes the table to the first sheet of a new workbook.
func WriteXLSX(w io.Writer, tbl *model.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(tbl.Header)); err != nil {
		return err
	}
	for i, row := range tbl.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func toCells(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// writeSQLite replaces path with a database holding one TEXT table.
// Repeated header names get a numeric suffix.
func writeSQLite(path string, tbl *model.Table) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	cols := uniqueColumns(tbl.Header)
	defs := make([]string, len(cols))
	qCols := make([]string, len(cols))
	for i, c := range cols {
		qCols[i] = fmt.Sprintf("%q", c)
		defs[i] = qCols[i] + " TEXT"
	}
	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (%s)`, SQLiteTable, strings.Join(defs, ","))); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, SQLiteTable, strings.Join(qCols, ","), ph))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range tbl.Rows {
		args := make([]any, len(cols))
		for i := range cols {
			if i < len(r) {
				args[i] = r[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func uniqueColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		out[i] = h
	}
	return out
}
