package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sniffBytes = 4096

// decode returns a UTF-8 reader over r. Valid UTF-8 passes through (BOM
// dropped); anything else is sniffed with chardet. Registry exports that are
// not UTF-8 are nearly always ISO-8859-1 or Windows-1252, so unknown single
// byte charsets decode as Windows-1252.
func decode(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(sniffBytes)
	if bytes.HasPrefix(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br
	}
	if validUTF8Prefix(peek) {
		return br
	}

	cs := ""
	if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
		cs = strings.ToLower(det.Charset)
	}
	switch cs {
	case "iso-8859-1", "latin1":
		return transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	case "iso-8859-15":
		return transform.NewReader(br, charmap.ISO8859_15.NewDecoder())
	default:
		return transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// validUTF8Prefix allows the sniffed window to end mid-rune.
func validUTF8Prefix(b []byte) bool {
	for cut := 0; cut < utf8.UTFMax && cut <= len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}

func newCSVReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(decode(r))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// readCSV reads every record, header included.
func readCSV(r io.Reader, delim rune) ([][]string, error) {
	cr := newCSVReader(r, delim)
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// CSVSource streams a delimited file without loading it whole.
type CSVSource struct {
	Path      string
	Delimiter rune
}

// EachChunk calls fn with up to size rows at a time, each holding only the
// requested columns. The first line is the header and is skipped.
func (s CSVSource) EachChunk(size int, cols []int, fn func(rows [][]string) error) error {
	if size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", size)
	}
	delim := s.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := newCSVReader(f, delim)
	cr.ReuseRecord = true
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	chunk := make([][]string, 0, size)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		sel := make([]string, len(cols))
		for i, c := range cols {
			if c >= 0 && c < len(rec) {
				sel[i] = rec[c]
			}
		}
		chunk = append(chunk, sel)
		if len(chunk) == size {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([][]string, 0, size)
		}
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}
