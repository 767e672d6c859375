package model

// Table is a header plus string rows; missing cells are "".
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) Columns() []string { return t.Header }

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Row(i int) []string { return t.Rows[i] }

// Index returns the position of a column name, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}
