package dataset

// DefaultHeaderMarker prefixes the column-name line in institution exports.
const DefaultHeaderMarker = "As Of Date"

// Table is a header row plus data rows; every row has exactly len(Headers) cells.
// All values stay text.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.Headers)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a table holding the first n rows in original order.
// The header and row slices are shared with t.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Headers: t.Headers, Rows: t.Rows[:n]}
}

// Column returns the cells of the named column, or false if no header matches.
func (t *Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}
