package ingest

import "strings"

// Table is an immutable in-memory view of an uploaded tabular file. All rows
// share the header; rows shorter than the header read as empty cells. It is
// parsed once per request and discarded when the pipeline run completes.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column in the header, or -1.
// Matching is case-insensitive after trimming.
func (t *Table) ColumnIndex(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, col := range t.Header {
		if strings.ToLower(strings.TrimSpace(col)) == want {
			return i
		}
	}
	return -1
}

// Value returns the cell at the given row for the given column index.
// Out-of-range reads return the empty string.
func (t *Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}
