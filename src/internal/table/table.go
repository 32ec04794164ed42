package table

import (
	"fmt"
	"slices"
	"strings"
)

// Table is a row-oriented, all-string dataset with a header. The empty string
// is the missing-value marker.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// AddRow appends one row; its width must match the header.
func (t *Table) AddRow(vals ...string) error {
	if len(vals) != len(t.Columns) {
		return fmt.Errorf("row has %d values, header has %d columns", len(vals), len(t.Columns))
	}
	t.Rows = append(t.Rows, slices.Clone(vals))
	return nil
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int { return slices.Index(t.Columns, col) }

// Has reports whether col is in the header.
func (t *Table) Has(col string) bool { return t.Index(col) >= 0 }

// Get returns the cell at row i, column col ("" if the column is absent).
func (t *Table) Get(i int, col string) string {
	j := t.Index(col)
	if j < 0 || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

// Set writes the cell at row i, adding col if needed.
func (t *Table) Set(i int, col, v string) {
	j := t.EnsureColumn(col)
	t.Rows[i][j] = v
}

// EnsureColumn appends col (filled with "") if it is not already present and
// returns its index.
func (t *Table) EnsureColumn(col string) int {
	if j := t.Index(col); j >= 0 {
		return j
	}
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Columns) - 1
}

// MapCells replaces every cell with fn(cell).
func (t *Table) MapCells(fn func(string) string) {
	for _, row := range t.Rows {
		for j := range row {
			row[j] = fn(row[j])
		}
	}
}

// MapHeader replaces every column name with fn(name).
func (t *Table) MapHeader(fn func(string) string) {
	for j := range t.Columns {
		t.Columns[j] = fn(t.Columns[j])
	}
}

// Missing returns the columns from want that the table lacks, in order.
func (t *Table) Missing(want ...string) []string {
	var out []string
	for _, c := range want {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Require fails with ErrSchema naming every column from want the table lacks.
func (t *Table) Require(want ...string) error {
	if miss := t.Missing(want...); len(miss) > 0 {
		return schemaErr("missing columns: %s", strings.Join(miss, ", "))
	}
	return nil
}

// Select projects the table to cols, in that order.
func (t *Table) Select(cols ...string) (*Table, error) {
	if err := t.Require(cols...); err != nil {
		return nil, err
	}
	idx := make([]int, len(cols))
	for k, c := range cols {
		idx[k] = t.Index(c)
	}
	out := &Table{Columns: slices.Clone(cols), Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		nr := make([]string, len(cols))
		for k, j := range idx {
			if j < len(row) {
				nr[k] = row[j]
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}

// Rename renames columns in place. Columns not in mapping are untouched. When
// several present columns end up with the same target name, the rightmost wins
// and the others are dropped.
func (t *Table) Rename(mapping map[string]string) {
	renamed := map[string]bool{}
	for j, c := range t.Columns {
		if to, ok := mapping[c]; ok {
			t.Columns[j] = to
			renamed[to] = true
		}
	}
	keep := make([]int, 0, len(t.Columns))
	for j, c := range t.Columns {
		if renamed[c] && slices.Index(t.Columns[j+1:], c) >= 0 {
			continue
		}
		keep = append(keep, j)
	}
	if len(keep) == len(t.Columns) {
		return
	}
	cols := make([]string, len(keep))
	for k, j := range keep {
		cols[k] = t.Columns[j]
	}
	for i, row := range t.Rows {
		nr := make([]string, len(keep))
		for k, j := range keep {
			if j < len(row) {
				nr[k] = row[j]
			}
		}
		t.Rows[i] = nr
	}
	t.Columns = cols
}

// Append returns base's rows followed by extra's rows, aligned by column name.
// The header is base's columns plus any columns only extra has. Cells a row did
// not have are left empty. Duplicates are kept. Neither input is modified.
func Append(base, extra *Table) *Table {
	out := &Table{Columns: slices.Clone(base.Columns)}
	for _, c := range extra.Columns {
		if !slices.Contains(out.Columns, c) {
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([][]string, 0, len(base.Rows)+len(extra.Rows))
	for _, src := range []*Table{base, extra} {
		idx := make([]int, len(src.Columns))
		for j, c := range src.Columns {
			idx[j] = slices.Index(out.Columns, c)
		}
		for _, row := range src.Rows {
			nr := make([]string, len(out.Columns))
			for j, v := range row {
				if j < len(idx) {
					nr[idx[j]] = v
				}
			}
			out.Rows = append(out.Rows, nr)
		}
	}
	return out
}

// AppendStrict is Append with an explicit schema precondition: base and extra
// must both carry every required column, and extra is projected to required
// before it is appended.
func AppendStrict(base, extra *Table, required []string) (*Table, error) {
	if miss := base.Missing(required...); len(miss) > 0 {
		return nil, schemaErr("base table missing columns: %s", strings.Join(miss, ", "))
	}
	proj, err := extra.Select(required...)
	if err != nil {
		return nil, err
	}
	return Append(base, proj), nil
}
