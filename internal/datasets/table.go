// internal/datasets/table.go
// Package datasets holds the in-memory tabular model that raw benchmark data is
// loaded into, and the sources that load it.
package datasets

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrColumnNotFound is returned when a transform asks for a column the table does not have.
	ErrColumnNotFound = errors.New("column not found")
	// ErrColumnExists is returned when a rename or add would overwrite an existing column.
	ErrColumnExists = errors.New("column already exists")
	// ErrSplitNotFound is returned when a split is missing from a DatasetDict.
	ErrSplitNotFound = errors.New("split not found")
)

// Row is a single record keyed by column name.
type Row map[string]any

// Table is a column-oriented table with a stable column order.
type Table struct {
	columns []string
	data    map[string][]any
	n       int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{data: make(map[string][]any)}
}

// FromRows builds a table from rows. Columns appear in the order they are first
// seen; keys new to a row are added in sorted order. Missing cells are nil.
func FromRows(rows []Row) *Table {
	t := NewTable()
	t.n = len(rows)
	for i, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			if _, ok := t.data[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.columns = append(t.columns, k)
			t.data[k] = make([]any, len(rows))
		}
		for k, v := range row {
			t.data[k][i] = v
		}
	}
	return t
}

// AddColumn appends a column. The first column fixes the row count.
func (t *Table) AddColumn(name string, values []any) error {
	if _, ok := t.data[name]; ok {
		return fmt.Errorf("add column %q: %w", name, ErrColumnExists)
	}
	if len(t.columns) > 0 && len(values) != t.n {
		return fmt.Errorf("add column %q: got %d values, table has %d rows", name, len(values), t.n)
	}
	cp := make([]any, len(values))
	copy(cp, values)
	t.columns = append(t.columns, name)
	t.data[name] = cp
	t.n = len(values)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]any, error) {
	values, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrColumnNotFound, name, t.columns)
	}
	out := make([]any, len(values))
	copy(out, values)
	return out, nil
}

// StringColumn returns the named column, requiring every value to be a string.
func (t *Table) StringColumn(name string) ([]string, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("column %q row %d: expected string, got %T", name, i, v)
		}
		out[i] = s
	}
	return out, nil
}

// Row returns row i as a fresh map.
func (t *Table) Row(i int) Row {
	row := make(Row, len(t.columns))
	for _, c := range t.columns {
		row[c] = t.data[c][i]
	}
	return row
}

// Rows returns every row as a fresh map.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.n)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Select returns a new table with the given rows, in the given order.
func (t *Table) Select(indices []int) (*Table, error) {
	out := &Table{
		columns: t.Columns(),
		data:    make(map[string][]any, len(t.columns)),
		n:       len(indices),
	}
	for _, c := range t.columns {
		src := t.data[c]
		dst := make([]any, len(indices))
		for j, idx := range indices {
			if idx < 0 || idx >= t.n {
				return nil, fmt.Errorf("select: index %d out of range [0,%d)", idx, t.n)
			}
			dst[j] = src[idx]
		}
		out.data[c] = dst
	}
	return out, nil
}

// RenameColumn returns a copy of t with column from renamed to to. It fails if
// from is missing or to already exists, so applying the same rename twice is an error.
func (t *Table) RenameColumn(from, to string) (*Table, error) {
	if _, ok := t.data[from]; !ok {
		return nil, fmt.Errorf("rename %q -> %q: %w: %q", from, to, ErrColumnNotFound, from)
	}
	if _, ok := t.data[to]; ok {
		return nil, fmt.Errorf("rename %q -> %q: %w: %q", from, to, ErrColumnExists, to)
	}
	out := t.Clone()
	for i, c := range out.columns {
		if c == from {
			out.columns[i] = to
		}
	}
	out.data[to] = out.data[from]
	delete(out.data, from)
	return out, nil
}

// Clone returns a copy of t that shares no slices with it.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: t.Columns(),
		data:    make(map[string][]any, len(t.data)),
		n:       t.n,
	}
	for c, values := range t.data {
		cp := make([]any, len(values))
		copy(cp, values)
		out.data[c] = cp
	}
	return out
}

// DatasetDict maps split names to tables.
type DatasetDict map[string]*Table

// Split returns the named split.
func (d DatasetDict) Split(name string) (*Table, error) {
	t, ok := d[name]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrSplitNotFound, name, d.SplitNames())
	}
	return t, nil
}

// SplitNames returns the split names in sorted order.
func (d DatasetDict) SplitNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenameColumn applies Table.RenameColumn to every split and returns a new dict.
func (d DatasetDict) RenameColumn(from, to string) (DatasetDict, error) {
	out := make(DatasetDict, len(d))
	for _, name := range d.SplitNames() {
		tbl, err := d.Split(name)
		if err != nil {
			return nil, err
		}
		renamed, err := tbl.RenameColumn(from, to)
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", name, err)
		}
		out[name] = renamed
	}
	return out, nil
}
