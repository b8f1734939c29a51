package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateColumn is returned when two columns share a name after trimming.
var ErrDuplicateColumn = errors.New("duplicate column name")

// Row maps a column name to its value. A missing entry reads as null.
type Row map[string]Value

// Get returns the value stored under column, or Null if absent.
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Null()
}

// Table is an ordered set of named columns and an ordered sequence of rows.
type Table struct {
	// Name identifies the source (file, sheet, object or SQL table).
	Name string `json:"name"`

	// Columns lists the column names in source order.
	Columns []string `json:"columns"`

	// Rows holds the data rows in source order.
	Rows []Row `json:"rows"`

	index map[string]int
}

// New creates an empty table with the given columns.
// Column names are trimmed; duplicates after trimming are rejected.
func New(name string, columns []string) (*Table, error) {
	t := &Table{
		Name:    name,
		Columns: make([]string, 0, len(columns)),
		Rows:    []Row{},
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		c = strings.TrimSpace(c)
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateColumn, c, name)
		}
		t.index[c] = len(t.Columns)
		t.Columns = append(t.Columns, c)
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(name string, columns []string, rows ...Row) *Table {
	t, err := New(name, columns)
	if err != nil {
		panic(err)
	}
	t.Rows = append(t.Rows, rows...)
	return t
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	if t.index == nil {
		t.reindex()
	}
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row, keeping only values for known columns.
func (t *Table) Append(row Row) {
	clean := make(Row, len(row))
	for k, v := range row {
		if t.HasColumn(k) {
			clean[k] = v
		}
	}
	t.Rows = append(t.Rows, clean)
}

// WithRows returns a shallow copy of the table that shares columns but holds rows.
func (t *Table) WithRows(rows []Row) *Table {
	if t.index == nil {
		t.reindex()
	}
	return &Table{
		Name:    t.Name,
		Columns: t.Columns,
		Rows:    rows,
		index:   t.index,
	}
}

// Records returns the rows as ordered value slices, aligned with Columns.
func (t *Table) Records() [][]Value {
	out := make([][]Value, len(t.Rows))
	for i, r := range t.Rows {
		rec := make([]Value, len(t.Columns))
		for j, c := range t.Columns {
			rec[j] = r.Get(c)
		}
		out[i] = rec
	}
	return out
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}
