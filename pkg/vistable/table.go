// Package vistable provides the row-oriented data tables that feed the
// visualization engine: named columns, loosely typed cells, and loaders
// for CSV and JSON sources.
package vistable

import (
	"fmt"
	"strconv"
)

// Row holds one entity's properties keyed by column name. Cell values are
// float64, string or bool, matching what the JSON and CSV loaders produce.
type Row map[string]any

// Table is an ordered collection of rows sharing a column set. Columns are
// tracked in first-seen order so ingestion is deterministic.
type Table struct {
	columns []string
	colSet  map[string]bool
	rows    []Row
}

func New(columns ...string) *Table {
	t := &Table{colSet: make(map[string]bool)}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if t.colSet[name] {
		return
	}
	t.colSet[name] = true
	t.columns = append(t.columns, name)
}

// AddRow appends a row, registering any columns not seen before.
func (t *Table) AddRow(r Row) {
	for k := range r {
		t.addColumn(k)
	}
	t.rows = append(t.rows, r)
}

func (t *Table) Columns() []string { return t.columns }

func (t *Table) Has(column string) bool { return t.colSet[column] }

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Rows() []Row { return t.rows }

func (t *Table) Row(i int) Row { return t.rows[i] }

// Str returns the cell as a string. Numeric cells are formatted without a
// trailing fraction so an id of 3.0 reads back as "3".
func (r Row) Str(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return fmt.Sprintf("%v", s), true
	}
}

// Num returns the cell as a float64, parsing string cells when possible.
func (r Row) Num(column string) (float64, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (r Row) Bool(column string) (bool, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}
		return parsed, true
	case float64:
		return b != 0, true
	default:
		return false, false
	}
}

func (r Row) Has(column string) bool {
	v, ok := r[column]
	return ok && v != nil
}
