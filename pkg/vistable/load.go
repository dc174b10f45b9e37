package vistable

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// FromCSV reads a table whose first record is the header row. Cells that
// parse as numbers become float64, everything else stays a string. Empty
// cells are omitted from the row entirely so ingestion treats them as
// absent rather than zero.
func FromCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	t := New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		row := Row{}
		for i, cell := range rec {
			if i >= len(header) || cell == "" {
				continue
			}
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				row[header[i]] = f
			} else {
				row[header[i]] = cell
			}
		}
		t.AddRow(row)
	}
	return t, nil
}

// FromJSON reads a table serialized as an array of flat objects.
func FromJSON(r io.Reader) (*Table, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding json table: %w", err)
	}
	t := New()
	for _, obj := range raw {
		t.AddRow(Row(obj))
	}
	return t, nil
}
