// Package features turns the accumulated game table into model-ready
// training rows through four ordered stages: expand composite stat strings,
// split each game into two perspective rows, stagger forward-looking labels
// onto the prior game, and preprocess into numeric features.
package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is an ordered-column table of string cells. A key absent from a row
// is a null: it round-trips through CSV as an empty cell.
type Table struct {
	Cols []string
	Rows []map[string]string
}

// NewTable creates an empty table with the given column order.
func NewTable(cols []string) *Table {
	return &Table{Cols: append([]string(nil), cols...)}
}

// HasCol reports whether the table carries a column.
func (t *Table) HasCol(name string) bool {
	for _, c := range t.Cols {
		if c == name {
			return true
		}
	}
	return false
}

// WriteCSV writes the table with a header row. Null cells write as empty.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Cols); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(t.Cols))
	for _, row := range t.Rows {
		for i, col := range t.Cols {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV. Empty cells become absent keys.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := NewTable(header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// WriteFile writes the table to a CSV file, replacing any existing one.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadFile reads a table from a CSV file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}
