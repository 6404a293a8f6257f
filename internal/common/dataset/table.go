package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrQueryTimeout    = errors.New("dataset query timed out")
)

// Table is a loaded dataset. Every row has len(Columns) cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

func (t *Table) mustIndex(name string) (int, error) {
	idx := t.Index(name)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s in %s", ErrColumnNotFound, name, t.Name)
	}
	return idx, nil
}

// Column returns every cell of a column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.mustIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats returns the numeric cells of a column. Blank or non-numeric cells
// are skipped, as a missing value would be.
func (t *Table) Floats(name string) ([]float64, error) {
	idx, err := t.mustIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := ParseFloat(row[idx]); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// ParseFloat parses a numeric cell, rejecting blanks, NaN and infinities.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(v) {
		return 0, false
	}
	return v, true
}
