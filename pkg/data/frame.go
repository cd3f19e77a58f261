package data

import (
	"fmt"
	"sort"
)

// Frame is an in-memory tabular dataset: ordered column headers plus rows of
// raw string cells as read from CSV. Transformations build new Frames; a
// Frame is never mutated once a downstream step has consumed it.
type Frame struct {
	Headers []string
	Rows    [][]string
}

// NewFrame validates that every row has one cell per header.
func NewFrame(headers []string, rows [][]string) (*Frame, error) {
	for i, r := range rows {
		if len(r) != len(headers) {
			return nil, fmt.Errorf("frame: row %d has %d cells, want %d", i, len(r), len(headers))
		}
	}
	return &Frame{Headers: headers, Rows: rows}, nil
}

func (f *Frame) NumRows() int { return len(f.Rows) }

func (f *Frame) NumCols() int { return len(f.Headers) }

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, h := range f.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of the named column in row order.
func (f *Frame) Column(name string) ([]string, error) {
	j := f.ColumnIndex(name)
	if j < 0 {
		return nil, fmt.Errorf("frame: no column %q", name)
	}
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r[j]
	}
	return out, nil
}

// SelectColumns builds a new Frame containing the listed columns in the
// listed order. Names absent from the frame are skipped, so a keep list
// derived from a labeled frame also applies to an unlabeled one.
func (f *Frame) SelectColumns(names []string) *Frame {
	var idx []int
	var headers []string
	for _, n := range names {
		if j := f.ColumnIndex(n); j >= 0 {
			idx = append(idx, j)
			headers = append(headers, n)
		}
	}
	rows := make([][]string, len(f.Rows))
	for i, r := range f.Rows {
		row := make([]string, len(idx))
		for k, j := range idx {
			row[k] = r[j]
		}
		rows[i] = row
	}
	return &Frame{Headers: headers, Rows: rows}
}

// FilterRows builds a new Frame with the rows for which keep returns true.
func (f *Frame) FilterRows(keep func(row []string) bool) *Frame {
	var rows [][]string
	for _, r := range f.Rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Frame{Headers: f.Headers, Rows: rows}
}

// SelectRows builds a new Frame from the given row indices.
func (f *Frame) SelectRows(idx []int) (*Frame, error) {
	rows := make([][]string, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(f.Rows) {
			return nil, fmt.Errorf("frame: row index %d out of range [0,%d)", i, len(f.Rows))
		}
		rows[k] = f.Rows[i]
	}
	return &Frame{Headers: f.Headers, Rows: rows}, nil
}

// HeadersWithout returns the column names minus the named one, preserving
// order. Used to compare labeled and unlabeled schemas.
func (f *Frame) HeadersWithout(name string) []string {
	out := make([]string, 0, len(f.Headers))
	for _, h := range f.Headers {
		if h != name {
			out = append(out, h)
		}
	}
	return out
}

// SameSchema reports whether two frames have identical column names in
// identical order.
func (f *Frame) SameSchema(o *Frame) bool {
	if len(f.Headers) != len(o.Headers) {
		return false
	}
	for i := range f.Headers {
		if f.Headers[i] != o.Headers[i] {
			return false
		}
	}
	return true
}

// EncodeLabels maps label strings to dense integer codes. Classes are
// sorted so the encoding is stable across runs and datasets.
func EncodeLabels(values []string) (codes []int, classes []string) {
	seen := map[string]bool{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	pos := make(map[string]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	codes = make([]int, len(values))
	for i, v := range values {
		codes[i] = pos[v]
	}
	return codes, classes
}

// DecodeLabels maps dense codes back to label strings.
func DecodeLabels(codes []int, classes []string) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(classes) {
			return nil, fmt.Errorf("frame: label code %d out of range [0,%d)", c, len(classes))
		}
		out[i] = classes[c]
	}
	return out, nil
}
