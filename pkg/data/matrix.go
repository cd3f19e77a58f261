package data

import (
	"fmt"
	"strconv"
)

// Matrix parses every column except the named exclusions into a row-major
// float64 matrix. Exclusions that are not present are ignored, so the label
// column can be excluded unconditionally. Any cell that does not parse is an
// error: after cleaning, every surviving column must be numeric.
func (f *Frame) Matrix(exclude ...string) ([][]float64, error) {
	skip := make(map[string]bool, len(exclude))
	for _, n := range exclude {
		skip[n] = true
	}
	var cols []int
	for j, h := range f.Headers {
		if !skip[h] {
			cols = append(cols, j)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame: no feature columns left after excluding %v", exclude)
	}

	X := make([][]float64, len(f.Rows))
	for i, r := range f.Rows {
		row := make([]float64, len(cols))
		for k, j := range cols {
			v, err := strconv.ParseFloat(r[j], 64)
			if err != nil {
				return nil, fmt.Errorf("frame: column %q row %d: %q is not numeric", f.Headers[j], i, r[j])
			}
			row[k] = v
		}
		X[i] = row
	}
	return X, nil
}
