package dataprep

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/lindakukolich/WeightsProject/pkg/data"
)

// FieldList is a versioned declaration of the semantic fields a dataset
// revision excludes from modeling. Exclusion is decided against this list,
// not re-derived from live column names, so a renamed column fails loudly
// at matrix extraction instead of silently surviving cleaning.
type FieldList struct {
	Version  int
	Names    []string
	Prefixes []string
}

// Matches reports whether the column is excluded by this list.
func (l FieldList) Matches(column string) bool {
	for _, n := range l.Names {
		if column == n {
			return true
		}
	}
	for _, p := range l.Prefixes {
		if strings.HasPrefix(column, p) {
			return true
		}
	}
	return false
}

// ExcludedFields v1 covers the weight-lifting-exercise schema: the row
// identifier, the subject name, the three timestamp fields, the
// aggregation-window bookkeeping fields, and the eight per-window statistic
// families computed over sliding windows of raw readings.
var ExcludedFields = FieldList{
	Version: 1,
	Names: []string{
		"X",
		"user_name",
		"raw_timestamp_part_1",
		"raw_timestamp_part_2",
		"cvtd_timestamp",
		"new_window",
		"num_window",
	},
	Prefixes: []string{
		"kurtosis_",
		"skewness_",
		"max_",
		"min_",
		"amplitude_",
		"avg_",
		"var_",
		"stddev_",
	},
}

// missing mirrors the sentinels the source files use for absent cells.
func missing(cell string) bool {
	return cell == "" || cell == "NA" || cell == "#DIV/0!"
}

// Cleaner removes aggregation-window summary rows and non-sensor columns.
// Fit derives the kept columns from the labeled frame; Apply enforces that
// same keep list on any frame, so the labeled and application datasets end
// up with a single schema by construction.
type Cleaner struct {
	MarkerField string  // column flagging summary rows
	MarkerValue string  // value of MarkerField on a summary row
	LabelField  string  // kept when present, never required
	MaxMissing  float64 // drop columns with a higher missing-cell ratio
	Excluded    FieldList

	keep []string
}

type CleanerOption func(*Cleaner)

func WithLabelField(name string) CleanerOption {
	return func(c *Cleaner) { c.LabelField = name }
}

func WithMarker(field, value string) CleanerOption {
	return func(c *Cleaner) { c.MarkerField, c.MarkerValue = field, value }
}

func WithMaxMissing(ratio float64) CleanerOption {
	return func(c *Cleaner) { c.MaxMissing = ratio }
}

func WithExcludedFields(l FieldList) CleanerOption {
	return func(c *Cleaner) { c.Excluded = l }
}

// NewCleaner returns a Cleaner with the canonical dataset's defaults.
func NewCleaner(opts ...CleanerOption) *Cleaner {
	c := &Cleaner{
		MarkerField: "new_window",
		MarkerValue: "yes",
		LabelField:  "classe",
		MaxMissing:  0.95,
		Excluded:    ExcludedFields,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fit derives the keep list from a labeled frame: excluded fields go, then
// columns whose missing ratio exceeds MaxMissing, then constant columns.
// Ratios are computed over the raw (non-summary) rows only, since the
// per-window statistics are populated on summary rows alone.
func (c *Cleaner) Fit(f *data.Frame) error {
	raw := c.dropSummaryRows(f)
	if raw.NumRows() == 0 {
		return fmt.Errorf("cleaner: no raw observation rows to fit on")
	}
	if f.ColumnIndex(c.LabelField) < 0 {
		return fmt.Errorf("cleaner: label column %q not found", c.LabelField)
	}

	var keep []string
	for j, h := range raw.Headers {
		if h == c.LabelField {
			keep = append(keep, h)
			continue
		}
		if c.Excluded.Matches(h) {
			continue
		}
		s := columnSummary(raw, j)
		if s.missingRatio > c.MaxMissing {
			continue
		}
		if s.numeric && s.variance == 0 {
			// Constant sensor channel: no signal for any split.
			continue
		}
		keep = append(keep, h)
	}
	if len(keep) < 2 {
		return fmt.Errorf("cleaner: no sensor columns survive cleaning")
	}
	c.keep = keep
	return nil
}

// Apply drops summary rows and selects the fitted columns. Applying twice
// is the same as applying once: the marker column is itself excluded, so a
// cleaned frame has no summary rows left to drop and already carries exactly
// the kept columns. The label column is selected only where present.
func (c *Cleaner) Apply(f *data.Frame) (*data.Frame, error) {
	if c.keep == nil {
		return nil, fmt.Errorf("cleaner: not fitted")
	}
	return c.dropSummaryRows(f).SelectColumns(c.keep), nil
}

// FitApply fits on the frame and returns it cleaned.
func (c *Cleaner) FitApply(f *data.Frame) (*data.Frame, error) {
	if err := c.Fit(f); err != nil {
		return nil, err
	}
	return c.Apply(f)
}

// Columns returns the fitted keep list.
func (c *Cleaner) Columns() []string {
	return c.keep
}

func (c *Cleaner) dropSummaryRows(f *data.Frame) *data.Frame {
	j := f.ColumnIndex(c.MarkerField)
	if j < 0 {
		return f
	}
	return f.FilterRows(func(row []string) bool {
		return row[j] != c.MarkerValue
	})
}

type summary struct {
	missingRatio float64
	numeric      bool
	variance     float64
}

// columnSummary profiles one column: missing ratio over all rows, and mean
// and variance over the cells that parse as numbers.
func columnSummary(f *data.Frame, j int) summary {
	nMissing := 0
	var vals []float64
	numeric := true
	for _, r := range f.Rows {
		cell := r[j]
		if missing(cell) {
			nMissing++
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			numeric = false
			continue
		}
		vals = append(vals, v)
	}

	s := summary{
		missingRatio: float64(nMissing) / float64(f.NumRows()),
		numeric:      numeric && len(vals) > 0,
	}
	if s.numeric {
		s.variance = stat.Variance(vals, nil)
	}
	return s
}
