package dataprep

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindakukolich/WeightsProject/pkg/data"
)

var rawHeaders = []string{
	"X", "user_name", "raw_timestamp_part_1", "cvtd_timestamp",
	"new_window", "num_window",
	"roll_belt", "pitch_belt", "kurtosis_roll_belt", "gaps", "gyros_flat",
	"classe",
}

// rawFrame builds a frame shaped like the source data: ten raw reading rows
// plus two window summary rows. "gaps" is missing on every raw row and
// "gyros_flat" is constant, so both must be dropped during fitting.
func rawFrame(t *testing.T, withLabel bool) *data.Frame {
	t.Helper()
	classes := []string{"A", "B", "C", "D", "E"}
	var rows [][]string
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{
			fmt.Sprint(i + 1), "carlitos", "1323084231", "05/12/2011 11:23",
			"no", "11",
			fmt.Sprintf("%d.%d", i, i), fmt.Sprintf("%d.5", 9-i), "", "NA", "0",
			classes[i%5],
		})
	}
	for i := 0; i < 2; i++ {
		rows = append(rows, []string{
			fmt.Sprint(90 + i), "carlitos", "1323084240", "05/12/2011 11:24",
			"yes", "12",
			"1.0", "2.0", "-1.1", "3.3", "0",
			"A",
		})
	}
	f, err := data.NewFrame(rawHeaders, rows)
	require.NoError(t, err)
	if !withLabel {
		return f.SelectColumns(f.HeadersWithout("classe"))
	}
	return f
}

func TestCleanerKeepsOnlySensorColumnsAndLabel(t *testing.T) {
	c := NewCleaner()
	cleaned, err := c.FitApply(rawFrame(t, true))
	require.NoError(t, err)

	assert.Equal(t, []string{"roll_belt", "pitch_belt", "classe"}, cleaned.Headers)
	assert.Equal(t, []string{"roll_belt", "pitch_belt", "classe"}, c.Columns())
}

func TestCleanerDropsWindowSummaryRows(t *testing.T) {
	c := NewCleaner()
	cleaned, err := c.FitApply(rawFrame(t, true))
	require.NoError(t, err)

	// Ten raw rows survive; the two new_window=yes rows do not.
	assert.Equal(t, 10, cleaned.NumRows())
}

func TestCleanerIsIdempotent(t *testing.T) {
	c := NewCleaner()
	once, err := c.FitApply(rawFrame(t, true))
	require.NoError(t, err)

	twice, err := c.Apply(once)
	require.NoError(t, err)
	assert.Equal(t, once.Headers, twice.Headers)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestCleanerYieldsOneSchemaForBothDatasets(t *testing.T) {
	c := NewCleaner()
	labeled, err := c.FitApply(rawFrame(t, true))
	require.NoError(t, err)

	unlabeled, err := c.Apply(rawFrame(t, false))
	require.NoError(t, err)
	assert.Equal(t, labeled.HeadersWithout("classe"), unlabeled.Headers)
}

func TestCleanerRequiresLabelColumnToFit(t *testing.T) {
	err := NewCleaner().Fit(rawFrame(t, false))
	assert.ErrorContains(t, err, "label column")
}

func TestCleanerApplyRequiresFit(t *testing.T) {
	_, err := NewCleaner().Apply(rawFrame(t, true))
	assert.ErrorContains(t, err, "not fitted")
}

func TestExcludedFieldsMatching(t *testing.T) {
	assert.True(t, ExcludedFields.Matches("user_name"))
	assert.True(t, ExcludedFields.Matches("kurtosis_yaw_dumbbell"))
	assert.True(t, ExcludedFields.Matches("stddev_pitch_forearm"))
	assert.False(t, ExcludedFields.Matches("roll_belt"))
	assert.False(t, ExcludedFields.Matches("total_accel_arm"))
}
