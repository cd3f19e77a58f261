package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindakukolich/WeightsProject/pkg/config"
)

func TestSelectPicksMinimumError(t *testing.T) {
	results := []Result{
		{Name: "tree", ErrRate: 0.30},
		{Name: "boosted", ErrRate: 0.10},
		{Name: "forest", ErrRate: 0.20},
	}
	best, err := Select(results)
	require.NoError(t, err)
	assert.Equal(t, 1, best)
}

func TestSelectTieGoesToSimplerFamily(t *testing.T) {
	results := []Result{
		{Name: "tree", ErrRate: 0.10},
		{Name: "boosted", ErrRate: 0.10},
		{Name: "forest", ErrRate: 0.10},
	}
	best, err := Select(results)
	require.NoError(t, err)
	assert.Equal(t, 0, best)
}

func TestSelectRejectsEmpty(t *testing.T) {
	_, err := Select(nil)
	assert.Error(t, err)
}

func TestWritePredictionsOneFilePerRow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('A' + i%5))
	}
	require.NoError(t, WritePredictions(dir, labels))

	for i := 1; i <= 20; i++ {
		body, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("problem_id_%d.txt", i)))
		require.NoError(t, err)
		assert.Equal(t, labels[i-1], string(body))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

// labeledCSV builds a dataset shaped like the source file: bookkeeping
// columns, a per-window statistic column that is blank on raw rows, two
// window summary rows, and five separable classes.
func labeledCSV() string {
	var b strings.Builder
	b.WriteString("X,user_name,raw_timestamp_part_1,cvtd_timestamp,new_window,num_window,roll_belt,pitch_belt,kurtosis_roll_belt,classe\n")
	classes := []string{"A", "B", "C", "D", "E"}
	row := 1
	for i := 0; i < 15; i++ {
		for c, name := range classes {
			fmt.Fprintf(&b, "%d,carlitos,1323084231,05/12/2011 11:23,no,11,%d.%d,%d.%d,,%s\n",
				row, 10*c, i%7, 10*c, (i+3)%7, name)
			row++
		}
	}
	b.WriteString(fmt.Sprintf("%d,carlitos,1323084240,05/12/2011 11:24,yes,12,1.0,2.0,-1.1,A\n", row))
	b.WriteString(fmt.Sprintf("%d,carlitos,1323084250,05/12/2011 11:25,yes,13,3.0,4.0,0.7,B\n", row+1))
	return b.String()
}

// applicationCSV has the labeled schema minus classe plus a problem_id
// column, like the source application file.
func applicationCSV() string {
	var b strings.Builder
	b.WriteString("X,user_name,raw_timestamp_part_1,cvtd_timestamp,new_window,num_window,roll_belt,pitch_belt,kurtosis_roll_belt,problem_id\n")
	for i := 0; i < 20; i++ {
		c := i % 5
		fmt.Fprintf(&b, "%d,eurico,1323084300,05/12/2011 11:30,no,20,%d.3,%d.4,,%d\n",
			i+1, 10*c, 10*c, i+1)
	}
	return b.String()
}

func TestRunnerEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/train.csv":
			io.WriteString(w, labeledCSV())
		case "/app.csv":
			io.WriteString(w, applicationCSV())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Sources.Training = srv.URL + "/train.csv"
	cfg.Sources.Application = srv.URL + "/app.csv"
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Seed = 7
	cfg.Forest.Trees = 10
	cfg.Boosting.Rounds = 10
	cfg.Boosting.LearningRate = 0.3

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := &Runner{Cfg: cfg, Log: logger}
	require.NoError(t, r.Run())

	// Exactly one file per application row, each holding a known label.
	for i := 1; i <= 20; i++ {
		body, err := os.ReadFile(filepath.Join(cfg.OutputDir, fmt.Sprintf("problem_id_%d.txt", i)))
		require.NoError(t, err)
		assert.Contains(t, []string{"A", "B", "C", "D", "E"}, string(body))
	}

	// The application rows sit on the class centers, so the finalized
	// model should label them by construction.
	for i := 1; i <= 20; i++ {
		body, _ := os.ReadFile(filepath.Join(cfg.OutputDir, fmt.Sprintf("problem_id_%d.txt", i)))
		want := string(rune('A' + (i-1)%5))
		assert.Equal(t, want, string(body), "row %d", i)
	}

	chart, err := os.Stat(filepath.Join(cfg.OutputDir, "model-comparison.png"))
	require.NoError(t, err)
	assert.Greater(t, chart.Size(), int64(0))

	// Rerunning hits the cache and overwrites the outputs in place.
	require.NoError(t, r.Run())
}

func TestRunnerFailsWhenDownloadFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	cfg := config.Default()
	cfg.Sources.Training = srv.URL + "/train.csv"
	cfg.Sources.Application = srv.URL + "/app.csv"
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := &Runner{Cfg: cfg, Log: logger}
	assert.Error(t, r.Run())
}
