// Package pipeline wires the six batch steps together: acquire, clean,
// partition, train and score, select and finalize, apply.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/lindakukolich/WeightsProject/pkg/config"
	"github.com/lindakukolich/WeightsProject/pkg/data"
	"github.com/lindakukolich/WeightsProject/pkg/dataprep"
	"github.com/lindakukolich/WeightsProject/pkg/model"
	"github.com/lindakukolich/WeightsProject/pkg/report"
	"github.com/lindakukolich/WeightsProject/pkg/split"
)

// Candidate pairs a family name with a constructor, so selection can refit
// a fresh estimator of the winning family on the full labeled data.
type Candidate struct {
	Name string
	New  func() model.Classifier
}

// Result is one candidate's held-out misclassification rate.
type Result struct {
	Name    string
	ErrRate float64
}

// Select returns the index of the minimum-error result. Strictly lower
// error wins; candidates are listed simplest family first, so equal rates
// go to the simpler model.
func Select(results []Result) (int, error) {
	if len(results) == 0 {
		return 0, errors.New("pipeline: no results to select from")
	}
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].ErrRate < results[best].ErrRate {
			best = i
		}
	}
	return best, nil
}

// WritePredictions writes one file per label under dir, named by 1-based
// row index. Each file contains exactly the label text.
func WritePredictions(dir string, labels []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for i, lab := range labels {
		name := filepath.Join(dir, fmt.Sprintf("problem_id_%d.txt", i+1))
		if err := os.WriteFile(name, []byte(lab), 0o644); err != nil {
			return fmt.Errorf("write prediction %d: %w", i+1, err)
		}
	}
	return nil
}

// Runner executes one end-to-end run.
type Runner struct {
	Cfg *config.Config
	Log *slog.Logger
}

// Run executes the pipeline and leaves one prediction file per application
// row plus a comparison chart under the configured output directory.
func (r *Runner) Run() error {
	cfg := r.Cfg
	log := r.Log
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Acquire.
	labeled, err := data.FetchCSV(cfg.Sources.Training, r.cachePath(cfg.Sources.Training))
	if err != nil {
		return fmt.Errorf("acquire labeled dataset: %w", err)
	}
	unlabeled, err := data.FetchCSV(cfg.Sources.Application, r.cachePath(cfg.Sources.Application))
	if err != nil {
		return fmt.Errorf("acquire application dataset: %w", err)
	}
	log.Info("datasets loaded",
		"labeled_rows", labeled.NumRows(),
		"application_rows", unlabeled.NumRows(),
		"columns", labeled.NumCols())

	// Clean. One cleaner fit once, applied to both frames, so the two
	// cleaned schemas cannot drift apart.
	cleaner := dataprep.NewCleaner(
		dataprep.WithLabelField(cfg.LabelField),
		dataprep.WithMaxMissing(cfg.MaxMissing),
	)
	cleanLabeled, err := cleaner.FitApply(labeled)
	if err != nil {
		return fmt.Errorf("clean labeled dataset: %w", err)
	}
	cleanApp, err := cleaner.Apply(unlabeled)
	if err != nil {
		return fmt.Errorf("clean application dataset: %w", err)
	}
	if !sameFeatureSchema(cleanLabeled, cleanApp, cfg.LabelField) {
		return errors.New("pipeline: cleaned feature schemas differ between datasets")
	}
	log.Info("cleaned",
		"rows", cleanLabeled.NumRows(),
		"columns", cleanLabeled.NumCols(),
		"excluded_fields_version", cleaner.Excluded.Version)

	// Encode and extract.
	labelCells, err := cleanLabeled.Column(cfg.LabelField)
	if err != nil {
		return err
	}
	y, classes := data.EncodeLabels(labelCells)
	X, err := cleanLabeled.Matrix(cfg.LabelField)
	if err != nil {
		return err
	}
	XApp, err := cleanApp.Matrix(cfg.LabelField)
	if err != nil {
		return err
	}

	// Partition.
	trainIdx, evalIdx, err := split.Stratified(y, cfg.TrainFraction, cfg.Seed)
	if err != nil {
		return err
	}
	XTrain, yTrain := split.Subset(X, y, trainIdx)
	XEval, yEval := split.Subset(X, y, evalIdx)
	log.Info("partitioned", "train_rows", len(trainIdx), "eval_rows", len(evalIdx))

	// Train and score the three candidates.
	cands := r.candidates()
	results := make([]Result, len(cands))
	for i, cand := range cands {
		clf := cand.New()
		if err := clf.Fit(XTrain, yTrain); err != nil {
			return fmt.Errorf("fit %s: %w", cand.Name, err)
		}
		pred, err := clf.Predict(XEval)
		if err != nil {
			return fmt.Errorf("score %s: %w", cand.Name, err)
		}
		results[i] = Result{Name: cand.Name, ErrRate: model.MisclassificationRate(yEval, pred)}
		log.Info("candidate scored", "model", cand.Name, "error_rate", results[i].ErrRate)
	}

	// Select and finalize: refit the winner on the full labeled data.
	best, err := Select(results)
	if err != nil {
		return err
	}
	log.Info("model selected", "model", cands[best].Name, "error_rate", results[best].ErrRate)
	final := cands[best].New()
	if err := final.Fit(X, y); err != nil {
		return fmt.Errorf("finalize %s: %w", cands[best].Name, err)
	}

	// Apply.
	pred, err := final.Predict(XApp)
	if err != nil {
		return fmt.Errorf("predict application set: %w", err)
	}
	labels, err := data.DecodeLabels(pred, classes)
	if err != nil {
		return err
	}
	if err := WritePredictions(cfg.OutputDir, labels); err != nil {
		return err
	}
	log.Info("predictions written", "count", len(labels), "dir", cfg.OutputDir)

	names := make([]string, len(results))
	rates := make([]float64, len(results))
	for i, res := range results {
		names[i] = res.Name
		rates[i] = res.ErrRate
	}
	chart := filepath.Join(cfg.OutputDir, "model-comparison.png")
	if err := report.ErrorRateChart(chart, names, rates); err != nil {
		return err
	}
	log.Info("comparison chart written", "path", chart)
	return nil
}

// candidates lists the three families, simplest first (the Select
// tie-break relies on this order).
func (r *Runner) candidates() []Candidate {
	cfg := r.Cfg
	return []Candidate{
		{Name: "tree", New: func() model.Classifier {
			return model.NewDecisionTree(model.WithTreeSeed(cfg.Seed))
		}},
		{Name: "boosted", New: func() model.Classifier {
			return model.NewGradientBoosting(
				model.WithBoostingRounds(cfg.Boosting.Rounds),
				model.WithBoostingMaxDepth(cfg.Boosting.MaxDepth),
				model.WithLearningRate(cfg.Boosting.LearningRate),
			)
		}},
		{Name: "forest", New: func() model.Classifier {
			return model.NewRandomForest(
				model.WithForestTrees(cfg.Forest.Trees),
				model.WithForestMaxFeatures(cfg.Forest.MaxFeatures),
				model.WithForestSeed(cfg.Seed),
			)
		}},
	}
}

// cachePath derives the local cache file from the URL's base name.
func (r *Runner) cachePath(rawURL string) string {
	base := "dataset.csv"
	if u, err := url.Parse(rawURL); err == nil {
		if b := path.Base(u.Path); b != "" && b != "." && b != "/" {
			base = b
		}
	}
	return filepath.Join(r.Cfg.CacheDir, base)
}

// sameFeatureSchema compares the two cleaned frames' column names ignoring
// the label column, which only the labeled frame carries.
func sameFeatureSchema(labeled, app *data.Frame, labelField string) bool {
	a := labeled.HeadersWithout(labelField)
	b := app.HeadersWithout(labelField)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
