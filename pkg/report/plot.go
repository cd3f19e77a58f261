// Package report renders the model-comparison chart for a pipeline run.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrorRateChart writes a bar chart of per-model held-out error rates to
// path (format chosen by extension, e.g. .png).
func ErrorRateChart(path string, names []string, rates []float64) error {
	if len(names) != len(rates) {
		return fmt.Errorf("report: %d names but %d rates", len(names), len(rates))
	}

	p := plot.New()
	p.Title.Text = "Held-out Misclassification Rate"
	p.Y.Label.Text = "Error rate"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values(rates), vg.Points(40))
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
