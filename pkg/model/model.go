// Package model provides the three classifier families the pipeline
// compares: a CART decision tree, a gradient-boosted tree ensemble, and a
// random forest. Labels are dense integer codes; all randomness is seeded.
package model

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Classifier is the capability every family implements. Fit consumes a
// row-major feature matrix and one label code per row; Predict returns one
// label code per input row, in row order.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
}

var errNotFitted = errors.New("model: not fitted")

func checkXY(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("empty feature matrix")
	}
	if len(y) != len(X) {
		return fmt.Errorf("%d rows but %d labels", len(X), len(y))
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("rows have no features")
	}
	for i := range X {
		if len(X[i]) != p {
			return fmt.Errorf("row %d has %d features, want %d", i, len(X[i]), p)
		}
	}
	return nil
}

// uniqueClasses returns the sorted distinct labels among the rows in idx.
func uniqueClasses(y []int, idx []int) []int {
	seen := map[int]bool{}
	var classes []int
	for _, i := range idx {
		if !seen[y[i]] {
			seen[y[i]] = true
			classes = append(classes, y[i])
		}
	}
	sort.Ints(classes)
	return classes
}

func argmax(v []int) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// featureSample returns k distinct feature indices (all of them when k <= 0
// or k >= p), via a partial Fisher-Yates shuffle.
func featureSample(p, k int, rnd *rand.Rand) []int {
	feats := make([]int, p)
	for j := range feats {
		feats[j] = j
	}
	if k <= 0 || k >= p {
		return feats
	}
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(p-i)
		feats[i], feats[j] = feats[j], feats[i]
	}
	return feats[:k]
}
