package model

import (
	"fmt"
	"math"
	"sort"
)

// GradientBoosting is a multiclass gradient-boosted tree ensemble. Each
// round fits one shallow regression tree per class to the softmax
// pseudo-residuals of the current scores and adds its shrunken leaf values
// back. Prediction is the argmax of the accumulated class scores. Fitting
// is deterministic: no row or feature subsampling.
type GradientBoosting struct {
	Rounds         int
	MaxDepth       int
	LearningRate   float64
	MinSamplesLeaf int

	classes []int
	rounds  [][]*regTree // [round][class position]
}

type BoostingOption func(*GradientBoosting)

func WithBoostingRounds(n int) BoostingOption {
	return func(g *GradientBoosting) { g.Rounds = n }
}
func WithBoostingMaxDepth(d int) BoostingOption {
	return func(g *GradientBoosting) { g.MaxDepth = d }
}
func WithLearningRate(lr float64) BoostingOption {
	return func(g *GradientBoosting) { g.LearningRate = lr }
}
func WithBoostingMinSamplesLeaf(n int) BoostingOption {
	return func(g *GradientBoosting) { g.MinSamplesLeaf = n }
}

// NewGradientBoosting returns an ensemble with sensible defaults: 100
// rounds of depth-3 trees at learning rate 0.1.
func NewGradientBoosting(opts ...BoostingOption) *GradientBoosting {
	g := &GradientBoosting{
		Rounds:         100,
		MaxDepth:       3,
		LearningRate:   0.1,
		MinSamplesLeaf: 5,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Fit runs the boosting rounds on X and y.
func (g *GradientBoosting) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return fmt.Errorf("boosting: %w", err)
	}
	n := len(X)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	g.classes = uniqueClasses(y, all)
	k := len(g.classes)
	pos := make(map[int]int, k)
	for i, c := range g.classes {
		pos[c] = i
	}

	// target is the one-hot encoding of y; scores start at zero.
	target := make([][]float64, n)
	scores := make([][]float64, n)
	for i := range target {
		target[i] = make([]float64, k)
		target[i][pos[y[i]]] = 1
		scores[i] = make([]float64, k)
	}

	g.rounds = make([][]*regTree, 0, g.Rounds)
	residual := make([]float64, n)
	for round := 0; round < g.Rounds; round++ {
		probs := softmaxRows(scores)
		trees := make([]*regTree, k)
		for c := 0; c < k; c++ {
			for i := 0; i < n; i++ {
				residual[i] = target[i][c] - probs[i][c]
			}
			tree := growRegTree(X, residual, all, 0, g.MaxDepth, g.MinSamplesLeaf, k)
			for i := 0; i < n; i++ {
				scores[i][c] += g.LearningRate * tree.predict(X[i])
			}
			trees[c] = tree
		}
		g.rounds = append(g.rounds, trees)
	}
	return nil
}

// Predict sums the ensemble's scores and takes the argmax per row. Exact
// score ties go to the smaller label code.
func (g *GradientBoosting) Predict(X [][]float64) ([]int, error) {
	if len(g.rounds) == 0 {
		return nil, fmt.Errorf("boosting: %w", errNotFitted)
	}
	k := len(g.classes)
	out := make([]int, len(X))
	for i, row := range X {
		scores := make([]float64, k)
		for _, trees := range g.rounds {
			for c, tree := range trees {
				scores[c] += g.LearningRate * tree.predict(row)
			}
		}
		best := 0
		for c := 1; c < k; c++ {
			if scores[c] > scores[best] {
				best = c
			}
		}
		out[i] = g.classes[best]
	}
	return out, nil
}

func softmaxRows(scores [][]float64) [][]float64 {
	out := make([][]float64, len(scores))
	for i, row := range scores {
		maxV := row[0]
		for _, v := range row[1:] {
			if v > maxV {
				maxV = v
			}
		}
		exps := make([]float64, len(row))
		sum := 0.0
		for j, v := range row {
			exps[j] = math.Exp(v - maxV)
			sum += exps[j]
		}
		for j := range exps {
			exps[j] /= sum
		}
		out[i] = exps
	}
	return out
}

// regTree is the internal regression tree the boosting rounds are built
// from: squared-error splits, Friedman leaf values.
type regTree struct {
	leaf      bool
	feature   int
	threshold float64
	left      *regTree
	right     *regTree
	value     float64
}

func (t *regTree) predict(row []float64) float64 {
	for !t.leaf {
		if row[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

func growRegTree(X [][]float64, r []float64, idx []int, depth, maxDepth, minLeaf, k int) *regTree {
	node := &regTree{leaf: true, value: leafValue(r, idx, k)}
	if depth >= maxDepth || len(idx) < 2*minLeaf {
		return node
	}

	best := regSplit(X, r, idx, minLeaf)
	if best.feature < 0 {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.leaf = false
	node.feature = best.feature
	node.threshold = best.threshold
	node.left = growRegTree(X, r, left, depth+1, maxDepth, minLeaf, k)
	node.right = growRegTree(X, r, right, depth+1, maxDepth, minLeaf, k)
	return node
}

// regSplit maximizes the squared-error gain sumL^2/nL + sumR^2/nR with a
// sorted sweep per feature.
func regSplit(X [][]float64, r []float64, idx []int, minLeaf int) bestSplit {
	out := bestSplit{feature: -1}
	n := len(idx)
	p := len(X[idx[0]])

	total := 0.0
	for _, i := range idx {
		total += r[i]
	}
	base := total * total / float64(n)

	ord := make([]int, n)
	for f := 0; f < p; f++ {
		copy(ord, idx)
		sort.Slice(ord, func(a, b int) bool { return X[ord[a]][f] < X[ord[b]][f] })

		sumL := 0.0
		for i := 0; i < n-1; i++ {
			sumL += r[ord[i]]
			if X[ord[i]][f] == X[ord[i+1]][f] {
				continue
			}
			nl, nr := i+1, n-i-1
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			sumR := total - sumL
			gain := sumL*sumL/float64(nl) + sumR*sumR/float64(nr) - base
			if gain > out.gain {
				out.gain = gain
				out.feature = f
				out.threshold = (X[ord[i]][f] + X[ord[i+1]][f]) / 2
			}
		}
	}
	return out
}

// leafValue is Friedman's multiclass leaf update:
// (k-1)/k * sum(r) / sum(|r| * (1 - |r|)).
func leafValue(r []float64, idx []int, k int) float64 {
	num, den := 0.0, 0.0
	for _, i := range idx {
		num += r[i]
		a := math.Abs(r[i])
		den += a * (1 - a)
	}
	if den < 1e-12 {
		return 0
	}
	return (float64(k-1) / float64(k)) * num / den
}
