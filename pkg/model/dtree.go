package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// DecisionTree is a CART-style classifier: recursive binary splits on
// numeric thresholds, majority-class leaves. Feature data must be fully
// numeric; categorical inputs should be encoded upstream.
type DecisionTree struct {
	// Hyperparameters
	MaxDepth            int     // 0 => no depth limit
	MinSamplesSplit     int     // minimum rows to attempt a split
	MinSamplesLeaf      int     // minimum rows in each child
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => consider every feature at each split
	MinImpurityDecrease float64 // a split must gain strictly more than this
	Seed                int64   // drives feature subsampling only

	root     *treeNode
	classes  []int
	classPos map[int]int
}

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *treeNode
	right     *treeNode
	class     int // majority label (valid on leaves)
}

type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) TreeOption { return func(t *DecisionTree) { t.Criterion = c } }
func WithMaxFeatures(k int) TreeOption  { return func(t *DecisionTree) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) TreeOption {
	return func(t *DecisionTree) { t.MinImpurityDecrease = v }
}
func WithTreeSeed(seed int64) TreeOption { return func(t *DecisionTree) { t.Seed = seed } }

// NewDecisionTree returns a tree with sensible defaults: unlimited depth,
// gini impurity, all features considered at every split.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		Seed:            1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains on all rows of X.
func (t *DecisionTree) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return fmt.Errorf("dtree: %w", err)
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndex(X, y, idx)
}

// fitIndex trains on the rows named by idx. The forest calls it with
// bootstrap index samples so the data is never copied per tree.
func (t *DecisionTree) fitIndex(X [][]float64, y []int, idx []int) error {
	t.classes = uniqueClasses(y, idx)
	t.classPos = make(map[int]int, len(t.classes))
	for i, c := range t.classes {
		t.classPos[c] = i
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.root = t.grow(X, y, idx, 0, rnd)
	return nil
}

// Predict routes each row down the tree to a leaf.
func (t *DecisionTree) Predict(X [][]float64) ([]int, error) {
	if t.root == nil {
		return nil, fmt.Errorf("dtree: %w", errNotFitted)
	}
	out := make([]int, len(X))
	for i, row := range X {
		n := t.root
		for !n.leaf {
			if row[n.feature] <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		out[i] = n.class
	}
	return out, nil
}

func (t *DecisionTree) grow(X [][]float64, y []int, idx []int, depth int, rnd *rand.Rand) *treeNode {
	counts := t.countClasses(y, idx)
	node := &treeNode{leaf: true, class: t.classes[argmax(counts)]}

	if pure(counts) || len(idx) < t.MinSamplesSplit {
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return node
	}

	best := bestSplit{feature: -1}
	for _, f := range featureSample(len(X[0]), t.MaxFeatures, rnd) {
		if s := t.scanFeature(X, y, idx, f); s.feature >= 0 && s.gain > best.gain {
			best = s
		}
	}
	if best.feature < 0 || best.gain <= t.MinImpurityDecrease {
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
	node.left = t.grow(X, y, left, depth+1, rnd)
	node.right = t.grow(X, y, right, depth+1, rnd)
	return node
}

type bestSplit struct {
	gain      float64
	feature   int
	threshold float64
}

// scanFeature finds the best threshold for one feature in a single sorted
// sweep, moving class counts from the right accumulator to the left.
func (t *DecisionTree) scanFeature(X [][]float64, y []int, idx []int, f int) bestSplit {
	out := bestSplit{feature: -1}
	n := len(idx)

	ord := make([]int, n)
	copy(ord, idx)
	sort.Slice(ord, func(a, b int) bool { return X[ord[a]][f] < X[ord[b]][f] })

	left := make([]int, len(t.classes))
	right := t.countClasses(y, ord)
	parent := t.impurity(right)

	for i := 0; i < n-1; i++ {
		c := t.classPos[y[ord[i]]]
		left[c]++
		right[c]--
		if X[ord[i]][f] == X[ord[i+1]][f] {
			continue
		}
		nl, nr := i+1, n-i-1
		if nl < t.MinSamplesLeaf || nr < t.MinSamplesLeaf {
			continue
		}
		gain := parent - (float64(nl)*t.impurity(left)+float64(nr)*t.impurity(right))/float64(n)
		if gain > out.gain {
			out.gain = gain
			out.feature = f
			out.threshold = (X[ord[i]][f] + X[ord[i+1]][f]) / 2
		}
	}
	return out
}

func (t *DecisionTree) countClasses(y []int, idx []int) []int {
	counts := make([]int, len(t.classes))
	for _, i := range idx {
		counts[t.classPos[y[i]]]++
	}
	return counts
}

func (t *DecisionTree) impurity(counts []int) float64 {
	if t.Criterion == "entropy" {
		return entropyFromCounts(counts)
	}
	return giniFromCounts(counts)
}

func pure(counts []int) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func giniFromCounts(counts []int) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func entropyFromCounts(counts []int) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	if n == 0 {
		return 0
	}
	e := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		e -= p * math.Log2(p)
	}
	return e
}
