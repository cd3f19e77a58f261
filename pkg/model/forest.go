package model

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// RandomForest bags decision trees: each tree sees a bootstrap resample of
// the rows and a random feature subset at every split, and prediction is
// the majority vote across trees. Trees are fit concurrently; each gets its
// own seeded source so runs reproduce.
type RandomForest struct {
	Trees           int
	MaxDepth        int   // 0 => unlimited
	MinSamplesSplit int
	MaxFeatures     int   // 0 => sqrt(feature count)
	Seed            int64

	trees []*DecisionTree
}

type ForestOption func(*RandomForest)

func WithForestTrees(n int) ForestOption { return func(rf *RandomForest) { rf.Trees = n } }
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestSeed(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.Seed = seed }
}

// NewRandomForest returns a forest with sensible defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		Trees:           100,
		MinSamplesSplit: 2,
		Seed:            1,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit grows the trees on bootstrap index samples. Samples are index slices
// into the shared matrix, never row copies.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	n := len(X)

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(X[0]))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	rf.trees = make([]*DecisionTree, rf.Trees)
	errCh := make(chan error, rf.Trees)
	var wg sync.WaitGroup
	for i := 0; i < rf.Trees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Per-tree source so concurrent trees do not contend or
			// depend on scheduling order.
			rnd := rand.New(rand.NewSource(rf.Seed + int64(i)))
			sample := make([]int, n)
			for j := range sample {
				sample[j] = rnd.Intn(n)
			}
			tree := NewDecisionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(maxFeatures),
				WithTreeSeed(rf.Seed+int64(i)),
			)
			if err := tree.fitIndex(X, y, sample); err != nil {
				errCh <- err
				return
			}
			rf.trees[i] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return fmt.Errorf("forest: %w", err)
		}
	}
	return nil
}

// Predict returns the majority vote across trees. Vote ties go to the
// smaller label code so prediction is deterministic.
func (rf *RandomForest) Predict(X [][]float64) ([]int, error) {
	if len(rf.trees) == 0 {
		return nil, fmt.Errorf("forest: %w", errNotFitted)
	}
	votes := make([]map[int]int, len(X))
	for i := range votes {
		votes[i] = make(map[int]int)
	}
	for _, tree := range rf.trees {
		preds, err := tree.Predict(X)
		if err != nil {
			return nil, fmt.Errorf("forest: %w", err)
		}
		for i, c := range preds {
			votes[i][c]++
		}
	}

	out := make([]int, len(X))
	for i, v := range votes {
		best, bestN := 0, -1
		for c, cnt := range v {
			if cnt > bestN || (cnt == bestN && c < best) {
				best, bestN = c, cnt
			}
		}
		out[i] = best
	}
	return out, nil
}
