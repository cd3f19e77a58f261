// Package split partitions a labeled dataset into training and evaluation
// index sets with stratified, seeded sampling.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Stratified assigns every row index to exactly one side. The training side
// receives round(trainFraction*n) rows overall, apportioned across classes
// by largest remainder so per-class proportions are preserved within one
// row. The same seed, fraction and label vector always produce the same
// partition.
func Stratified(y []int, trainFraction float64, seed int64) (train, eval []int, err error) {
	n := len(y)
	if n == 0 {
		return nil, nil, fmt.Errorf("split: empty label vector")
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, fmt.Errorf("split: train fraction %v outside (0,1)", trainFraction)
	}

	// Class buckets, iterated in sorted class order for determinism.
	buckets := map[int][]int{}
	var classes []int
	for i, c := range y {
		if _, ok := buckets[c]; !ok {
			classes = append(classes, c)
		}
		buckets[c] = append(buckets[c], i)
	}
	sort.Ints(classes)

	// Largest-remainder apportionment of the overall training quota.
	target := int(math.Round(trainFraction * float64(n)))
	take := make(map[int]int, len(classes))
	type remainder struct {
		class int
		frac  float64
	}
	var rems []remainder
	allotted := 0
	for _, c := range classes {
		quota := trainFraction * float64(len(buckets[c]))
		take[c] = int(math.Floor(quota))
		allotted += take[c]
		rems = append(rems, remainder{class: c, frac: quota - math.Floor(quota)})
	}
	sort.Slice(rems, func(a, b int) bool {
		if rems[a].frac != rems[b].frac {
			return rems[a].frac > rems[b].frac
		}
		return rems[a].class < rems[b].class
	})
	for i := 0; allotted < target && i < len(rems); i++ {
		c := rems[i].class
		if take[c] < len(buckets[c]) {
			take[c]++
			allotted++
		}
	}

	rnd := rand.New(rand.NewSource(seed))
	for _, c := range classes {
		b := append([]int(nil), buckets[c]...)
		rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		train = append(train, b[:take[c]]...)
		eval = append(eval, b[take[c]:]...)
	}
	sort.Ints(train)
	sort.Ints(eval)
	return train, eval, nil
}

// Subset gathers the rows and labels named by idx.
func Subset(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	Xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for k, i := range idx {
		Xs[k] = X[i]
		ys[k] = y[i]
	}
	return Xs, ys
}
