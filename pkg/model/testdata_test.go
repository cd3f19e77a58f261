package model

import "math/rand"

// blobs generates n samples over k well-separated classes: class c sits
// around (10c, 10c) in two dimensions with small noise, so every family
// should classify it nearly perfectly.
func blobs(n, k int, seed int64) (X [][]float64, y []int) {
	rnd := rand.New(rand.NewSource(seed))
	X = make([][]float64, n)
	y = make([]int, n)
	for i := 0; i < n; i++ {
		c := i % k
		X[i] = []float64{
			float64(10*c) + rnd.Float64(),
			float64(10*c) + rnd.Float64(),
		}
		y[i] = c
	}
	return X, y
}
