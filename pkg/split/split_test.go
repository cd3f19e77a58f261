package split

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balancedLabels returns 100 labels, 20 per class over 5 classes.
func balancedLabels() []int {
	y := make([]int, 100)
	for i := range y {
		y[i] = i % 5
	}
	return y
}

func TestStratifiedIsDeterministic(t *testing.T) {
	y := balancedLabels()
	train1, eval1, err := Stratified(y, 0.33, 42)
	require.NoError(t, err)
	train2, eval2, err := Stratified(y, 0.33, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, eval1, eval2)
}

func TestStratifiedIsDisjointAndExhaustive(t *testing.T) {
	y := balancedLabels()
	train, eval, err := Stratified(y, 0.33, 7)
	require.NoError(t, err)

	all := append(append([]int(nil), train...), eval...)
	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v)
	}
}

func TestStratifiedSizesAndClassProportions(t *testing.T) {
	y := balancedLabels()
	train, eval, err := Stratified(y, 0.33, 7)
	require.NoError(t, err)

	// round(0.33*100) = 33 training rows, the remaining 67 evaluate.
	assert.Len(t, train, 33)
	assert.Len(t, eval, 67)

	// Each 20-row class contributes floor(6.6)=6 or 7 training rows.
	perClass := map[int]int{}
	for _, i := range train {
		perClass[y[i]]++
	}
	for c := 0; c < 5; c++ {
		assert.Contains(t, []int{6, 7}, perClass[c], "class %d", c)
	}
}

func TestStratifiedRejectsBadInput(t *testing.T) {
	_, _, err := Stratified(nil, 0.33, 1)
	assert.Error(t, err)

	_, _, err = Stratified([]int{0, 1}, 1.5, 1)
	assert.Error(t, err)
}

func TestSubset(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {3}}
	y := []int{10, 11, 12, 13}
	Xs, ys := Subset(X, y, []int{3, 0})
	assert.Equal(t, [][]float64{{3}, {0}}, Xs)
	assert.Equal(t, []int{13, 10}, ys)
}
