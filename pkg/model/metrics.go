package model

import "fmt"

// MisclassificationRate returns the exact fraction of positions where the
// two equal-length label sequences disagree.
func MisclassificationRate(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	m := 0
	for i := range yTrue {
		if yTrue[i] != yPred[i] {
			m++
		}
	}
	return float64(m) / float64(len(yTrue))
}

// Accuracy is the complement of the misclassification rate.
func Accuracy(yTrue, yPred []int) float64 {
	return 1 - MisclassificationRate(yTrue, yPred)
}

// ConfusionMatrix counts [true][predicted] pairs over dense label codes
// 0..k-1. Codes outside that range are an error.
func ConfusionMatrix(yTrue, yPred []int, k int) ([][]int, error) {
	cm := make([][]int, k)
	for i := range cm {
		cm[i] = make([]int, k)
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= k || p < 0 || p >= k {
			return nil, fmt.Errorf("metrics: label pair (%d,%d) outside [0,%d)", t, p, k)
		}
		cm[t][p]++
	}
	return cm, nil
}
