// Package opt provides parameter update rules for weight matrices.
package opt

import "gonum.org/v1/gonum/mat"

// Optimizer updates weights based on gradients.
type Optimizer interface {
	// Step computes updated weights: W - lr * grad
	// Returns a new matrix with updated values
	Step(W, grad mat.Matrix) *mat.Dense

	// StepInPlace updates W in-place: W = W - lr * grad
	StepInPlace(W *mat.Dense, grad mat.Matrix)
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// Step computes updated weights: W - lr * grad
func (s SGD) Step(W, grad mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Scale(-s.LearningRate, grad)
	out.Add(W, &out)
	return &out
}

// StepInPlace updates W in-place: W = W - lr * grad
func (s SGD) StepInPlace(W *mat.Dense, grad mat.Matrix) {
	var delta mat.Dense
	delta.Scale(s.LearningRate, grad)
	W.Sub(W, &delta)
}
