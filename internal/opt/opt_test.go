// Package opt provides unit tests for optimizers.
package opt

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestSGDStep tests SGD step computation.
func TestSGDStep(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	W := mat.NewDense(1, 3, []float64{1.0, 2.0, 3.0})
	grad := mat.NewDense(1, 3, []float64{0.1, 0.2, 0.3})

	updated := sgd.Step(W, grad)

	// Expected: W - lr * grad
	expected := mat.NewDense(1, 3, []float64{
		1.0 - 0.1*0.1, // 0.99
		2.0 - 0.1*0.2, // 1.98
		3.0 - 0.1*0.3, // 2.97
	})

	if !mat.EqualApprox(updated, expected, 1e-10) {
		t.Errorf("updated = %v, want %v", mat.Formatted(updated), mat.Formatted(expected))
	}

	// Step must not touch its input
	if W.At(0, 0) != 1.0 {
		t.Error("Step modified W")
	}
}

// TestSGDStepInPlace tests in-place SGD update.
func TestSGDStepInPlace(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	W := mat.NewDense(2, 2, []float64{1.0, 2.0, 3.0, 4.0})
	grad := mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4})

	sgd.StepInPlace(W, grad)

	expected := mat.NewDense(2, 2, []float64{0.99, 1.98, 2.97, 3.96})
	if !mat.EqualApprox(W, expected, 1e-10) {
		t.Errorf("W = %v, want %v", mat.Formatted(W), mat.Formatted(expected))
	}
}

// TestSGDLearningRateEffect tests that larger learning rates cause larger updates.
func TestSGDLearningRateEffect(t *testing.T) {
	zero := mat.NewDense(1, 2, nil)
	grad := mat.NewDense(1, 2, []float64{1.0, 2.0})

	small := SGD{LearningRate: 0.01}.Step(zero, grad)
	large := SGD{LearningRate: 0.1}.Step(zero, grad)

	if mat.Norm(large, 2) <= mat.Norm(small, 2) {
		t.Error("larger learning rate should produce larger update")
	}
}

// TestSGDImplementsOptimizer checks the interface is satisfied.
func TestSGDImplementsOptimizer(t *testing.T) {
	var _ Optimizer = SGD{}
}
