package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// svmDelta is the margin the correct class score must exceed every other score by.
const svmDelta = 1.0

// SVMLossNaive computes the multiclass hinge (structured SVM) loss with explicit loops.
//
// W is D×C, X is N×D and y holds N labels in [0, C). The loss is the mean over
// examples of sum_{j != y[i]} max(0, s[j] - s[y[i]] + 1) plus 0.5 * reg * sum(W^2).
// The returned gradient has the shape of W and is newly allocated.
// Inputs are not validated; mismatched shapes or labels panic.
func SVMLossNaive(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense) {
	d, c := W.Dims()
	n, _ := X.Dims()
	dW := mat.NewDense(d, c, nil)

	scores := make([]float64, c)
	xi := make([]float64, d)
	wj := make([]float64, d)

	var loss float64
	for i := 0; i < n; i++ {
		mat.Row(xi, i, X)
		for j := 0; j < c; j++ {
			scores[j] = floats.Dot(xi, mat.Col(wj, j, W))
		}

		correct := scores[y[i]]
		for j := 0; j < c; j++ {
			if j == y[i] {
				continue
			}
			margin := scores[j] - correct + svmDelta
			if margin > 0 {
				loss += margin
				for k := 0; k < d; k++ {
					dW.Set(k, j, dW.At(k, j)+xi[k])
					dW.Set(k, y[i], dW.At(k, y[i])-xi[k])
				}
			}
		}
	}

	loss /= float64(n)
	loss += Regularization(W, reg)

	addRegGradient(dW, W, n, reg)
	return loss, dW
}

// SVMLossVectorized computes the same loss and gradient as SVMLossNaive
// using whole-matrix operations.
func SVMLossVectorized(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense) {
	n, _ := X.Dims()

	var scores mat.Dense
	scores.Mul(X, W)

	correct := make([]float64, n)
	for i := range correct {
		correct[i] = scores.At(i, y[i])
	}

	// margins[i][j] = max(0, s[i][j] - s[i][y[i]] + delta), zero on the label.
	var margins mat.Dense
	margins.Apply(func(i, j int, s float64) float64 {
		if j == y[i] {
			return 0
		}
		return math.Max(0, s-correct[i]+svmDelta)
	}, &scores)

	loss := mat.Sum(&margins)/float64(n) + Regularization(W, reg)

	// Turn margins into the indicator mask; the label cell carries minus the
	// number of violating classes in that row.
	margins.Apply(func(_, _ int, m float64) float64 {
		if m > 0 {
			return 1
		}
		return 0
	}, &margins)
	for i := 0; i < n; i++ {
		row := margins.RawRowView(i)
		row[y[i]] = -floats.Sum(row)
	}

	var dW mat.Dense
	dW.Mul(X.T(), &margins)
	addRegGradient(&dW, W, n, reg)
	return loss, &dW
}
