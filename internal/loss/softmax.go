package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SoftmaxLossNaive computes the softmax cross-entropy loss with explicit loops.
//
// Scores of each example are shifted by their maximum before exponentiation so
// exp never overflows. The loss is the mean of -log p[y[i]] plus
// 0.5 * reg * sum(W^2); the gradient has the shape of W and is newly allocated.
func SoftmaxLossNaive(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense) {
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

		shift := scores[0]
		for j := 1; j < c; j++ {
			if scores[j] > shift {
				shift = scores[j]
			}
		}

		var sum float64
		for j := 0; j < c; j++ {
			scores[j] = math.Exp(scores[j] - shift)
			sum += scores[j]
		}

		loss -= math.Log(scores[y[i]] / sum)

		for j := 0; j < c; j++ {
			p := scores[j] / sum
			if j == y[i] {
				p--
			}
			for k := 0; k < d; k++ {
				dW.Set(k, j, dW.At(k, j)+p*xi[k])
			}
		}
	}

	loss /= float64(n)
	loss += Regularization(W, reg)

	addRegGradient(dW, W, n, reg)
	return loss, dW
}

// SoftmaxLossVectorized computes the same loss and gradient as
// SoftmaxLossNaive using whole-matrix operations.
func SoftmaxLossVectorized(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense) {
	n, _ := X.Dims()

	var probs mat.Dense
	probs.Mul(X, W)

	rowMax := make([]float64, n)
	for i := range rowMax {
		rowMax[i] = floats.Max(probs.RawRowView(i))
	}
	probs.Apply(func(i, _ int, s float64) float64 {
		return math.Exp(s - rowMax[i])
	}, &probs)

	rowSum := make([]float64, n)
	for i := range rowSum {
		rowSum[i] = floats.Sum(probs.RawRowView(i))
	}
	probs.Apply(func(i, _ int, e float64) float64 {
		return e / rowSum[i]
	}, &probs)

	var loss float64
	for i := 0; i < n; i++ {
		p := probs.At(i, y[i])
		loss -= math.Log(p)
		probs.Set(i, y[i], p-1)
	}
	loss = loss/float64(n) + Regularization(W, reg)

	var dW mat.Dense
	dW.Mul(X.T(), &probs)
	addRegGradient(&dW, W, n, reg)
	return loss, &dW
}
