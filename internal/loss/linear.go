package loss

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrUnknownLoss is returned by Lookup for a name with no registered loss.
var ErrUnknownLoss = errors.New("unknown loss")

// Loss computes the loss of a linear classifier with weights W (D×C) on a
// minibatch X (N×D) with labels y, and the gradient of that loss w.r.t. W.
type Loss interface {
	Loss(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense)
}

// Func adapts a plain loss function to the Loss interface.
type Func func(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense)

// Loss calls f.
func (f Func) Loss(W, X mat.Matrix, y []int, reg float64) (float64, *mat.Dense) {
	return f(W, X, y, reg)
}

// Registered loss names.
const (
	SVMNaive          = "svm-naive"
	SVMVectorized     = "svm-vectorized"
	SoftmaxNaive      = "softmax-naive"
	SoftmaxVectorized = "softmax-vectorized"
)

var registry = map[string]Loss{
	SVMNaive:          Func(SVMLossNaive),
	SVMVectorized:     Func(SVMLossVectorized),
	SoftmaxNaive:      Func(SoftmaxLossNaive),
	SoftmaxVectorized: Func(SoftmaxLossVectorized),
}

// Lookup returns the loss registered under name.
func Lookup(name string) (Loss, error) {
	l, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
	}
	return l, nil
}

// Names returns the registered loss names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pair groups the two implementations of one loss family.
type Pair struct {
	Family     string
	Naive      Loss
	Vectorized Loss
}

// Pairs returns the naive/vectorized pair of every loss family.
func Pairs() []Pair {
	return []Pair{
		{Family: "svm", Naive: registry[SVMNaive], Vectorized: registry[SVMVectorized]},
		{Family: "softmax", Naive: registry[SoftmaxNaive], Vectorized: registry[SoftmaxVectorized]},
	}
}

// Regularization returns the L2 penalty 0.5 * reg * sum(W^2).
func Regularization(W mat.Matrix, reg float64) float64 {
	if reg == 0 {
		return 0
	}
	var sq mat.Dense
	sq.MulElem(W, W)
	return 0.5 * reg * mat.Sum(&sq)
}

// addRegGradient scales dW by 1/n and adds reg * W, in place.
func addRegGradient(dW *mat.Dense, W mat.Matrix, n int, reg float64) {
	dW.Scale(1/float64(n), dW)
	if reg == 0 {
		return
	}
	var rW mat.Dense
	rW.Scale(reg, W)
	dW.Add(dW, &rW)
}
