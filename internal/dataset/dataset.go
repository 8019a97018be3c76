// Package dataset builds synthetic minibatches for exercising linear classifier losses.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrShape reports inconsistent problem dimensions.
var ErrShape = errors.New("dataset: shape mismatch")

// ErrLabel reports a label outside [0, C).
var ErrLabel = errors.New("dataset: label out of range")

// Problem is one minibatch together with the weights to evaluate it at.
type Problem struct {
	W   *mat.Dense // D×C
	X   *mat.Dense // N×D
	Y   []int      // N labels in [0, C)
	Reg float64
}

// Random draws a problem with N(0, 1) features, N(0, scale^2) weights and
// uniform labels.
func Random(rng *rand.Rand, n, d, c int, scale, reg float64) *Problem {
	w := make([]float64, d*c)
	for i := range w {
		w[i] = rng.NormFloat64() * scale
	}
	x := make([]float64, n*d)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	y := make([]int, n)
	for i := range y {
		y[i] = rng.Intn(c)
	}
	return &Problem{
		W:   mat.NewDense(d, c, w),
		X:   mat.NewDense(n, d, x),
		Y:   y,
		Reg: reg,
	}
}

// Dims returns the number of examples, feature dimensions and classes.
func (p *Problem) Dims() (n, d, c int) {
	d, c = p.W.Dims()
	n, _ = p.X.Dims()
	return n, d, c
}

// Validate checks what the loss functions assume without checking.
func (p *Problem) Validate() error {
	d, c := p.W.Dims()
	n, xd := p.X.Dims()
	if xd != d {
		return fmt.Errorf("%w: X has %d columns, W has %d rows", ErrShape, xd, d)
	}
	if len(p.Y) != n {
		return fmt.Errorf("%w: %d labels for %d examples", ErrShape, len(p.Y), n)
	}
	for i, label := range p.Y {
		if label < 0 || label >= c {
			return fmt.Errorf("%w: y[%d] = %d with %d classes", ErrLabel, i, label, c)
		}
	}
	if p.Reg < 0 {
		return fmt.Errorf("dataset: negative regularization %g", p.Reg)
	}
	return nil
}
