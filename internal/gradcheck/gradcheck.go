// Package gradcheck compares analytic loss gradients against finite differences.
package gradcheck

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/linclass/internal/loss"
)

// DefaultStep is the central difference step used when callers pass 0.
const DefaultStep = 1e-5

// Objective evaluates a scalar loss at a given weight matrix.
type Objective func(W *mat.Dense) float64

// Bind fixes the minibatch and regularization of l, leaving W free.
func Bind(l loss.Loss, X mat.Matrix, y []int, reg float64) Objective {
	return func(W *mat.Dense) float64 {
		v, _ := l.Loss(W, X, y, reg)
		return v
	}
}

// Numerical estimates the full gradient of f at W with central differences.
func Numerical(f Objective, W mat.Matrix, step float64) *mat.Dense {
	if step == 0 {
		step = DefaultStep
	}
	w := mat.DenseCopyOf(W)
	r, c := w.Dims()

	x := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		x = append(x, w.RawRowView(i)...)
	}

	grad := fd.Gradient(nil, func(x []float64) float64 {
		return f(mat.NewDense(r, c, x))
	}, x, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
	return mat.NewDense(r, c, grad)
}

// Sample is one finite difference probe of a single weight.
type Sample struct {
	Row, Col int
	Numeric  float64
	Analytic float64
	RelError float64
}

// Sparse probes checks randomly chosen entries of W and compares the central
// difference at each against the matching entry of analytic.
func Sparse(f Objective, W, analytic mat.Matrix, checks int, step float64, rng *rand.Rand) []Sample {
	if step == 0 {
		step = DefaultStep
	}
	w := mat.DenseCopyOf(W)
	r, c := w.Dims()
	if ar, ac := analytic.Dims(); ar != r || ac != c {
		panic(mat.ErrShape)
	}

	samples := make([]Sample, 0, checks)
	for n := 0; n < checks; n++ {
		i, j := rng.Intn(r), rng.Intn(c)

		old := w.At(i, j)
		w.Set(i, j, old+step)
		plus := f(w)
		w.Set(i, j, old-step)
		minus := f(w)
		w.Set(i, j, old)

		num := (plus - minus) / (2 * step)
		ana := analytic.At(i, j)
		samples = append(samples, Sample{
			Row:      i,
			Col:      j,
			Numeric:  num,
			Analytic: ana,
			RelError: RelError(num, ana),
		})
	}
	return samples
}

// Directional returns the central difference derivative of f at W along dir,
// together with the analytic value <analytic, dir>.
func Directional(f Objective, W, analytic, dir mat.Matrix, step float64) (numeric, exact float64) {
	if step == 0 {
		step = DefaultStep
	}

	var plus, minus mat.Dense
	plus.Scale(step, dir)
	minus.Sub(W, &plus)
	plus.Add(W, &plus)
	numeric = (f(&plus) - f(&minus)) / (2 * step)

	var prod mat.Dense
	prod.MulElem(analytic, dir)
	return numeric, mat.Sum(&prod)
}

// RelError is |a-b| / (|a|+|b|), zero when a and b are equal.
func RelError(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / (math.Abs(a) + math.Abs(b))
}

// MaxRelError returns the largest element-wise RelError between a and b.
func MaxRelError(a, b mat.Matrix) float64 {
	r, c := a.Dims()
	if br, bc := b.Dims(); br != r || bc != c {
		panic(mat.ErrShape)
	}

	var worst float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if e := RelError(a.At(i, j), b.At(i, j)); e > worst {
				worst = e
			}
		}
	}
	return worst
}
