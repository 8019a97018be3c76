// Package check verifies that loss implementations agree with each other and
// with finite difference gradients.
package check

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/linclass/internal/config"
	"github.com/FlavioCFOliveira/linclass/internal/dataset"
	"github.com/FlavioCFOliveira/linclass/internal/gradcheck"
	"github.com/FlavioCFOliveira/linclass/internal/logger"
	"github.com/FlavioCFOliveira/linclass/internal/loss"
	"github.com/FlavioCFOliveira/linclass/internal/opt"
)

// ErrMismatch is returned by Run when a check exceeds its tolerance.
var ErrMismatch = errors.New("check: tolerance exceeded")

// Comparison holds the outcome of evaluating two implementations of one loss.
type Comparison struct {
	Family         string
	NaiveLoss      float64
	VectorizedLoss float64
	LossRelError   float64
	GradDifference float64 // Frobenius norm of the gradient difference
	GradRelError   float64 // GradDifference over the summed gradient norms
	GradMaxElement float64 // largest element-wise relative error
	NaiveTime      time.Duration
	VectorizedTime time.Duration
}

// Within reports whether both the loss and the gradient agree within tol.
func (c Comparison) Within(tol float64) bool {
	return c.LossRelError <= tol && c.GradRelError <= tol
}

// Compare evaluates naive and vectorized on p.
func Compare(p *dataset.Problem, family string, naive, vectorized loss.Loss) Comparison {
	start := time.Now()
	ln, gn := naive.Loss(p.W, p.X, p.Y, p.Reg)
	naiveTime := time.Since(start)

	start = time.Now()
	lv, gv := vectorized.Loss(p.W, p.X, p.Y, p.Reg)
	vectorizedTime := time.Since(start)

	var diff mat.Dense
	diff.Sub(gn, gv)
	norm := mat.Norm(&diff, 2)

	var rel float64
	if norm > 0 {
		rel = norm / (mat.Norm(gn, 2) + mat.Norm(gv, 2))
	}

	return Comparison{
		Family:         family,
		NaiveLoss:      ln,
		VectorizedLoss: lv,
		LossRelError:   gradcheck.RelError(ln, lv),
		GradDifference: norm,
		GradRelError:   rel,
		GradMaxElement: gradcheck.MaxRelError(gn, gv),
		NaiveTime:      naiveTime,
		VectorizedTime: vectorizedTime,
	}
}

// GradientResult holds the finite difference checks of one loss.
type GradientResult struct {
	Name               string
	Samples            []gradcheck.Sample
	DirectionalNumeric float64
	DirectionalExact   float64
}

// MaxRelError is the worst relative error over the sparse samples and the
// directional check.
func (g GradientResult) MaxRelError() float64 {
	worst := gradcheck.RelError(g.DirectionalNumeric, g.DirectionalExact)
	for _, s := range g.Samples {
		worst = math.Max(worst, s.RelError)
	}
	return worst
}

// Within reports whether every check agrees within tol.
func (g GradientResult) Within(tol float64) bool {
	return g.MaxRelError() <= tol
}

// Gradient checks the analytic gradient of l on p at checks random entries
// and along one random direction.
func Gradient(p *dataset.Problem, name string, l loss.Loss, checks int, step float64, rng *rand.Rand) GradientResult {
	f := gradcheck.Bind(l, p.X, p.Y, p.Reg)
	_, analytic := l.Loss(p.W, p.X, p.Y, p.Reg)

	d, c := p.W.Dims()
	dir := make([]float64, d*c)
	for i := range dir {
		dir[i] = rng.NormFloat64()
	}

	numeric, exact := gradcheck.Directional(f, p.W, analytic, mat.NewDense(d, c, dir), step)
	return GradientResult{
		Name:               name,
		Samples:            gradcheck.Sparse(f, p.W, analytic, checks, step, rng),
		DirectionalNumeric: numeric,
		DirectionalExact:   exact,
	}
}

// DescentResult records one gradient descent step taken from the problem's W.
type DescentResult struct {
	Name     string
	Before   float64
	After    float64
	GradNorm float64
}

// Decreased reports whether the step lowered the loss. A zero gradient
// leaves nothing to descend along and counts as success.
func (d DescentResult) Decreased() bool {
	return d.After < d.Before || d.GradNorm == 0
}

// Descent takes one SGD step of rate lr against the analytic gradient of l.
func Descent(p *dataset.Problem, name string, l loss.Loss, lr float64) DescentResult {
	before, grad := l.Loss(p.W, p.X, p.Y, p.Reg)
	W := opt.SGD{LearningRate: lr}.Step(p.W, grad)
	after, _ := l.Loss(W, p.X, p.Y, p.Reg)
	return DescentResult{
		Name:     name,
		Before:   before,
		After:    after,
		GradNorm: mat.Norm(grad, 2),
	}
}

// Result collects everything Run checked.
type Result struct {
	Comparisons []Comparison
	Gradients   []GradientResult
	Descents    []DescentResult
}

// Run builds a random problem from cfg and checks every registered loss.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	log := logger.FromContext(ctx)
	rng := rand.New(rand.NewSource(cfg.Seed))

	p := dataset.Random(rng, cfg.Examples, cfg.Dims, cfg.Classes, cfg.WeightScale, cfg.Reg)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log.Debug("problem ready", "examples", cfg.Examples, "dims", cfg.Dims, "classes", cfg.Classes, "reg", cfg.Reg)

	res := &Result{}
	var failed []string

	for _, pair := range loss.Pairs() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		cmp := Compare(p, pair.Family, pair.Naive, pair.Vectorized)
		res.Comparisons = append(res.Comparisons, cmp)
		log.Info("compared implementations",
			"family", cmp.Family,
			"naive_loss", cmp.NaiveLoss,
			"vectorized_loss", cmp.VectorizedLoss,
			"grad_difference", cmp.GradDifference,
			"naive_time", cmp.NaiveTime,
			"vectorized_time", cmp.VectorizedTime,
		)
		if !cmp.Within(cfg.Tolerance) {
			failed = append(failed, cmp.Family+" naive/vectorized")
		}
	}

	for _, name := range loss.Names() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		l, err := loss.Lookup(name)
		if err != nil {
			return res, err
		}
		g := Gradient(p, name, l, cfg.GradChecks, cfg.GradStep, rng)
		res.Gradients = append(res.Gradients, g)
		log.Info("checked gradient", "loss", name, "max_rel_error", g.MaxRelError())
		if !g.Within(cfg.GradTolerance) {
			failed = append(failed, name+" gradient")
		}

		ds := Descent(p, name, l, cfg.DescentRate)
		res.Descents = append(res.Descents, ds)
		log.Debug("took descent step", "loss", name, "before", ds.Before, "after", ds.After)
		if !ds.Decreased() {
			failed = append(failed, name+" descent")
		}
	}

	if len(failed) > 0 {
		return res, fmt.Errorf("%w: %v", ErrMismatch, failed)
	}
	return res, nil
}
