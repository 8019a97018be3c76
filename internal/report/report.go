// Package report renders check results as text tables.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/FlavioCFOliveira/linclass/internal/check"
	"github.com/FlavioCFOliveira/linclass/internal/gradcheck"
)

// Comparisons writes one row per loss family.
func Comparisons(w io.Writer, cmps []check.Comparison, tol float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Naive vs vectorized")
	t.AppendHeader(table.Row{"Family", "Naive loss", "Vectorized loss", "Grad diff (fro)", "Grad rel err", "Naive", "Vectorized", "OK"})
	for _, c := range cmps {
		t.AppendRow(table.Row{
			c.Family,
			fmt.Sprintf("%.9f", c.NaiveLoss),
			fmt.Sprintf("%.9f", c.VectorizedLoss),
			fmt.Sprintf("%.3e", c.GradDifference),
			fmt.Sprintf("%.3e", c.GradRelError),
			c.NaiveTime.String(),
			c.VectorizedTime.String(),
			status(c.Within(tol)),
		})
	}
	t.Render()
}

// Gradients writes the sparse samples of every gradient check followed by
// its directional check.
func Gradients(w io.Writer, grads []check.GradientResult, tol float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Gradient check")
	t.AppendHeader(table.Row{"Loss", "Entry", "Numeric", "Analytic", "Rel err"})
	for _, g := range grads {
		for _, s := range g.Samples {
			t.AppendRow(table.Row{
				g.Name,
				fmt.Sprintf("(%d,%d)", s.Row, s.Col),
				fmt.Sprintf("%.6e", s.Numeric),
				fmt.Sprintf("%.6e", s.Analytic),
				fmt.Sprintf("%.3e", s.RelError),
			})
		}
		t.AppendRow(table.Row{
			g.Name,
			"direction",
			fmt.Sprintf("%.6e", g.DirectionalNumeric),
			fmt.Sprintf("%.6e", g.DirectionalExact),
			fmt.Sprintf("%.3e", gradcheck.RelError(g.DirectionalNumeric, g.DirectionalExact)),
		})
		t.AppendSeparator()
	}
	t.AppendFooter(table.Row{"", "", "", "tolerance", fmt.Sprintf("%.0e", tol)})
	t.Render()
}

// Descents writes the loss before and after one descent step per loss.
func Descents(w io.Writer, steps []check.DescentResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Descent step")
	t.AppendHeader(table.Row{"Loss", "Before", "After", "Grad norm", "OK"})
	for _, d := range steps {
		t.AppendRow(table.Row{
			d.Name,
			fmt.Sprintf("%.9f", d.Before),
			fmt.Sprintf("%.9f", d.After),
			fmt.Sprintf("%.3e", d.GradNorm),
			status(d.Decreased()),
		})
	}
	t.Render()
}

func status(ok bool) string {
	if ok {
		return "yes"
	}
	return "NO"
}
