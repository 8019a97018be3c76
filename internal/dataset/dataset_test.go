package dataset

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRandomShapes(t *testing.T) {
	p := Random(rand.New(rand.NewSource(1)), 12, 5, 3, 0.01, 0.2)

	n, d, c := p.Dims()
	if n != 12 || d != 5 || c != 3 {
		t.Fatalf("Dims() = %d,%d,%d, want 12,5,3", n, d, c)
	}
	if len(p.Y) != 12 {
		t.Errorf("len(Y) = %d, want 12", len(p.Y))
	}
	for i, label := range p.Y {
		if label < 0 || label >= 3 {
			t.Errorf("Y[%d] = %d out of range", i, label)
		}
	}
	if p.Reg != 0.2 {
		t.Errorf("Reg = %v, want 0.2", p.Reg)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(9)), 4, 3, 2, 1, 0)
	b := Random(rand.New(rand.NewSource(9)), 4, 3, 2, 1, 0)
	if !mat.Equal(a.W, b.W) || !mat.Equal(a.X, b.X) {
		t.Error("same seed produced different problems")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Problem {
		return &Problem{
			W: mat.NewDense(2, 3, nil),
			X: mat.NewDense(2, 2, nil),
			Y: []int{0, 2},
		}
	}

	tests := []struct {
		name   string
		modify func(p *Problem)
		want   error
	}{
		{"feature mismatch", func(p *Problem) { p.X = mat.NewDense(2, 4, nil) }, ErrShape},
		{"label count", func(p *Problem) { p.Y = []int{0} }, ErrShape},
		{"label too large", func(p *Problem) { p.Y = []int{0, 3} }, ErrLabel},
		{"negative label", func(p *Problem) { p.Y = []int{-1, 0} }, ErrLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.modify(p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	p := base()
	p.Reg = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative reg")
	}
}
