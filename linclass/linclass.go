package linclass

import (
	"github.com/FlavioCFOliveira/linclass/internal/gradcheck"
	"github.com/FlavioCFOliveira/linclass/internal/loss"
)

// Re-export common types and functions for easier access
type (
	Loss     = loss.Loss
	LossFunc = loss.Func
)

// Losses
var (
	SVMLossNaive          = loss.SVMLossNaive
	SVMLossVectorized     = loss.SVMLossVectorized
	SoftmaxLossNaive      = loss.SoftmaxLossNaive
	SoftmaxLossVectorized = loss.SoftmaxLossVectorized
)

// Registry
var (
	Lookup         = loss.Lookup
	Names          = loss.Names
	Regularization = loss.Regularization
	ErrUnknownLoss = loss.ErrUnknownLoss
)

// Gradient checking
var (
	NumericalGradient = gradcheck.Numerical
	BindObjective     = gradcheck.Bind
	RelError          = gradcheck.RelError
)
