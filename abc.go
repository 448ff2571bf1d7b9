package unitscaling

import (
	"math"

	"github.com/pkg/errors"
)

// ABC is the parametrization of a single weight under SGD: the multiplier applied to it in the
// forward pass, the standard deviation it is initialized with, and its learning rate.
//
// Training dynamics are invariant under (A, B, C) -> (A·θ, B/θ, C/θ²) for any θ > 0, which is
// what allows a unit-scaled model (A = fan_in^-1/2, B = 1) to be compared with a standard one
// (A = 1, B = fan_in^-1/2).
type ABC struct {
	Forward float64
	Init    float64
	LR      float64
}

// Shift returns the parametrization with the same training dynamics as abc, whose forward
// multiplier is multiplied by θ. Shift panics if θ is not a positive, finite number.
func (abc ABC) Shift(θ float64) ABC {
	if !(θ > 0) || math.IsInf(θ, 0) {
		panic(errors.Errorf("Can't shift parametrization by θ = %v", θ))
	}

	return ABC{
		Forward: abc.Forward * θ,
		Init:    abc.Init / θ,
		LR:      abc.LR / (θ * θ),
	}
}

// Moved returns the parametrization with the same training dynamics as abc, but with the given
// forward multiplier.
func (abc ABC) Moved(forward float64) ABC {
	return abc.Shift(forward / abc.Forward)
}
