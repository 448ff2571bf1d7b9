package unitscaling

import (
	"math"
)

// ReadoutScales returns the multipliers that an output layer with the given descriptor uses in its
// forward and backward passes.
//
// The forward-ideal multiplier, fan_in^-1/2, keeps the output unit-scaled. The backward-ideal
// multiplier, fan_out^-1/2, keeps the gradient that flows back into the trunk unit-scaled. Under
// ToOutputScale both passes use the forward one; under NoConstraint the backward pass uses the
// backward-ideal one.
//
// ReadoutScales returns a *RoleError if p is not an Output parameter, or a *ConstraintError or
// *ShapeError if its constraint or shape are unusable.
func ReadoutScales(p Param) (forward, backward float64, err error) {
	if p.role != Output {
		return 0, 0, &RoleError{p}
	} else if err = p.Validate(); err != nil {
		return 0, 0, err
	}

	fanIn, _ := p.FanIn()
	fanOut, _ := p.FanOut()

	forward = 1 / math.Sqrt(float64(fanIn))
	if p.readout == ToOutputScale {
		return forward, forward, nil
	}

	return forward, 1 / math.Sqrt(float64(fanOut)), nil
}

// ReadoutCorrection returns the factor by which the learning rates of the Weight and Output
// parameters behind the given readout must be multiplied to cancel the difference between its
// forward and backward multipliers. It is 1 under ToOutputScale and sqrt(fan_out / fan_in) under
// NoConstraint.
//
// This only holds for momentum-style (SGD) updates, which are linear in the gradient. Adaptive
// updates are invariant to the gradient's scale and need no correction.
func ReadoutCorrection(p Param) (float64, error) {
	fwd, bwd, err := ReadoutScales(p)
	if err != nil {
		return 0, err
	}

	return fwd / bwd, nil
}
