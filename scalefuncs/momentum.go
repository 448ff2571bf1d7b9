package scalefuncs

import (
	"math"

	us "github.com/EIFY/unit-scaling"
)

type momentum struct {
	constraint us.ReadoutConstraint
	law        us.DepthLaw
}

// Momentum returns the ScaleFunc for momentum-style optimizers (SGD, with or without momentum),
// for a model whose readout uses the given constraint. The multipliers are:
//
//	bias, norm: depth_scale · fan_in
//	weight:     depth_scale · fan_in^e, with e given by WeightExponent
//	output:     depth_scale
//
// Momentum does not validate the constraint; an unknown one is reported for every parameter
// by LRScale.
func Momentum(c us.ReadoutConstraint) *momentum {
	return &momentum{constraint: c}
}

// Depth sets the DepthLaw used by the ScaleFunc. If never set (or set to nil), the default is used.
func (m *momentum) Depth(law us.DepthLaw) *momentum {
	m.law = law
	return m
}

// Constraint returns the readout constraint that the ScaleFunc was built for.
func (m *momentum) Constraint() us.ReadoutConstraint {
	return m.constraint
}

func (m *momentum) TypeString() string {
	return "sgd"
}

// WeightExponent returns the exponent of fan-in in the learning-rate multiplier of weights under
// momentum-style updates: -1/2 under ToOutputScale, and +1/2 under NoConstraint.
//
// The exponent is the reciprocal of the weight's forward fan-in scaling, which is +1/2 or -1/2
// depending on whether the backward pass of the readout was left uncorrected.
func WeightExponent(c us.ReadoutConstraint) (float64, error) {
	switch c {
	case us.ToOutputScale:
		return -0.5, nil
	case us.NoConstraint:
		return 0.5, nil
	}

	return 0, &us.ConstraintError{Constraint: c}
}

func (m *momentum) LRScale(p us.Param) (float64, error) {
	e, err := WeightExponent(m.constraint)
	if err != nil {
		return 0, &us.ConstraintError{Param: p, Constraint: m.constraint}
	}

	depth, err := us.DepthScale(p, m.law)
	if err != nil {
		return 0, err
	}

	switch p.Role() {
	case us.Bias, us.Norm:
		fanIn, err := p.FanIn()
		if err != nil {
			return 0, err
		}

		return depth * float64(fanIn), nil
	case us.Weight:
		fanIn, err := p.FanIn()
		if err != nil {
			return 0, err
		}

		return depth * math.Pow(float64(fanIn), e), nil
	case us.Output:
		if p.Readout() != m.constraint {
			return 0, &us.ConstraintError{Param: p, Constraint: p.Readout(), Want: m.constraint}
		} else if _, err := p.FanIn(); err != nil {
			return 0, err
		}

		return depth, nil
	}

	return 0, &us.RoleError{Param: p}
}
