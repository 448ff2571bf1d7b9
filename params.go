package unitscaling

import (
	"fmt"
	"strings"
)

// NewParam returns the descriptor of a trainable tensor with the given name, role, and shape, at
// depth 0. Output parameters default to NoConstraint; use WithReadout to change that.
//
// NewParam does not validate its arguments. That is done once, by BuildGroups (or explicitly
// with Validate), so that the error can name the offending parameter.
func NewParam(name string, role Role, shape ...int) Param {
	s := make([]int, len(shape))
	copy(s, shape)

	p := Param{name: name, role: role, shape: s}
	if role == Output {
		p.readout = NoConstraint
	}

	return p
}

// WeightParam is shorthand for NewParam(name, Weight, shape...)
func WeightParam(name string, shape ...int) Param {
	return NewParam(name, Weight, shape...)
}

// BiasParam is shorthand for NewParam(name, Bias, size)
func BiasParam(name string, size int) Param {
	return NewParam(name, Bias, size)
}

// NormParam is shorthand for NewParam(name, Norm, size)
func NormParam(name string, size int) Param {
	return NewParam(name, Norm, size)
}

// OutputParam returns the descriptor of a readout weight with the given readout constraint.
func OutputParam(name string, c ReadoutConstraint, shape ...int) Param {
	return NewParam(name, Output, shape...).WithReadout(c)
}

// AtDepth returns a copy of the Param, positioned at the given depth index.
func (p Param) AtDepth(depth int) Param {
	p.shape = p.Shape()
	p.depth = depth
	return p
}

// WithReadout returns a copy of the Param with the given readout constraint.
func (p Param) WithReadout(c ReadoutConstraint) Param {
	p.shape = p.Shape()
	p.readout = c
	return p
}

// Name returns the name of the Param, which is its identity within a set of parameters.
func (p Param) Name() string {
	return p.name
}

// Role returns the structural role of the Param. This may be "" (or an unknown value) for
// parameters that were never tagged.
func (p Param) Role() Role {
	return p.role
}

// Depth returns the depth index of the Param.
func (p Param) Depth() int {
	return p.depth
}

// Readout returns the readout constraint of the Param. It is "" for anything but Output
// parameters.
func (p Param) Readout() ReadoutConstraint {
	return p.readout
}

// Shape returns a copy of the dimensions of the Param.
func (p Param) Shape() []int {
	s := make([]int, len(p.shape))
	copy(s, p.shape)
	return s
}

// Size returns the total number of elements in the Param.
func (p Param) Size() int {
	return product(p.shape)
}

// FanIn returns the size of the dimensions contracted during the forward matrix product. For
// Weight and Output parameters, laid out as [out, in, ...], this is the product of every
// dimension but the first. For Bias and Norm parameters, which have no contraction, it is the
// number of elements.
//
// FanIn returns a *ShapeError if a Weight or Output parameter has fewer than two dimensions.
func (p Param) FanIn() (int, error) {
	if p.isMatrix() {
		if len(p.shape) < 2 {
			return 0, &ShapeError{p, fmt.Sprintf("role %q needs at least 2 dimensions", string(p.role))}
		}

		return product(p.shape[1:]), nil
	}

	return p.Size(), nil
}

// FanOut returns the first dimension of Weight and Output parameters, and the number of elements
// of any other. The same error conditions apply as for FanIn.
func (p Param) FanOut() (int, error) {
	if p.isMatrix() {
		if len(p.shape) < 2 {
			return 0, &ShapeError{p, fmt.Sprintf("role %q needs at least 2 dimensions", string(p.role))}
		}

		return p.shape[0], nil
	}

	return p.Size(), nil
}

func (p Param) isMatrix() bool {
	return p.role == Weight || p.role == Output
}

// Validate checks everything about the Param that can be checked without a ScaleFunc: that it has
// a name, that its dimensions are all positive (with at least two for Weight and Output roles),
// that its depth is not negative, and that an Output parameter has a known readout constraint.
//
// Validate does not check the role; see Role.Recognized.
func (p Param) Validate() error {
	if p.name == "" {
		return NilArgError{"Parameter name"}
	}

	for i, d := range p.shape {
		if d < 1 {
			return &ShapeError{p, fmt.Sprintf("dimension %d has size %d", i, d)}
		}
	}

	if _, err := p.FanIn(); err != nil {
		return err
	}

	if p.depth < 0 {
		return &ShapeError{p, ErrNegativeDepth.Error()}
	}

	if p.role == Output && !p.readout.Valid() {
		return &ConstraintError{Param: p, Constraint: p.readout}
	}

	return nil
}

// String returns the parameter in the form:
//	name<role [d0 d1 ...] depth=n>
// which is enough for a caller to find the layer that it belongs to.
func (p Param) String() string {
	dims := make([]string, len(p.shape))
	for i, d := range p.shape {
		dims[i] = fmt.Sprint(d)
	}

	role := string(p.role)
	if role == "" {
		role = "untagged"
	}

	str := fmt.Sprintf("%q<%s [%s] depth=%d", p.name, role, strings.Join(dims, " "), p.depth)
	if p.role == Output {
		str += " readout=" + string(p.readout)
	}

	return str + ">"
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}

	return n
}
