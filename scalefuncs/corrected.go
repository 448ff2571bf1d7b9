package scalefuncs

import (
	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
)

type corrected struct {
	us.ScaleFunc

	readout us.Param
	factor  float64
}

// Corrected adapts a momentum-style ScaleFunc built for ToOutputScale to a model whose readout
// runs with NoConstraint instead. The readout's backward multiplier then differs from its forward
// one, which scales the gradients behind it; Corrected multiplies the multiplier of every Weight
// and Output parameter by us.ReadoutCorrection(readout) to undo that. Bias and Norm multipliers
// don't depend on the readout constraint, and are left as fn gives them.
//
// The readout parameter itself is scaled by fn as though it used ToOutputScale. Corrected returns
// an error if fn was built for another constraint, or if readout is not a valid output parameter.
func Corrected(fn us.ScaleFunc, readout us.Param) (us.ScaleFunc, error) {
	if fn == nil {
		return nil, us.ErrNilScaleFunc
	}

	if c, ok := fn.(interface{ Constraint() us.ReadoutConstraint }); ok && c.Constraint() != us.ToOutputScale {
		return nil, errors.Errorf("Can't correct ScaleFunc %q built for readout constraint %q",
			fn.TypeString(), string(c.Constraint()))
	}

	factor, err := us.ReadoutCorrection(readout)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't correct ScaleFunc %q", fn.TypeString())
	}

	return &corrected{fn, readout, factor}, nil
}

func (c *corrected) TypeString() string {
	return c.ScaleFunc.TypeString() + "+readout-correction"
}

// Factor returns the correction applied to Weight and Output multipliers.
func (c *corrected) Factor() float64 {
	return c.factor
}

func (c *corrected) LRScale(p us.Param) (float64, error) {
	if p.Role() == us.Output && p.Readout() == c.readout.Readout() {
		p = p.WithReadout(us.ToOutputScale)
	}

	mult, err := c.ScaleFunc.LRScale(p)
	if err != nil {
		return 0, err
	}

	switch p.Role() {
	case us.Weight, us.Output:
		return mult * c.factor, nil
	default:
		return mult, nil
	}
}
