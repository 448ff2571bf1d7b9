package hyperparams

import (
	"strconv"

	"github.com/pkg/errors"
)

type constant float64

// Constant returns a HyperParameter with the same value at every iteration. Constant(1) leaves the
// learning rates of the parameter groups as they were built.
func Constant(value float64) *constant {
	c := constant(value)
	return &c
}

func (c constant) TypeString() string {
	return "constant"
}

func (c *constant) Value(iter int) float64 {
	return float64(*c)
}

func (c *constant) String() string {
	return c.TypeString() + ":" + strconv.FormatFloat(float64(*c), 'g', -1, 64)
}

func parseConstant(args string) (HyperParameter, error) {
	v, err := strconv.ParseFloat(args, 64)
	if err != nil {
		return nil, errors.Wrap(err, "Bad value")
	}

	return Constant(v), nil
}
