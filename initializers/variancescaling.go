package initializers

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
)

type lecun struct {
	r *rand.Rand
}

// LeCun returns the initializer of the standard parametrization: a normal distribution with
// variance 1/fan_in. It is the unit initialization moved by the abc-symmetry to a forward
// multiplier of 1.
func LeCun() *lecun {
	return &lecun{}
}

// Source sets the random source of the Initializer.
func (l *lecun) Source(r *rand.Rand) *lecun {
	l.r = r
	return l
}

// SD returns the standard deviation that the Initializer would use for the parameter.
func (l *lecun) SD(p us.Param) (float64, error) {
	fanIn, err := p.FanIn()
	if err != nil {
		return 0, err
	}

	return 1 / math.Sqrt(float64(fanIn)), nil
}

// Set is the implementation of Initializer
func (l *lecun) Set(p us.Param, ws []float64) error {
	if err := checkSize(p, ws); err != nil {
		return err
	}

	sd, err := l.SD(p)
	if err != nil {
		return errors.Wrapf(err, "Can't initialize %v", p)
	}

	return Random(Normal().SD(sd).Source(l.r)).Set(p, ws)
}
