// Package initializers provides the initial values of parameters: the unit-variance initialization
// that unit scaling relies on, and the fan-in based initialization of the standard
// parametrization. Every Initializer draws from an RNG, which can be given its own seeded source
// for reproducibility.
package initializers

import (
	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
)

// Initializer sets the initial values of a parameter, given its descriptor.
type Initializer interface {
	Set(us.Param, []float64) error
}

func checkSize(p us.Param, ws []float64) error {
	if len(ws) != p.Size() {
		return errors.Errorf("Can't initialize %v: given %d values, expected %d", p, len(ws), p.Size())
	}

	return nil
}
