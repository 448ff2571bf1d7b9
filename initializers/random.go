package initializers

import (
	"math/rand"

	us "github.com/EIFY/unit-scaling"
)

type random struct {
	RNG
}

// Random returns an Initializer that uses the provided RNG to generate the values. There is no
// scaling beyond that of the RNG.
func Random(g RNG) random {
	return random{g}
}

// Unit returns the unit-scaling Initializer: every value is drawn from N(0, 1), whatever the shape
// of the parameter. If r is nil, the global source of math/rand is used.
func Unit(r *rand.Rand) random {
	return Random(Normal().Mean(0).SD(1).Source(r))
}

// Set is the implementation of Initializer
func (rn random) Set(p us.Param, ws []float64) error {
	if err := checkSize(p, ws); err != nil {
		return err
	}

	for i := 0; i < len(ws); i++ {
		ws[i] = rn.Gen()
	}

	return nil
}
