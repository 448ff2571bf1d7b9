package unitscaling

import (
	"github.com/pkg/errors"
)

// DecayPolicy decides how the weight decay of a parameter relates to its learning-rate
// multiplier.
//
// The weight decay of a Group is a decoupled, per-step fraction: the base optimizer applies
// θ ← θ - wd·θ on its own, outside of the learning rate.
type DecayPolicy string

const (
	// Independent applies the nominal weight decay to every parameter, whatever its learning
	// rate. The ratio of decay to parameter norm is then the same at every width.
	Independent DecayPolicy = "independent"

	// Coupled multiplies the weight decay by the same factor as the learning rate, so that it
	// decays in proportion to the effective step size.
	Coupled DecayPolicy = "coupled"
)

// Resolve returns the weight decay for a parameter with the given learning-rate multiplier. The
// zero value of DecayPolicy is treated as Independent.
func (d DecayPolicy) Resolve(base, mult float64) (float64, error) {
	switch d {
	case Independent, "":
		return base, nil
	case Coupled:
		return base * mult, nil
	}

	return 0, errors.Errorf("Unknown weight decay policy %q", string(d))
}
