package scalefuncs

import (
	"math"

	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
)

type adaptive struct {
	law us.DepthLaw

	effective, reference float64
}

// Adaptive returns the ScaleFunc for optimizers that normalize each element's update by a running
// estimate of its magnitude (Adam, AdamW, ...). Those updates are already independent of the
// gradient's width-dependent scale, so there is no fan-in term and no readout correction: every
// recognized role gets
//
//	depth_scale · sqrt(effective batch / reference batch)
//
// The batch term is 1 unless set with Batch.
func Adaptive() *adaptive {
	return &adaptive{effective: 1, reference: 1}
}

// Depth sets the DepthLaw used by the ScaleFunc. If never set (or set to nil), the default is used.
func (a *adaptive) Depth(law us.DepthLaw) *adaptive {
	a.law = law
	return a
}

// Batch sets the effective batch size of training, and the batch size that the base learning
// rate was tuned at. Batch will panic if either is less than 1.
func (a *adaptive) Batch(effective, reference int) *adaptive {
	if effective < 1 || reference < 1 {
		panic(errors.Errorf("Batch sizes must be at least 1 (have effective %d, reference %d)", effective, reference))
	}

	a.effective = float64(effective)
	a.reference = float64(reference)
	return a
}

func (a *adaptive) TypeString() string {
	return "adam"
}

func (a *adaptive) LRScale(p us.Param) (float64, error) {
	if !p.Role().Recognized() {
		return 0, &us.RoleError{Param: p}
	}

	// no fan-in term, but the shape must still make sense for the role
	if _, err := p.FanIn(); err != nil {
		return 0, err
	}

	depth, err := us.DepthScale(p, a.law)
	if err != nil {
		return 0, err
	}

	return depth * math.Sqrt(a.effective/a.reference), nil
}
