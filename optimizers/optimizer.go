// Package optimizers provides base optimizers that consume the parameter groups built by
// unitscaling. Every group carries its own learning rate and weight decay; the optimizers never
// look at roles or shapes.
package optimizers

import (
	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/hyperparams"
	"github.com/EIFY/unit-scaling/penalties"
)

// Store holds the values of every parameter, by name. Optimizers update the slices in place.
type Store map[string][]float64

// Optimizer applies gradients to the parameters in its Store.
type Optimizer interface {
	// Step applies one update, given the gradient of every parameter by name. A gradient must be
	// present for every parameter in the groups, and have the same length as its values.
	Step(map[string][]float64) error

	// TypeString returns the string corresponding to the type of the Optimizer. For example: the
	// Optimizer "AdamW" returns "adamw".
	TypeString() string
}

// base is shared by every Optimizer here: the groups, where their values are, and the schedule.
type base struct {
	groups []us.Group
	store  Store

	sched   hyperparams.HyperParameter
	penalty penalties.Penalty
	iter    int
}

func newBase(groups []us.Group, store Store) (base, error) {
	if store == nil {
		return base{}, errors.Errorf("Store is nil")
	}

	for i, g := range groups {
		for _, p := range g.Params() {
			vs, ok := store[p.Name()]
			if !ok {
				return base{}, errors.Errorf("Parameter %v of group #%d is not in the store", p, i)
			} else if len(vs) != p.Size() {
				return base{}, errors.Errorf("Parameter %v of group #%d has %d values in the store, expected %d",
					p, i, len(vs), p.Size())
			}
		}
	}

	return base{groups: groups, store: store}, nil
}

// factor returns the value of the schedule at the current iteration.
func (b *base) factor() float64 {
	if b.sched == nil {
		return 1
	}

	return b.sched.Value(b.iter)
}

// each calls f for every parameter, with its values, its gradient, and its group, in group order.
// If there is a penalty, f is given the penalized gradient instead; grads is never modified.
func (b *base) each(grads map[string][]float64, f func(name string, ws, gs []float64, g us.Group)) error {
	// check everything first, so that a failed Step changes nothing
	for _, g := range b.groups {
		for _, p := range g.Params() {
			gs, ok := grads[p.Name()]
			if !ok {
				return errors.Errorf("No gradient given for parameter %v", p)
			} else if len(gs) != p.Size() {
				return errors.Errorf("Gradient of parameter %v has length %d, expected %d", p, len(gs), p.Size())
			}
		}
	}

	for _, g := range b.groups {
		for _, p := range g.Params() {
			ws, gs := b.store[p.Name()], grads[p.Name()]
			if b.penalty != nil {
				penalized := make([]float64, len(gs))
				for i := range gs {
					penalized[i] = b.penalty.Penalize(ws[i], gs[i])
				}
				gs = penalized
			}

			f(p.Name(), ws, gs, g)
		}
	}

	b.iter++
	return nil
}
