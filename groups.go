package unitscaling

import (
	"log"
	"math"

	"github.com/pkg/errors"
)

// GroupArgs are the arguments to BuildGroups.
type GroupArgs struct {
	// Scale gives the learning-rate multiplier of each parameter. It must be chosen to match the
	// family of the base optimizer. Required.
	Scale ScaleFunc

	// LR and WeightDecay are the base learning rate and weight decay, which the multipliers are
	// relative to. Choosing them is left to the caller. Both must be finite and not negative.
	LR          float64
	WeightDecay float64

	// Decay is the weight-decay coupling policy. The zero value is Independent.
	Decay DecayPolicy

	// AllowUnrecognized lets parameters without a recognized role through, unscaled (with a
	// multiplier of 1), instead of failing.
	AllowUnrecognized bool

	// Log, if not nil, is given a line for every parameter that was let through unscaled.
	Log *log.Logger
}

// BuildGroups partitions the parameters into one Group per parameter, in the order given, with
// the learning rate and weight decay that the arguments resolve to.
//
// BuildGroups fails on the first problem it finds, and returns no Groups with it. The cause of the
// error (given by errors.Cause) will be one of: *RoleError, *ConstraintError, *ShapeError,
// NilArgError, or one of the global errors of this package. Nothing is mutated either way;
// calling BuildGroups twice with the same arguments gives identical results.
func BuildGroups(params []Param, args GroupArgs) ([]Group, error) {
	if args.Scale == nil {
		return nil, ErrNilScaleFunc
	} else if !finiteNonNegative(args.LR) {
		return nil, errors.Errorf("Base learning rate is invalid (%v)", args.LR)
	} else if !finiteNonNegative(args.WeightDecay) {
		return nil, errors.Errorf("Base weight decay is invalid (%v)", args.WeightDecay)
	}

	// check the policy once, rather than reporting it against the first parameter
	if _, err := args.Decay.Resolve(0, 1); err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(params))
	groups := make([]Group, len(params))

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "Can't build groups, parameter #%d is invalid", i)
		}

		if j, ok := seen[p.name]; ok {
			return nil, errors.Errorf("Can't build groups, parameter #%d (%v) has the same name as #%d", i, p, j)
		}
		seen[p.name] = i

		mult, err := multiplier(p, args)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build groups, scaling parameter #%d failed", i)
		}

		wd, _ := args.Decay.Resolve(args.WeightDecay, mult)

		groups[i] = Group{
			params:      []Param{p},
			mult:        mult,
			lr:          args.LR * mult,
			weightDecay: wd,
		}
	}

	return groups, nil
}

func multiplier(p Param, args GroupArgs) (float64, error) {
	if !p.role.Recognized() {
		if !args.AllowUnrecognized {
			return 0, &RoleError{p}
		}

		if args.Log != nil {
			args.Log.Printf("parameter %v has no recognized role, leaving it unscaled", p)
		}

		return 1, nil
	}

	mult, err := args.Scale.LRScale(p)
	if err != nil {
		return 0, err
	} else if !(mult > 0) || math.IsInf(mult, 0) {
		return 0, errors.Errorf("ScaleFunc %q gave invalid multiplier %v for parameter %v",
			args.Scale.TypeString(), mult, p)
	}

	return mult, nil
}

// Batch merges Groups that have exactly the same multiplier, learning rate, and weight decay,
// keeping the order in which each first appears. The values of every parameter are unchanged by
// this; only the number of Groups is reduced.
func Batch(groups []Group) []Group {
	type key struct{ mult, lr, wd float64 }

	index := make(map[key]int)
	var batched []Group

	for _, g := range groups {
		k := key{g.mult, g.lr, g.weightDecay}

		i, ok := index[k]
		if !ok {
			index[k] = len(batched)
			batched = append(batched, Group{mult: g.mult, lr: g.lr, weightDecay: g.weightDecay})
			i = len(batched) - 1
		}

		batched[i].params = append(batched[i].params, g.params...)
	}

	return batched
}

// Lookup returns the Group containing the parameter with the given name, and whether or not it was
// found.
func Lookup(groups []Group, name string) (Group, bool) {
	for _, g := range groups {
		for _, p := range g.params {
			if p.name == name {
				return g, true
			}
		}
	}

	return Group{}, false
}

func finiteNonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0)
}
