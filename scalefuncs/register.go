// Package scalefuncs provides the learning-rate multipliers of the two optimizer families that
// unitscaling supports: momentum-style (SGD) and adaptive (Adam). Importing it registers them under
// the families "sgd" / "momentum" and "adam" / "adamw" / "adaptive".
package scalefuncs

import (
	us "github.com/EIFY/unit-scaling"
)

func init() {
	sgd := func(c us.ReadoutConstraint, law us.DepthLaw) (us.ScaleFunc, error) {
		if !c.Valid() {
			return nil, &us.ConstraintError{Constraint: c}
		}

		return Momentum(c).Depth(law), nil
	}

	adam := func(c us.ReadoutConstraint, law us.DepthLaw) (us.ScaleFunc, error) {
		return Adaptive().Depth(law), nil
	}

	list := map[string]us.ScaleFuncCtor{
		"sgd":      sgd,
		"momentum": sgd,
		"adam":     adam,
		"adamw":    adam,
		"adaptive": adam,
	}

	for s, f := range list {
		if err := us.RegisterScaleFunc(s, f); err != nil {
			panic(err.Error())
		}
	}
}
