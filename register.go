package unitscaling

import (
	"sort"

	"github.com/pkg/errors"
)

// ScaleFuncCtor constructs the ScaleFunc of an optimizer family for a model with the given readout
// constraint and depth law. Families that ignore either may do so.
type ScaleFuncCtor func(ReadoutConstraint, DepthLaw) (ScaleFunc, error)

// DepthLawCtor constructs a DepthLaw, given the exponent from the configuration. Laws that have no
// exponent ignore it.
type DepthLawCtor func(exponent float64) DepthLaw

var (
	scaleFuncs = make(map[string]ScaleFuncCtor)
	depthLaws  = make(map[string]DepthLawCtor)
)

// RegisterScaleFunc makes the constructor available through NewScaleFunc under the given optimizer
// family name. It returns ErrNameTaken if the name is already registered, and type NilArgError if
// the constructor is nil.
func RegisterScaleFunc(family string, ctor ScaleFuncCtor) error {
	if ctor == nil {
		return NilArgError{"ScaleFunc constructor"}
	} else if _, ok := scaleFuncs[family]; ok {
		return errors.Wrapf(ErrNameTaken, "Can't register ScaleFunc %q", family)
	}

	scaleFuncs[family] = ctor
	return nil
}

// RegisterDepthLaw makes the constructor available through NewDepthLaw under the given name. The
// error conditions are the same as for RegisterScaleFunc.
func RegisterDepthLaw(name string, ctor DepthLawCtor) error {
	if ctor == nil {
		return NilArgError{"DepthLaw constructor"}
	} else if _, ok := depthLaws[name]; ok {
		return errors.Wrapf(ErrNameTaken, "Can't register DepthLaw %q", name)
	}

	depthLaws[name] = ctor
	return nil
}

// NewScaleFunc constructs the ScaleFunc registered under the given optimizer family. The
// subpackage "scalefuncs" must have been imported for any family to be available.
func NewScaleFunc(family string, c ReadoutConstraint, law DepthLaw) (ScaleFunc, error) {
	ctor, ok := scaleFuncs[family]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFamily, "Can't make ScaleFunc %q (have %v)", family, keys(scaleFuncs))
	}

	fn, err := ctor(c, law)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't make ScaleFunc %q", family)
	} else if fn == nil {
		return nil, errors.Wrapf(ErrRegisterNilReturn, "Can't make ScaleFunc %q", family)
	}

	return fn, nil
}

// NewDepthLaw constructs the DepthLaw registered under the given name.
func NewDepthLaw(name string, exponent float64) (DepthLaw, error) {
	ctor, ok := depthLaws[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDepthLaw, "Can't make DepthLaw %q (have %v)", name, keys(depthLaws))
	}

	law := ctor(exponent)
	if law == nil {
		return nil, errors.Wrapf(ErrRegisterNilReturn, "Can't make DepthLaw %q", name)
	}

	return law, nil
}

func keys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}

	sort.Strings(ks)
	return ks
}
