// Package hyperparams provides schedules for the base learning rate. The value of a HyperParameter
// at an iteration is a factor applied to the learning rate of every parameter group, so that the
// ratios set up by unitscaling are kept throughout training.
package hyperparams

import (
	"strings"

	"github.com/pkg/errors"
)

// HyperParameter is a value that may change over the course of training.
type HyperParameter interface {
	// Value returns the value at the given iteration, starting from 0.
	Value(int) float64

	// TypeString returns the string corresponding to the type of the HyperParameter, which
	// prefixes its form given to Parse.
	TypeString() string

	// String returns the form of the HyperParameter that Parse accepts.
	String() string
}

var registered = map[string]func(string) (HyperParameter, error){
	"constant": parseConstant,
	"step":     parseStep,
}

// Parse returns the HyperParameter described by s, which is its TypeString and its arguments,
// separated by a colon. For example:
//
//	constant:0.5
//	step:1,100=0.1,200=0.01
//
// The empty string is Constant(1).
func Parse(s string) (HyperParameter, error) {
	if s == "" {
		return Constant(1), nil
	}

	typ, args, _ := strings.Cut(s, ":")

	f, ok := registered[typ]
	if !ok {
		return nil, errors.Errorf("HyperParameter type %q is not registered", typ)
	}

	hp, err := f(args)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse HyperParameter %q", s)
	}

	return hp, nil
}
