package unitscaling

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrNilScaleFunc      = Error{"ScaleFunc is nil"}
	ErrRegisterNilReturn = Error{"Function return is nil"}
	ErrNameTaken         = Error{"Name is already registered"}
	ErrUnknownFamily     = Error{"Optimizer family is not registered"}
	ErrUnknownDepthLaw   = Error{"Depth law is not registered"}
	ErrNegativeDepth     = Error{"Depth index is negative"}
	ErrNoDefaultLaw      = Error{"No default depth law has been set"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// RoleError is returned when a parameter's role is not one that the engine (or the ScaleFunc in
// use) knows how to scale. Unless unrecognized parameters are explicitly allowed, this is always
// fatal: there is no multiplier that would be safe to assume.
type RoleError struct {
	Param Param
}

func (err *RoleError) Error() string {
	if err.Param.role == "" {
		return fmt.Sprintf("parameter %v has no role", err.Param)
	}

	return fmt.Sprintf("parameter %v has unrecognized role %q", err.Param, string(err.Param.role))
}

// ConstraintError is returned for a readout constraint outside of {none, to_output_scale}, or for
// an output parameter whose constraint disagrees with the one the learning-rate table was built
// for. In the second case, Want holds the constraint of the table.
type ConstraintError struct {
	Param      Param
	Constraint ReadoutConstraint
	Want       ReadoutConstraint
}

func (err *ConstraintError) Error() string {
	if err.Param.name == "" {
		return fmt.Sprintf("unknown readout constraint %q", string(err.Constraint))
	} else if err.Want != "" {
		return fmt.Sprintf("parameter %v uses readout constraint %q, but the scaling was built for %q",
			err.Param, string(err.Constraint), string(err.Want))
	}

	return fmt.Sprintf("parameter %v has unknown readout constraint %q", err.Param, string(err.Constraint))
}

// ShapeError is returned when a parameter's shape cannot provide what its role needs: a weight or
// output parameter with fewer than two dimensions has no (fan-in, fan-out) pair, and no dimension
// may be smaller than one.
type ShapeError struct {
	Param  Param
	Reason string
}

func (err *ShapeError) Error() string {
	return fmt.Sprintf("parameter %v has inconsistent shape: %s", err.Param, err.Reason)
}
