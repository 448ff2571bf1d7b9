package unitscaling

// ScaleFunc gives the learning-rate multiplier of a parameter under a particular optimizer
// family. Implementations can be found in the subpackage "scalefuncs".
type ScaleFunc interface {
	// LRScale returns the multiplier of the base learning rate for the given parameter. It should
	// return a *RoleError for roles it does not handle, and a *ConstraintError or *ShapeError
	// where those apply. It is called at most once per parameter, and never for parameters that
	// BuildGroups has let through unscaled.
	//
	// LRScale must be deterministic: the same Param must always give the same value.
	LRScale(Param) (float64, error)

	// TypeString returns the string corresponding to the type of the ScaleFunc. For example: the
	// momentum-style ScaleFunc returns "sgd".
	TypeString() string
}

// DepthLaw maps the depth index of a parameter to a multiplier that counteracts the variance
// accumulated by updates across a residual stack. Implementations can be found in the
// subpackage "depthlaws".
type DepthLaw interface {
	// Scale returns the multiplier for the given depth index, which will always be greater than
	// zero. (DepthScale handles depth 0 itself)
	Scale(int) float64

	// TypeString returns the string corresponding to the type of the DepthLaw.
	TypeString() string
}
