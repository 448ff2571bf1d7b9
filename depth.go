package unitscaling

var defaultDepthLaw DepthLaw

// SetDefaultDepthLaw sets the DepthLaw used by DepthScale when it is given nil. Importing the
// subpackage "depthlaws" sets it to depthlaws.InverseSqrt(). SetDefaultDepthLaw will panic with
// type NilArgError if given nil.
func SetDefaultDepthLaw(law DepthLaw) {
	if law == nil {
		panic(NilArgError{"DepthLaw"})
	}

	defaultDepthLaw = law
}

// DefaultDepthLaw returns the DepthLaw set by SetDefaultDepthLaw, or nil if there is none.
func DefaultDepthLaw() DepthLaw {
	return defaultDepthLaw
}

// DepthScale returns the depth multiplier of the parameter under the given law. Output
// parameters sit outside the residual stack and always return 1, as does depth 0, whatever the
// law. If law is nil, the default is used; ErrNoDefaultLaw is returned if none has been set.
func DepthScale(p Param, law DepthLaw) (float64, error) {
	if p.depth < 0 {
		return 0, &ShapeError{p, ErrNegativeDepth.Error()}
	}

	if p.role == Output || p.depth == 0 {
		return 1, nil
	}

	if law == nil {
		if law = defaultDepthLaw; law == nil {
			return 0, ErrNoDefaultLaw
		}
	}

	return law.Scale(p.depth), nil
}
