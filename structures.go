package unitscaling

// Role is the structural category of a trainable tensor, which determines the scaling rule that
// applies to it. The zero value, "", is the absence of a role tag.
type Role string

const (
	Weight Role = "weight"
	Bias   Role = "bias"
	Norm   Role = "norm"
	Output Role = "output"
)

// Recognized returns whether or not the Role is one of Weight, Bias, Norm, or Output.
func (r Role) Recognized() bool {
	switch r {
	case Weight, Bias, Norm, Output:
		return true
	}

	return false
}

// ReadoutConstraint selects how the output layer reconciles its forward and backward scales.
//
// With NoConstraint, the backward pass of the readout uses the backward-ideal multiplier, which
// keeps the gradients flowing into the rest of the network unit-scaled but differs from the
// forward multiplier. With ToOutputScale, the backward multiplier is constrained to equal the
// forward one.
type ReadoutConstraint string

const (
	NoConstraint  ReadoutConstraint = "none"
	ToOutputScale ReadoutConstraint = "to_output_scale"
)

// Valid returns whether or not the ReadoutConstraint is NoConstraint or ToOutputScale.
func (c ReadoutConstraint) Valid() bool {
	return c == NoConstraint || c == ToOutputScale
}

// Param describes a single trainable tensor: what it is called, what role it plays, its shape,
// and where it sits in the network's residual stack. Params are values; every method that
// "changes" one returns a modified copy.
//
// Params are constructed with NewParam, or one of the shorthands WeightParam, BiasParam,
// NormParam, and OutputParam.
type Param struct {
	// unique within the set of parameters given to BuildGroups. Used as the parameter's identity.
	name string

	role Role

	// the dimensions of the tensor, with the PyTorch layout [out, in, ...] for weights. Fan-in and
	// fan-out are only ever derived from this.
	shape []int

	// position of the owning layer in the residual / sequential stack
	depth int

	// only meaningful for the Output role
	readout ReadoutConstraint
}

// Group is a set of parameters that share a learning rate and a weight decay. Groups are built
// by BuildGroups and are not changed afterwards.
type Group struct {
	params []Param

	// the multiplier given by the ScaleFunc, kept for reporting
	mult float64

	lr          float64
	weightDecay float64
}

// Params returns a copy of the parameters that belong to the Group.
func (g Group) Params() []Param {
	ps := make([]Param, len(g.params))
	copy(ps, g.params)
	return ps
}

// Len returns the number of parameters in the Group.
func (g Group) Len() int {
	return len(g.params)
}

// LR returns the learning rate of the Group: the base learning rate times the multiplier.
func (g Group) LR() float64 {
	return g.lr
}

// WeightDecay returns the decoupled per-step decay fraction of the Group, resolved by the
// DecayPolicy given to BuildGroups.
func (g Group) WeightDecay() float64 {
	return g.weightDecay
}

// Multiplier returns the learning-rate multiplier that the ScaleFunc produced for the Group.
func (g Group) Multiplier() float64 {
	return g.mult
}
