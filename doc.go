// Package unitscaling computes per-parameter learning-rate and weight-decay multipliers for models
// that are initialized and forward-scaled to unit variance, so that one choice of base
// hyperparameters trains models of any width (hidden size) or depth (number of layers) the same
// way.
//
// Describing Parameters
//
// Every trainable tensor is described by a Param, which carries its name, role, shape, and depth:
//
//		w := us.WeightParam("layers.0.ffn.w1", 4*d, d).AtDepth(0)
//		b := us.BiasParam("layers.0.ffn.b1", 4*d).AtDepth(0)
//		out := us.OutputParam("head", us.ToOutputScale, vocab, d)
//
// For brevity, unitscaling is abbreviated 'us'.
//
// Params are values, built once alongside the tensors they describe. Fan-in and fan-out are never
// given; they are derived from the shape, which uses the PyTorch layout [out, in, ...].
//
// Scaling
//
// The multiplier for each parameter comes from a ScaleFunc, which must match the family of the
// optimizer that will consume the groups. Both families can be found in the subpackage
// "scalefuncs":
//
//		fn := scalefuncs.Momentum(us.ToOutputScale) // for SGD
//		fn := scalefuncs.Adaptive()                  // for Adam(W)
//
// The readout constraint is an explicit choice for the whole model: it changes the multiplier of
// every weight, not just the output layer. See ReadoutConstraint.
//
// Depth multipliers are given by a DepthLaw. The default, set by importing "depthlaws", is
// (1+depth)^-1/2.
//
// Building Groups
//
// Groups are built with:
//
//		groups, err := us.BuildGroups(params, us.GroupArgs{
//			Scale:       fn,
//			LR:          0.1,
//			WeightDecay: 1e-4,
//		})
//
// There is one Group per parameter. Batch can merge Groups that ended up with identical values.
// BuildGroups fails fast on any parameter it can't scale; see its documentation for the errors it
// may return.
//
// Configuration
//
// A Config describes the same inputs on file, as JSON. The command "scaletable" prints the table
// that a Config produces.
package unitscaling
