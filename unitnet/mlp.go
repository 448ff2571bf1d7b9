// Package unitnet is a small unit-scaled multi-layer perceptron, built on gonum. It stands in for
// the tensor-operation layer that unitscaling is used with: it chooses the forward and backward
// multipliers of every layer, and describes its weights with descriptors that agree with those
// choices.
//
// It exists to check, by actually training, that the learning rates built by unitscaling have the
// effect they are meant to.
package unitnet

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/costfuncs"
	"github.com/EIFY/unit-scaling/initializers"
	"github.com/EIFY/unit-scaling/optimizers"
)

// Args are the arguments to New.
type Args struct {
	// Dims are the widths of every layer, input first and output last. There must be at least
	// two.
	Dims []int

	// Readout is the constraint used by the output layer. Required.
	Readout us.ReadoutConstraint

	// Source is the random source of the default initialization. If nil, the global source of
	// math/rand is used.
	Source *rand.Rand

	// Init sets the initial values of every weight. If nil, initializers.Unit(Source) is used, or
	// initializers.LeCun() for a network built with Standard.
	Init initializers.Initializer

	// Cost is the cost function used by Step. If nil, costfuncs.MSE() is used.
	Cost costfuncs.CostFunction

	// Standard builds the network in the standard parametrization instead: every forward
	// multiplier is moved to 1, with the initial values and the learning rates shifted to match
	// (see us.ABC), which gives the same training dynamics as the unit-scaled network.
	Standard bool
}

// MLP is a stack of linear layers with ReLU in between, and no biases. Every layer is unit-scaled,
// with a forward multiplier of fan_in^-1/2. The output layer's backward multiplier is given by
// us.ReadoutScales, and scales both its input and its weight gradients.
type MLP struct {
	layers []*layer
	store  optimizers.Store
	cost   costfuncs.CostFunction

	// the learning-rate ratio of each parameter relative to the unit-scaled network, by name
	lrRatio map[string]float64
}

// New constructs an MLP, and initializes its weights.
func New(args Args) (*MLP, error) {
	if len(args.Dims) < 2 {
		return nil, errors.Errorf("Can't make MLP, need at least 2 dimensions (have %v)", args.Dims)
	} else if !args.Readout.Valid() {
		return nil, errors.Wrap(&us.ConstraintError{Constraint: args.Readout}, "Can't make MLP")
	}

	initializer := args.Init
	if initializer == nil && args.Standard {
		initializer = initializers.LeCun().Source(args.Source)
	} else if initializer == nil {
		initializer = initializers.Unit(args.Source)
	}

	net := &MLP{
		store:   make(optimizers.Store),
		cost:    args.Cost,
		lrRatio: make(map[string]float64),
	}
	if net.cost == nil {
		net.cost = costfuncs.MSE()
	}

	last := len(args.Dims) - 2
	for i := 0; i <= last; i++ {
		in, out := args.Dims[i], args.Dims[i+1]

		var p us.Param
		var fwd, bwd float64
		var err error

		if i == last {
			p = us.OutputParam("readout.weight", args.Readout, out, in)
			fwd, bwd, err = us.ReadoutScales(p)
		} else {
			p = us.WeightParam(fmt.Sprintf("layers.%d.weight", i), out, in)
			fwd, bwd, err = hidden(p)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "Can't make layer %d of MLP", i)
		}

		values := make([]float64, p.Size())
		if err = initializer.Set(p, values); err != nil {
			return nil, errors.Wrapf(err, "Can't initialize layer %d of MLP", i)
		}

		ratio := 1.0
		if args.Standard {
			abc := us.ABC{Forward: fwd, Init: 1, LR: 1}.Moved(1)
			θ := abc.Forward / fwd

			fwd, bwd = abc.Forward, bwd*θ
			ratio = abc.LR
		}

		net.store[p.Name()] = values
		net.lrRatio[p.Name()] = ratio
		net.layers = append(net.layers, newLayer(p, values, fwd, bwd))
	}

	return net, nil
}

// Params returns the descriptors of every weight in the MLP, in order from input to output.
func (net *MLP) Params() []us.Param {
	ps := make([]us.Param, len(net.layers))
	for i, l := range net.layers {
		ps[i] = l.param
	}

	return ps
}

// Readout returns the descriptor of the output layer's weight.
func (net *MLP) Readout() us.Param {
	return net.layers[len(net.layers)-1].param
}

// Store returns the values of every weight, by name. The slices are the ones used by the MLP, and
// can be given directly to an Optimizer.
func (net *MLP) Store() optimizers.Store {
	return net.store
}

// Forward returns the outputs of the MLP for a batch of inputs, given as batch × input.
func (net *MLP) Forward(x *mat.Dense) (*mat.Dense, error) {
	if _, c := x.Dims(); c != net.layers[0].param.Shape()[1] {
		return nil, errors.Errorf("Inputs have %d columns, MLP expects %d", c, net.layers[0].param.Shape()[1])
	}

	h := x
	for i, l := range net.layers {
		h = l.evaluate(h)
		if i != len(net.layers)-1 {
			h = relu(h)
		}
	}

	return h, nil
}

// Backward returns the gradient of every weight by name, given the gradient with respect to the
// outputs of the last call to Forward.
func (net *MLP) Backward(d *mat.Dense) map[string][]float64 {
	grads := make(map[string][]float64, len(net.layers))

	g := d
	for i := len(net.layers) - 1; i >= 0; i-- {
		l := net.layers[i]
		if i != len(net.layers)-1 {
			g = reluBackward(g, l.out)
		}

		gIn, gW := l.backward(g)
		grads[l.param.Name()] = gW.RawMatrix().Data
		g = gIn
	}

	return grads
}

// Loss returns the cost of the MLP's outputs for x against the targets, without training.
func (net *MLP) Loss(x, targets *mat.Dense) (float64, error) {
	out, err := net.Forward(x)
	if err != nil {
		return 0, err
	}

	return net.cost.Cost(out, targets)
}

// Step runs a single training step on the batch, and returns the cost from before the update.
func (net *MLP) Step(opt optimizers.Optimizer, x, targets *mat.Dense) (float64, error) {
	out, err := net.Forward(x)
	if err != nil {
		return 0, err
	}

	cost, err := net.cost.Cost(out, targets)
	if err != nil {
		return 0, errors.Wrap(err, "Can't calculate cost")
	}

	d, err := net.cost.Deriv(out, targets)
	if err != nil {
		return 0, errors.Wrap(err, "Can't calculate derivative of cost")
	}

	if err = opt.Step(net.Backward(d)); err != nil {
		return 0, errors.Wrapf(err, "Optimizer %q failed", opt.TypeString())
	}

	return cost, nil
}

// Train runs the given number of steps on the same batch, and returns the cost at every step.
func (net *MLP) Train(opt optimizers.Optimizer, x, targets *mat.Dense, steps int) ([]float64, error) {
	costs := make([]float64, steps)
	for i := range costs {
		c, err := net.Step(opt, x, targets)
		if err != nil {
			return costs[:i], errors.Wrapf(err, "Training failed at step %d", i)
		}

		costs[i] = c
	}

	return costs, nil
}

// Rescaled returns a ScaleFunc that gives fn's multiplier, shifted by the parametrization of the
// MLP: unchanged for a unit-scaled MLP, and by fan_in^-1 for one built with Args.Standard.
func (net *MLP) Rescaled(fn us.ScaleFunc) us.ScaleFunc {
	return rescaled{fn, net.lrRatio}
}

type rescaled struct {
	us.ScaleFunc
	ratio map[string]float64
}

func (r rescaled) LRScale(p us.Param) (float64, error) {
	mult, err := r.ScaleFunc.LRScale(p)
	if err != nil {
		return 0, err
	}

	ratio, ok := r.ratio[p.Name()]
	if !ok {
		return 0, errors.Errorf("Parameter %v does not belong to the MLP", p)
	}

	return mult * ratio, nil
}
