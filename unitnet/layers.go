package unitnet

import (
	"math"

	"gonum.org/v1/gonum/mat"

	us "github.com/EIFY/unit-scaling"
)

// layer is a single linear map y = forward · x·Wᵀ, whose backward pass may use multipliers other
// than the forward one.
type layer struct {
	param us.Param

	// shares its backing slice with the Store, so that optimizer updates are seen directly
	w *mat.Dense

	forward float64

	// multipliers of the gradients with respect to the input and the weight. For a layer with
	// true gradients, both equal forward.
	backIn, backW float64

	// from the last forward pass
	in, out *mat.Dense
}

// newLayer returns the layer for the parameter, with the given forward and backward multipliers.
func newLayer(p us.Param, values []float64, forward, backward float64) *layer {
	shape := p.Shape()

	return &layer{
		param:   p,
		w:       mat.NewDense(shape[0], shape[1], values),
		forward: forward,
		backIn:  backward,
		backW:   backward,
	}
}

// hidden returns the multipliers of a unit-scaled hidden layer: fan_in^-1/2 in both passes.
func hidden(p us.Param) (forward, backward float64, err error) {
	fanIn, err := p.FanIn()
	if err != nil {
		return 0, 0, err
	}

	scale := 1 / math.Sqrt(float64(fanIn))
	return scale, scale, nil
}

// evaluate computes y = forward · x·Wᵀ, keeping x and y for the backward pass.
func (l *layer) evaluate(x *mat.Dense) *mat.Dense {
	b, _ := x.Dims()
	out, _ := l.w.Dims()

	y := mat.NewDense(b, out, nil)
	y.Mul(x, l.w.T())
	y.Scale(l.forward, y)

	l.in, l.out = x, y
	return y
}

// backward takes the gradient with respect to the layer's output, and returns the gradients with
// respect to its input and its weight, each with their own multiplier.
func (l *layer) backward(g *mat.Dense) (gIn, gW *mat.Dense) {
	b, _ := g.Dims()
	out, in := l.w.Dims()

	gW = mat.NewDense(out, in, nil)
	gW.Mul(g.T(), l.in)
	gW.Scale(l.backW, gW)

	gIn = mat.NewDense(b, in, nil)
	gIn.Mul(g, l.w)
	gIn.Scale(l.backIn, gIn)

	return gIn, gW
}

func relu(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	y := mat.NewDense(r, c, nil)
	y.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v, 0)
	}, x)

	return y
}

// reluBackward masks the gradient g by where the pre-activation z was positive.
func reluBackward(g, z *mat.Dense) *mat.Dense {
	r, c := g.Dims()
	masked := mat.NewDense(r, c, nil)
	masked.Apply(func(i, j int, v float64) float64 {
		if z.At(i, j) > 0 {
			return v
		}

		return 0
	}, g)

	return masked
}
