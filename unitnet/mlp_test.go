package unitnet

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	us "github.com/EIFY/unit-scaling"
	_ "github.com/EIFY/unit-scaling/depthlaws"
	"github.com/EIFY/unit-scaling/optimizers"
	"github.com/EIFY/unit-scaling/scalefuncs"
)

const (
	seed  = 42
	batch = 3
	lr    = 0.1
	steps = 3
)

var dims = []int{5, 7, 11}

func newNet(t *testing.T, c us.ReadoutConstraint, standard bool) *MLP {
	return newNetDims(t, dims, c, standard)
}

func newNetDims(t *testing.T, ds []int, c us.ReadoutConstraint, standard bool) *MLP {
	net, err := New(Args{
		Dims:     ds,
		Readout:  c,
		Source:   rand.New(rand.NewSource(seed)),
		Standard: standard,
	})
	if err != nil {
		t.Fatal(err)
	}

	return net
}

func data() (x, targets *mat.Dense) {
	r := rand.New(rand.NewSource(seed + 1))

	x = mat.NewDense(batch, dims[0], nil)
	targets = mat.NewDense(batch, dims[len(dims)-1], nil)

	for _, m := range []*mat.Dense{x, targets} {
		raw := m.RawMatrix().Data
		for i := range raw {
			raw[i] = r.NormFloat64()
		}
	}

	return x, targets
}

// train builds the groups for params with fn, and trains net with SGD.
func train(t *testing.T, net *MLP, params []us.Param, fn us.ScaleFunc) []float64 {
	groups, err := us.BuildGroups(params, us.GroupArgs{Scale: fn, LR: lr})
	if err != nil {
		t.Fatal(err)
	}

	opt, err := optimizers.SGD(groups, net.Store())
	if err != nil {
		t.Fatal(err)
	}

	x, targets := data()
	costs, err := net.Train(opt, x, targets, steps)
	if err != nil {
		t.Fatal(err)
	}

	return costs
}

func same(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}

	return true
}

// Runs the three scenarios of the readout constraint:
//   A: to_output_scale model, to_output_scale table
//   B: none model, to_output_scale table (the readout parameter described as to_output_scale)
//   C: none model, to_output_scale table with the readout correction
// B trains differently from A; C matches A.
func TestReadoutScenarios(t *testing.T) {
	tos := scalefuncs.Momentum(us.ToOutputScale)

	netA := newNet(t, us.ToOutputScale, false)
	lossA := train(t, netA, netA.Params(), tos)

	netB := newNet(t, us.NoConstraint, false)
	paramsB := netB.Params()
	paramsB[len(paramsB)-1] = paramsB[len(paramsB)-1].WithReadout(us.ToOutputScale)
	lossB := train(t, netB, paramsB, tos)

	netC := newNet(t, us.NoConstraint, false)
	fnC, err := scalefuncs.Corrected(tos, netC.Readout())
	if err != nil {
		t.Fatal(err)
	}
	lossC := train(t, netC, netC.Params(), fnC)

	t.Logf("A: %v", lossA)
	t.Logf("B: %v", lossB)
	t.Logf("C: %v", lossC)

	if lossA[0] != lossB[0] || lossA[0] != lossC[0] {
		t.Fatalf("Initial losses differ: %v, %v, %v", lossA[0], lossB[0], lossC[0])
	}

	if same(lossA[1:], lossB[1:], 1e-12) {
		t.Errorf("Expected B to diverge from A, got %v for both", lossA)
	}

	if !same(lossA, lossC, 1e-9) {
		t.Errorf("Expected C to match A:\n%v\n%v", lossA, lossC)
	}

	for i := 1; i < steps; i++ {
		if !(lossA[i] < lossA[0]) {
			t.Errorf("Loss did not decrease: %v", lossA)
			break
		}
	}
}

// Adaptive updates don't depend on the scale of the gradient, so the readout constraint makes no
// difference to them.
func TestReadoutAdaptive(t *testing.T) {
	run := func(c us.ReadoutConstraint) []float64 {
		net := newNet(t, c, false)

		groups, err := us.BuildGroups(net.Params(), us.GroupArgs{Scale: scalefuncs.Adaptive(), LR: 0.01})
		if err != nil {
			t.Fatal(err)
		}

		opt, err := optimizers.AdamW(groups, net.Store())
		if err != nil {
			t.Fatal(err)
		}

		x, targets := data()
		costs, err := net.Train(opt, x, targets, steps)
		if err != nil {
			t.Fatal(err)
		}

		return costs
	}

	a, b := run(us.ToOutputScale), run(us.NoConstraint)
	if !same(a, b, 1e-6) {
		t.Errorf("Expected the same losses:\n%v\n%v", a, b)
	}
}

// The standard parametrization, with learning rates shifted to match, trains the same as the
// unit-scaled network, at every width.
func TestStandardEquivalence(t *testing.T) {
	for _, width := range []int{7, 70, 700} {
		ds := []int{dims[0], width, width, dims[len(dims)-1]}

		for _, c := range []us.ReadoutConstraint{us.ToOutputScale, us.NoConstraint} {
			fn, err := us.NewScaleFunc("sgd", c, nil)
			if err != nil {
				t.Fatal(err)
			}

			unit := newNetDims(t, ds, c, false)
			std := newNetDims(t, ds, c, true)

			lossUnit := train(t, unit, unit.Params(), unit.Rescaled(fn))
			lossStd := train(t, std, std.Params(), std.Rescaled(fn))

			if !same(lossUnit, lossStd, 1e-9) {
				t.Errorf("width %d, %s: expected the same losses:\n%v\n%v", width, c, lossUnit, lossStd)
			}
		}
	}
}

// outputChange returns the RMS change in the outputs on the training batch after a single SGD step
// with the multipliers given by fn.
func outputChange(t *testing.T, net *MLP, fn us.ScaleFunc) float64 {
	groups, err := us.BuildGroups(net.Params(), us.GroupArgs{Scale: fn, LR: lr})
	if err != nil {
		t.Fatal(err)
	}

	opt, err := optimizers.SGD(groups, net.Store())
	if err != nil {
		t.Fatal(err)
	}

	x, targets := data()
	before, err := net.Forward(x)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = net.Step(opt, x, targets); err != nil {
		t.Fatal(err)
	}

	after, err := net.Forward(x)
	if err != nil {
		t.Fatal(err)
	}

	var diff mat.Dense
	diff.Sub(after, before)

	raw := diff.RawMatrix().Data
	return floats.Norm(raw, 2) / math.Sqrt(float64(len(raw)))
}

// With the table's multipliers, the first update moves the outputs by the same amount whatever the
// hidden width. The same learning rates applied to the standard parametrization, without shifting
// them, move the outputs more the wider the network is.
func TestWidthInvariance(t *testing.T) {
	widths := []int{64, 256, 1024}
	fn := scalefuncs.Momentum(us.ToOutputScale)

	var unit, naive []float64
	for _, width := range widths {
		ds := []int{dims[0], width, width, dims[len(dims)-1]}

		unit = append(unit, outputChange(t, newNetDims(t, ds, us.ToOutputScale, false), fn))
		naive = append(naive, outputChange(t, newNetDims(t, ds, us.ToOutputScale, true), fn))
	}

	t.Logf("unit:  %v", unit)
	t.Logf("naive: %v", naive)

	lo, hi := unit[0], unit[0]
	for _, v := range unit {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	if !(lo > 0) || hi/lo > 2 {
		t.Errorf("Expected output changes of the same size across widths %v, got %v", widths, unit)
	}

	if ratio := naive[len(naive)-1] / naive[0]; !(ratio > 4) {
		t.Errorf("Expected unshifted standard rates to grow with width, got %v (ratio %v)", naive, ratio)
	}
}

// With to_output_scale, every backward multiplier equals the forward one, so Backward gives the
// true gradient of the loss.
func TestBackwardGradient(t *testing.T) {
	net := newNet(t, us.ToOutputScale, false)
	x, targets := data()

	out, err := net.Forward(x)
	if err != nil {
		t.Fatal(err)
	}

	d, err := net.cost.Deriv(out, targets)
	if err != nil {
		t.Fatal(err)
	}

	grads := net.Backward(d)

	const h = 1e-6
	for name, ws := range net.Store() {
		for i := range ws {
			v := ws[i]

			ws[i] = v + h
			up, _ := net.Loss(x, targets)
			ws[i] = v - h
			down, _ := net.Loss(x, targets)
			ws[i] = v

			if fd := (up - down) / (2 * h); math.Abs(fd-grads[name][i]) > 1e-6 {
				t.Errorf("%s[%d]: expected %v, got %v", name, i, fd, grads[name][i])
			}
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Args{Dims: []int{5}, Readout: us.ToOutputScale}); err == nil {
		t.Error("Expected an error for a single dimension")
	}

	if _, err := New(Args{Dims: dims}); err == nil {
		t.Error("Expected an error for a missing readout constraint")
	}

	net := newNet(t, us.NoConstraint, false)
	if _, err := net.Forward(mat.NewDense(batch, dims[0]+1, nil)); err == nil {
		t.Error("Expected an error for inputs of the wrong width")
	}

	if _, err := net.Rescaled(scalefuncs.Adaptive()).LRScale(us.WeightParam("other", 3, 3)); err == nil {
		t.Error("Expected an error for a parameter outside of the MLP")
	}
}

func TestParams(t *testing.T) {
	net := newNet(t, us.NoConstraint, false)

	ps := net.Params()
	if len(ps) != len(dims)-1 {
		t.Fatalf("Expected %d params, got %d", len(dims)-1, len(ps))
	}

	if ps[0].Name() != "layers.0.weight" || ps[0].Role() != us.Weight {
		t.Errorf("Unexpected first param %v", ps[0])
	}

	if r := net.Readout(); r.Name() != "readout.weight" || r.Role() != us.Output || r.Readout() != us.NoConstraint {
		t.Errorf("Unexpected readout %v", r)
	}

	for _, p := range ps {
		if len(net.Store()[p.Name()]) != p.Size() {
			t.Errorf("%v: store has %d values", p, len(net.Store()[p.Name()]))
		}
	}
}
