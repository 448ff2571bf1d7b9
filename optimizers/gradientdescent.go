package optimizers

import (
	"gonum.org/v1/gonum/floats"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/hyperparams"
	"github.com/EIFY/unit-scaling/penalties"
)

type gradientdescent struct {
	base

	momentum float64
	velocity map[string][]float64
}

// SGD returns stochastic gradient descent over the given groups, without momentum. Every parameter
// of the groups must be in the store, with as many values as its shape has elements.
func SGD(groups []us.Group, store Store) (*gradientdescent, error) {
	b, err := newBase(groups, store)
	if err != nil {
		return nil, err
	}

	return &gradientdescent{base: b, velocity: make(map[string][]float64)}, nil
}

// Momentum sets the momentum factor μ, so that v ← μ·v + grad and θ ← θ - lr·v.
func (g *gradientdescent) Momentum(μ float64) *gradientdescent {
	g.momentum = μ
	return g
}

// Schedule sets the factor applied to every group's learning rate at each step.
func (g *gradientdescent) Schedule(hp hyperparams.HyperParameter) *gradientdescent {
	g.sched = hp
	return g
}

// Penalty sets the regularization added to every gradient before it is used.
func (g *gradientdescent) Penalty(p penalties.Penalty) *gradientdescent {
	g.penalty = p
	return g
}

func (g *gradientdescent) TypeString() string {
	return "sgd"
}

func (g *gradientdescent) Step(grads map[string][]float64) error {
	factor := g.factor()

	return g.each(grads, func(name string, ws, gs []float64, grp us.Group) {
		if wd := grp.WeightDecay(); wd != 0 {
			floats.Scale(1-wd, ws)
		}

		update := gs
		if g.momentum != 0 {
			v, ok := g.velocity[name]
			if !ok {
				v = make([]float64, len(ws))
				g.velocity[name] = v
			}

			floats.Scale(g.momentum, v)
			floats.Add(v, gs)
			update = v
		}

		floats.AddScaled(ws, -grp.LR()*factor, update)
	})
}
