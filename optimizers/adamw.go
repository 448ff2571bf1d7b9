package optimizers

import (
	"math"

	"github.com/pkg/errors"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/hyperparams"
	"github.com/EIFY/unit-scaling/penalties"
	"github.com/EIFY/unit-scaling/utils"
)

// element updates of a single parameter are split across goroutines in chunks of this size
const (
	opsPerThread  = 4096
	threadsPerCPU = 1
)

type adamw struct {
	base

	beta1, beta2, eps float64

	// first and second moment estimates
	m, v map[string][]float64
}

// AdamW returns Adam with decoupled weight decay over the given groups, with β1 = 0.9,
// β2 = 0.999, and ε = 1e-8. The requirements on the store are the same as for SGD.
func AdamW(groups []us.Group, store Store) (*adamw, error) {
	b, err := newBase(groups, store)
	if err != nil {
		return nil, err
	}

	return &adamw{
		base:  b,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}, nil
}

// Betas sets the decay rates of the moment estimates. Betas will panic if either is not in [0, 1).
func (a *adamw) Betas(beta1, beta2 float64) *adamw {
	if beta1 < 0 || beta1 >= 1 || beta2 < 0 || beta2 >= 1 {
		panic(errors.Errorf("Betas must be in [0, 1) (%v, %v)", beta1, beta2))
	}

	a.beta1, a.beta2 = beta1, beta2
	return a
}

// Eps sets the term added to the denominator of every update.
func (a *adamw) Eps(eps float64) *adamw {
	a.eps = eps
	return a
}

// Schedule sets the factor applied to every group's learning rate at each step.
func (a *adamw) Schedule(hp hyperparams.HyperParameter) *adamw {
	a.sched = hp
	return a
}

// Penalty sets the regularization added to every gradient before it is used.
func (a *adamw) Penalty(p penalties.Penalty) *adamw {
	a.penalty = p
	return a
}

func (a *adamw) TypeString() string {
	return "adamw"
}

func (a *adamw) Step(grads map[string][]float64) error {
	factor := a.factor()

	t := float64(a.iter + 1)
	bc1 := 1 - math.Pow(a.beta1, t)
	bc2 := 1 - math.Pow(a.beta2, t)

	return a.each(grads, func(name string, ws, gs []float64, grp us.Group) {
		m, ok := a.m[name]
		if !ok {
			m = make([]float64, len(ws))
			a.m[name] = m
			a.v[name] = make([]float64, len(ws))
		}
		v := a.v[name]

		lr := grp.LR() * factor
		wd := grp.WeightDecay()

		utils.MultiThread(len(ws), func(start, end int) {
			for i := start; i < end; i++ {
				m[i] = a.beta1*m[i] + (1-a.beta1)*gs[i]
				v[i] = a.beta2*v[i] + (1-a.beta2)*gs[i]*gs[i]

				mHat := m[i] / bc1
				vHat := v[i] / bc2

				ws[i] -= wd * ws[i]
				ws[i] -= lr * mHat / (math.Sqrt(vHat) + a.eps)
			}
		}, opsPerThread, threadsPerCPU)
	})
}
