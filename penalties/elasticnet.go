package penalties

import (
	"math"
)

type elasticNet struct {
	α float64
	λ float64
}

// ElasticNet mixes L1 and L2. λ is a small value close to 0 where λ > 0. α controls the ratio
// between L1 and L2, where 0 ≤ α ≤ 1: α = 1 is identical to L1, and α = 0 to L2.
func ElasticNet(α, λ float64) *elasticNet {
	return &elasticNet{α, λ}
}

func (p *elasticNet) TypeString() string {
	return "elastic-net"
}

func (p *elasticNet) Penalize(w, grad float64) float64 {
	l1 := 0.0
	if w != 0 {
		l1 = math.Copysign(1, w)
	}

	return grad + p.λ*((1-p.α)*2*w+p.α*l1)
}
