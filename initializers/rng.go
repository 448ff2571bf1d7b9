package initializers

import "math/rand"

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

// source is embedded in every RNG, so that each can draw from its own *rand.Rand
type source struct {
	r *rand.Rand
}

func (s source) normFloat64() float64 {
	if s.r == nil {
		return rand.NormFloat64()
	}

	return s.r.NormFloat64()
}

type normal struct {
	source
	µ, σ float64
}

// Normal returns an RNG that gives values within a normal distribution, by default N(0, 1). The
// center and standard deviation can be set by Mean and SD, respectively.
func Normal() *normal {
	return &normal{µ: 0, σ: 1}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Source sets the random source of the RNG. If never set, the global source of math/rand is used.
func (n *normal) Source(r *rand.Rand) *normal {
	n.r = r
	return n
}

// Gen is the implementation of RNG for Normal. It returns a random number.
func (n *normal) Gen() float64 {
	return n.normFloat64()*n.σ + n.µ
}
