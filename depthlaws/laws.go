// Package depthlaws provides the depth multipliers that unitscaling applies to parameters inside a
// residual stack. Importing it registers every law here and sets InverseSqrt as the default.
package depthlaws

import (
	"math"
)

type power float64

// Power returns the DepthLaw (1+depth)^exponent. The exponent should not be positive: deeper
// layers accumulate more updates in the residual stream, and should get smaller ones.
func Power(exponent float64) power {
	return power(exponent)
}

// InverseSqrt returns the default DepthLaw, (1+depth)^-1/2.
func InverseSqrt() inverseSqrt {
	return inverseSqrt{}
}

type inverseSqrt struct{}

func (inverseSqrt) TypeString() string {
	return "inverse-sqrt"
}

func (inverseSqrt) Scale(depth int) float64 {
	return 1 / math.Sqrt(1+float64(depth))
}

func (p power) TypeString() string {
	return "power"
}

func (p power) Scale(depth int) float64 {
	return math.Pow(1+float64(depth), float64(p))
}

// Exponent returns the exponent of the law.
func (p power) Exponent() float64 {
	return float64(p)
}

type constant struct{}

// Constant returns a DepthLaw that is always 1, for networks without a residual stack.
func Constant() constant {
	return constant{}
}

func (constant) TypeString() string {
	return "constant"
}

func (constant) Scale(int) float64 {
	return 1
}
