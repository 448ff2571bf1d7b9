// Package costfuncs provides the cost functions used to train the networks in unitnet.
package costfuncs

import "gonum.org/v1/gonum/mat"

// CostFunction measures the error of a batch of outputs against their targets.
type CostFunction interface {
	// Cost returns the total cost of the batch. Both matrices are batch × outputs.
	Cost(mat.Matrix, mat.Matrix) (float64, error)

	// Deriv returns the derivative of Cost with respect to every output.
	Deriv(mat.Matrix, mat.Matrix) (*mat.Dense, error)

	TypeString() string
}
