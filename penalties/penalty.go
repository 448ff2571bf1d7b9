// Package penalties provides regularization that is added to the gradient before the optimizer
// sees it. Unlike the decoupled weight decay of a Group, a penalty goes through the learning rate,
// and so is scaled by every multiplier that unitscaling gives.
package penalties

// Penalty adjusts the gradient of a single value.
type Penalty interface {
	// Penalize returns the gradient of the value w, given its unpenalized gradient.
	Penalize(w, grad float64) float64

	TypeString() string
}
