package costfuncs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type mse struct{}

// MSE returns the mean squared error cost function:
//	1/2 · mean((outs - targets)²)
// taken over every element of a batch.
func MSE() mse {
	return mse{}
}

func (m mse) TypeString() string {
	return "mse"
}

func (m mse) Cost(outs, targets mat.Matrix) (float64, error) {
	diff, err := difference(outs, targets)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, d := range diff.RawMatrix().Data {
		sum += d * d
	}

	r, c := diff.Dims()
	return 0.5 * sum / float64(r*c), nil
}

func (m mse) Deriv(outs, targets mat.Matrix) (*mat.Dense, error) {
	diff, err := difference(outs, targets)
	if err != nil {
		return nil, err
	}

	r, c := diff.Dims()
	diff.Scale(1/float64(r*c), diff)

	return diff, nil
}

func difference(outs, targets mat.Matrix) (*mat.Dense, error) {
	or, oc := outs.Dims()
	tr, tc := targets.Dims()
	if or != tr || oc != tc {
		return nil, errors.Errorf("Outputs have dimensions %dx%d, targets %dx%d", or, oc, tr, tc)
	}

	diff := mat.NewDense(or, oc, nil)
	diff.Sub(outs, targets)

	return diff, nil
}
