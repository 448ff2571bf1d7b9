package penalties

import (
	"testing"
)

func TestPenalties(t *testing.T) {
	tests := []struct {
		p       Penalty
		w, grad float64
		want    float64
	}{
		{L1(0.1), 2, 1, 1.1},
		{L1(0.1), -2, 1, 0.9},
		{Lasso(0.1), 0, 1, 1},
		{L2(0.1), 2, 1, 1.4},
		{Ridge(0.1), -1, 0, -0.2},
		{ElasticNet(1, 0.1), 2, 1, 1.1},
		{ElasticNet(0, 0.1), 2, 1, 1.4},
		{ElasticNet(0.5, 0.1), -2, 0, -0.25},
	}

	for _, test := range tests {
		if g := test.p.Penalize(test.w, test.grad); g-test.want > 1e-15 || test.want-g > 1e-15 {
			t.Errorf("%s(w = %v, grad = %v): expected %v, got %v", test.p.TypeString(), test.w, test.grad, test.want, g)
		}
	}
}
