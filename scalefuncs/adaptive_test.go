package scalefuncs

import (
	"math"
	"testing"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/depthlaws"
)

func TestAdaptive(t *testing.T) {
	fn := Adaptive().Depth(depthlaws.InverseSqrt())

	params := []us.Param{
		us.WeightParam("w", 8, 64),
		us.WeightParam("w", 8, 4096),
		us.BiasParam("b", 1000),
		us.NormParam("n", 3),
		us.OutputParam("o", us.NoConstraint, 10, 64),
		us.OutputParam("o", us.ToOutputScale, 10, 64),
	}

	for _, p := range params {
		if mult, err := fn.LRScale(p); err != nil || mult != 1 {
			t.Errorf("%v: expected 1, got %v (err = %v)", p, mult, err)
		}

		if mult, _ := fn.LRScale(p.AtDepth(3)); p.Role() != us.Output && math.Abs(mult-0.5) > 1e-15 {
			t.Errorf("%v at depth 3: expected 0.5, got %v", p, mult)
		}
	}

	fn.Batch(256, 64)
	if mult, _ := fn.LRScale(params[0]); math.Abs(mult-2) > 1e-15 {
		t.Errorf("Expected batch term 2, got %v", mult)
	}

	if _, err := fn.LRScale(us.NewParam("x", "", 3)); err == nil {
		t.Error("Expected an error for an untagged parameter")
	}
}

func TestAdaptiveBatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Error("Expected Batch(0, 1) to panic")
		} else if _, ok := r.(error); !ok {
			t.Errorf("Expected to panic with an error, got %T: %v", r, r)
		}
	}()

	Adaptive().Batch(0, 1)
}
