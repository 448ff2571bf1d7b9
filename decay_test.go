package unitscaling

import (
	"testing"
)

func TestDecayResolve(t *testing.T) {
	tests := []struct {
		policy DecayPolicy
		want   float64
	}{
		{Independent, 0.1},
		{"", 0.1},
		{Coupled, 0.4},
	}

	for _, test := range tests {
		wd, err := test.policy.Resolve(0.1, 4)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.policy, err)
		} else if wd != test.want {
			t.Errorf("%q: expected %v, got %v", test.policy, test.want, wd)
		}
	}

	if _, err := DecayPolicy("sometimes").Resolve(0.1, 4); err == nil {
		t.Error("Expected an error for an unknown policy")
	}
}
