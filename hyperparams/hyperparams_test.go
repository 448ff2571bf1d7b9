package hyperparams

import (
	"testing"
)

func TestStep(t *testing.T) {
	s := Step(1).Add(10, 0.1).Add(20, 0.01)

	tests := []struct {
		iter int
		want float64
	}{
		{0, 1}, {9, 1}, {10, 0.1}, {19, 0.1}, {20, 0.01}, {1000, 0.01},
	}

	for _, test := range tests {
		if v := s.Value(test.iter); v != test.want {
			t.Errorf("Iteration %d: expected %v, got %v", test.iter, test.want, v)
		}
	}
}

func TestStepAddPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected Add to panic for a step that isn't after the previous one")
		}
	}()

	Step(1).Add(10, 0.1).Add(10, 0.01)
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want []float64 // at iterations 0 through 9
	}{
		{"", []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"constant:0.5", []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}},
		{"step:1,3=0.5,7=0.25", []float64{1, 1, 1, 0.5, 0.5, 0.5, 0.5, 0.25, 0.25, 0.25}},
		{"step:2", []float64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}},
	}

	for _, test := range tests {
		hp, err := Parse(test.spec)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.spec, err)
			continue
		}

		for i, want := range test.want {
			if v := hp.Value(i); v != want {
				t.Errorf("%q: iteration %d: expected %v, got %v", test.spec, i, want, v)
			}
		}
	}
}

func TestString(t *testing.T) {
	hps := []HyperParameter{
		Constant(0.5),
		Step(1).Add(3, 0.5).Add(7, 0.25),
	}

	for _, hp := range hps {
		parsed, err := Parse(hp.String())
		if err != nil {
			t.Fatalf("%s: failed to parse %q: %v", hp.TypeString(), hp.String(), err)
		}

		if parsed.String() != hp.String() {
			t.Errorf("%s: expected %q, got %q", hp.TypeString(), hp.String(), parsed.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	specs := []string{
		"cosine:1",
		"constant:",
		"constant:half",
		"step:",
		"step:1,10",
		"step:1,ten=0.1",
		"step:1,10=low",
		"step:1,10=0.1,10=0.01",
		"step:1,0=0.1",
	}

	for _, s := range specs {
		if _, err := Parse(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
}
