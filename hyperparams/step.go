package hyperparams

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type step struct {
	Iter int
	Val  float64
}

type stepper []step

// Step returns a piecewise-constant HyperParameter, starting at base. Further steps are added with
// Add, in increasing order of iteration.
func Step(base float64) *stepper {
	s := make([]step, 1)

	s[0] = step{0, base}

	st := stepper(s)
	return &st
}

// Add adds a step to the HyperParameter: from iteration iter onwards, its value is value.
// Add will panic if iter is not after the previous step.
func (s *stepper) Add(iter int, value float64) *stepper {
	if last := (*s)[len(*s)-1]; iter <= last.Iter {
		panic(errors.Errorf("Step at iteration %d is not after the previous one (%d)", iter, last.Iter))
	}

	*s = append(*s, step{iter, value})
	return s
}

func (s *stepper) TypeString() string {
	return "step"
}

func (s *stepper) Value(iter int) float64 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Iter > iter {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}

func (s *stepper) String() string {
	var b strings.Builder
	b.WriteString(s.TypeString() + ":")

	for i, st := range *s {
		if i == 0 {
			b.WriteString(strconv.FormatFloat(st.Val, 'g', -1, 64))
		} else {
			fmt.Fprintf(&b, ",%d=%s", st.Iter, strconv.FormatFloat(st.Val, 'g', -1, 64))
		}
	}

	return b.String()
}

// parseStep accepts the base value, followed by any number of "iter=value" steps, separated by
// commas.
func parseStep(args string) (HyperParameter, error) {
	fields := strings.Split(args, ",")

	base, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "Bad base value")
	}

	s := Step(base)
	for _, f := range fields[1:] {
		it, val, ok := strings.Cut(f, "=")
		if !ok {
			return nil, errors.Errorf("Step %q is not of the form iter=value", f)
		}

		iter, err := strconv.Atoi(it)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad iteration in step %q", f)
		}

		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad value in step %q", f)
		}

		if last := (*s)[len(*s)-1]; iter <= last.Iter {
			return nil, errors.Errorf("Step at iteration %d is not after the previous one (%d)", iter, last.Iter)
		}

		s.Add(iter, v)
	}

	return s, nil
}
