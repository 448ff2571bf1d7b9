package depthlaws

import (
	us "github.com/EIFY/unit-scaling"
)

func init() {
	list := map[string]us.DepthLawCtor{
		InverseSqrt().TypeString(): func(float64) us.DepthLaw { return InverseSqrt() },
		Power(0).TypeString():      func(e float64) us.DepthLaw { return Power(e) },
		Constant().TypeString():    func(float64) us.DepthLaw { return Constant() },
	}

	for s, f := range list {
		if err := us.RegisterDepthLaw(s, f); err != nil {
			panic(err.Error())
		}
	}

	us.SetDefaultDepthLaw(InverseSqrt())
}
