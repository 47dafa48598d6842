package main

import (
	"math"
	"sort"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
)

//scenario builds the initial packet and the potential for a simulation.
type scenario func(eps float64) (*hawp.Packet, hawp.Potential, error)

var scenarios = map[string]scenario{
	"harmonic2d":   harmonic2D,
	"twolevel":     twoLevel(false),
	"twolevel-inh": twoLevel(true),
}

func scenarioNames() []string {
	ret := make([]string, 0, len(scenarios))
	for k := range scenarios {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//harmonic2D is a ground state Gaussian in an isotropic 2D harmonic well,
//starting at q=(-3,0) with p=(0,0.5).
func harmonic2D(eps float64) (*hawp.Packet, hawp.Potential, error) {
	V := hawp.NewScalarPotential(2,
		func(x []float64) complex128 { return complex(0.5*(x[0]*x[0]+x[1]*x[1]), 0) },
		func(x []float64) []complex128 { return []complex128{complex(x[0], 0), complex(x[1], 0)} },
		func(x []float64) *cmat.Matrix { return cmat.Eye(2) })
	shape := hawp.HyperCubic(3, 3)
	c := make(hawp.Coefficients, shape.Size())
	c[0] = 1
	P, err := hawp.NewScalar(eps, hawp.Standard([]float64{-3, 0}, []float64{0, 0.5}), shape, c)
	return P, V, err
}

//twoLevel is a pair of shifted harmonic levels coupled near the origin,
//with the packet starting on the lower level. If inhomogeneous is true, each
//level gets its own parameter set.
func twoLevel(inhomogeneous bool) scenario {
	return func(eps float64) (*hawp.Packet, hawp.Potential, error) {
		lead := hawp.LeadingLevel{
			V:    func(x []float64) complex128 { return complex(0.5*x[0]*x[0], 0) },
			Grad: func(x []float64) []complex128 { return []complex128{complex(x[0], 0)} },
			Hess: func(x []float64) *cmat.Matrix { return cmat.Eye(1) },
		}
		coupling := func(x []float64) complex128 { return complex(0.1*math.Exp(-x[0]*x[0]), 0) }
		upper := func(x []float64) complex128 { return lead.V(x) + 0.05 }
		V, err := hawp.NewMatrixPotential(1, [][]hawp.Func{{lead.V, coupling}, {coupling, upper}}, lead)
		if err != nil {
			return nil, nil, err
		}
		shape := hawp.HyperCubic(8)
		c0 := make(hawp.Coefficients, 8)
		c0[0] = 1
		c1 := make(hawp.Coefficients, 8)
		shapes := []hawp.BasisShape{shape, shape}
		ps := hawp.Standard([]float64{-2}, []float64{0})
		if inhomogeneous {
			P, err := hawp.NewInhomogeneous(eps, []*hawp.ParameterSet{ps, ps.Clone()}, shapes, []hawp.Coefficients{c0, c1})
			return P, V, err
		}
		P, err := hawp.NewHomogeneous(eps, ps, shapes, []hawp.Coefficients{c0, c1})
		return P, V, err
	}
}
