/*
 * basis.go, part of gohawp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package hawp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rmera/gohawp/cmat"
	"gonum.org/v1/gonum/mat"
)

//ladderStep is the recursion that obtains phi_k from lower basis functions:
//
//	sqrt(k_d) phi_k = sqrt(2/eps) (Q^-1 (x-q))_d phi_{k-e_d} - sum_l (Q^-1 conj(Q))_{dl} sqrt(k_l-delta_{ld}) phi_{k-e_d-e_l}
//
//where d is the first axis with k_d>0.
type ladderStep struct {
	d     int
	prev  int       //position of k-e_d
	inv   float64   //1/sqrt(k_d)
	lower []int     //position of k-e_d-e_l, -1 if it doesn't exist
	sqrtk []float64 //sqrt((k-e_d)_l)
}

//ladder returns the recursion steps for every multi-index of the shape except
//the zero one, and the position of the zero multi-index.
func ladder(shape BasisShape) ([]ladderStep, int, error) {
	D := shape.Dim()
	steps := make([]ladderStep, shape.Size())
	zero := -1
	km := make([]int, D)
	for n := 0; n < shape.Size(); n++ {
		k := shape.At(n)
		d := -1
		for i, v := range k {
			if v > 0 {
				d = i
				break
			}
		}
		if d < 0 {
			zero = n
			steps[n].d = -1
			continue
		}
		copy(km, k)
		km[d]--
		prev, ok := shape.Index(km)
		if !ok || prev >= n {
			return nil, -1, NewError(fmt.Sprintf("multi-index %v listed before its lower neighbour", k), "ladder", true, nil)
		}
		st := ladderStep{d: d, prev: prev, inv: 1 / math.Sqrt(float64(k[d])), lower: make([]int, D), sqrtk: make([]float64, D)}
		for l := 0; l < D; l++ {
			st.lower[l] = -1
			if km[l] == 0 {
				continue
			}
			st.sqrtk[l] = math.Sqrt(float64(km[l]))
			km[l]--
			st.lower[l], _ = shape.Index(km)
			km[l]++
		}
		steps[n] = st
	}
	if zero < 0 {
		return nil, -1, NewError("shape doesn't contain the zero multi-index", "ladder", true, nil)
	}
	return steps, zero, nil
}

//EvaluateBasis returns the |K| x n matrix with the values of the Hagedorn basis
//functions phi_k[ps], k in shape, at the n columns of nodes (a D x n matrix
//of real positions). The global phase exp(iS/eps) is not included.
func EvaluateBasis(eps float64, ps *ParameterSet, shape BasisShape, nodes mat.Matrix) (*cmat.Matrix, error) {
	D := ps.Dim()
	nr, nn := nodes.Dims()
	if nr != D || shape.Dim() != D {
		return nil, NewError(fmt.Sprintf("nodes have dimension %d, parameters %d, shape %d", nr, D, shape.Dim()), "EvaluateBasis", true, ErrDimension)
	}
	steps, zero, err := ladder(shape)
	if err != nil {
		return nil, ErrDecorate(err, "EvaluateBasis")
	}
	Qinv := cmat.Zeros(D, D)
	if err := Qinv.Inverse(ps.Q); err != nil {
		return nil, NewError(err.Error(), "EvaluateBasis", true, ErrSingularFrame)
	}
	Qbar := cmat.Zeros(D, D)
	Qbar.Conj(ps.Q)
	QinvQbar := cmat.Zeros(D, D)
	QinvQbar.Mul(Qinv, Qbar)
	PQinv := cmat.Zeros(D, D)
	PQinv.Mul(ps.P, Qinv)

	pref := complex(math.Pow(math.Pi*eps, -0.25*float64(D)), 0) / ps.SqrtDetQ()
	sq2eps := complex(math.Sqrt(2/eps), 0)
	ieps := complex(0, 1/eps)
	ret := cmat.Zeros(shape.Size(), nn)
	dx := make([]float64, D)
	u := make([]complex128, D)
	phi := make([]complex128, shape.Size())
	for n := 0; n < nn; n++ {
		for a := 0; a < D; a++ {
			dx[a] = nodes.At(a, n) - ps.Pos[a]
		}
		var quad, lin complex128
		for a := 0; a < D; a++ {
			var s complex128
			for b := 0; b < D; b++ {
				quad += complex(dx[a], 0) * PQinv.At(a, b) * complex(dx[b], 0)
				s += Qinv.At(a, b) * complex(dx[b], 0)
			}
			u[a] = s
			lin += complex(ps.Mom[a]*dx[a], 0)
		}
		phi[zero] = pref * cmplx.Exp(ieps*(0.5*quad+lin))
		for m, st := range steps {
			if st.d < 0 {
				continue
			}
			v := sq2eps * u[st.d] * phi[st.prev]
			for l, lo := range st.lower {
				if lo < 0 {
					continue
				}
				v -= QinvQbar.At(st.d, l) * complex(st.sqrtk[l], 0) * phi[lo]
			}
			phi[m] = v * complex(st.inv, 0)
		}
		for m, v := range phi {
			ret.Set(m, n, v)
		}
	}
	return ret, nil
}

//EvaluateBasis returns the values of the basis functions of the i-th component
//at the columns of nodes. See the EvaluateBasis function.
func (P *Packet) EvaluateBasis(i int, nodes mat.Matrix) (*cmat.Matrix, error) {
	c := P.comps[i]
	return EvaluateBasis(P.eps, c.params, c.Shape, nodes)
}

//Evaluate returns the N x n matrix with the value of each component of the
//packet, exp(iS/eps) sum_k c_k phi_k, at the n columns of nodes.
func (P *Packet) Evaluate(nodes mat.Matrix) (*cmat.Matrix, error) {
	_, nn := nodes.Dims()
	ret := cmat.Zeros(P.Len(), nn)
	for i, c := range P.comps {
		B, err := P.EvaluateBasis(i, nodes)
		if err != nil {
			return nil, ErrDecorate(err, "Packet.Evaluate")
		}
		phase := cmplx.Exp(complex(0, 1/P.eps) * c.params.S)
		for n := 0; n < nn; n++ {
			var s complex128
			for k, ck := range c.Coefficients {
				s += ck * B.At(k, n)
			}
			ret.Set(i, n, phase*s)
		}
	}
	return ret, nil
}
