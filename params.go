/*
 * params.go, part of gohawp.
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
	"math/cmplx"

	"github.com/rmera/gohawp/cmat"
)

//ParameterSet contains the classical phase-space state of a Gaussian: the
//position q (Pos), the momentum p (Mom), the complex frame matrices Q and P,
//and the accumulated action S.
//
//Q and P are assumed to satisfy Q^T P - P^T Q = 0 and Q^H P - P^H Q = 2iI.
//The propagator preserves that relation by construction, it is never
//checked at runtime except by an explicit call to Compatible.
type ParameterSet struct {
	Pos []float64
	Mom []float64
	Q   *cmat.Matrix
	P   *cmat.Matrix
	S   complex128
	//continuous branch of sqrt(det Q)
	sqrtDetQ complex128
}

//NewParameterSet returns a parameter set with copies of the given values.
//It returns an error if the dimensions don't match or if Q is singular.
func NewParameterSet(q, p []float64, Q, P *cmat.Matrix, S complex128) (*ParameterSet, error) {
	D := len(q)
	qr, qc := Q.Dims()
	pr, pc := P.Dims()
	if D == 0 || len(p) != D || qr != D || qc != D || pr != D || pc != D {
		return nil, NewError(fmt.Sprintf("q, p, Q and P must share the dimension %d", D), "NewParameterSet", true, ErrDimension)
	}
	ps := &ParameterSet{
		Pos: append([]float64(nil), q...),
		Mom: append([]float64(nil), p...),
		Q:   Q.Clone(),
		P:   P.Clone(),
		S:   S,
	}
	if ps.TrackSqrtDetQ() == 0 {
		return nil, NewError("det Q is zero", "NewParameterSet", true, ErrSingularFrame)
	}
	return ps, nil
}

//Standard returns the parameter set of a standard Gaussian centered at q
//with momentum p: Q=I, P=iI, S=0.
func Standard(q, p []float64) *ParameterSet {
	D := len(q)
	P := cmat.Eye(D)
	P.Scale(1i, P)
	ps, err := NewParameterSet(q, p, cmat.Eye(D), P, 0)
	if err != nil {
		panic(err.Error())
	}
	return ps
}

//Dim returns the spatial dimension of the parameter set.
func (ps *ParameterSet) Dim() int {
	return len(ps.Pos)
}

//Clone returns a deep copy of the parameter set.
func (ps *ParameterSet) Clone() *ParameterSet {
	return &ParameterSet{
		Pos:      append([]float64(nil), ps.Pos...),
		Mom:      append([]float64(nil), ps.Mom...),
		Q:        ps.Q.Clone(),
		P:        ps.P.Clone(),
		S:        ps.S,
		sqrtDetQ: ps.sqrtDetQ,
	}
}

//SqrtDetQ returns the value of sqrt(det Q) on the branch recorded by the last call
//to TrackSqrtDetQ.
func (ps *ParameterSet) SqrtDetQ() complex128 {
	return ps.sqrtDetQ
}

//TrackSqrtDetQ recomputes sqrt(det Q), choosing the sign closest to the previous
//value so the branch is continuous along a trajectory, stores it and returns it.
//It must be called after any change to Q. The propagator does so after each
//classical half-step.
func (ps *ParameterSet) TrackSqrtDetQ() complex128 {
	s := cmplx.Sqrt(cmat.Det(ps.Q))
	if ps.sqrtDetQ != 0 && cmplx.Abs(s-ps.sqrtDetQ) > cmplx.Abs(s+ps.sqrtDetQ) {
		s = -s
	}
	ps.sqrtDetQ = s
	return s
}

//AlignSqrtDetQ recomputes sqrt(det Q) choosing the sign closest to ref, and
//returns it. It is used to restore the branch of a stored parameter set.
func (ps *ParameterSet) AlignSqrtDetQ(ref complex128) complex128 {
	ps.sqrtDetQ = ref
	return ps.TrackSqrtDetQ()
}

//Compatible returns true if Q and P satisfy the symplectic relations
//Q^T P - P^T Q = 0 and Q^H P - P^H Q = 2iI to within tol.
func (ps *ParameterSet) Compatible(tol float64) bool {
	D := ps.Dim()
	a := cmat.Zeros(D, D)
	b := cmat.Zeros(D, D)
	a.Mul(ps.Q.Transpose(), ps.P)
	b.Mul(ps.P.Transpose(), ps.Q)
	a.Sub(a, b)
	if a.MaxAbs() > tol {
		return false
	}
	a.Mul(ps.Q.Adjoint(), ps.P)
	b.Mul(ps.P.Adjoint(), ps.Q)
	a.Sub(a, b)
	twoi := cmat.Eye(D)
	twoi.Scale(2i, twoi)
	return cmat.EqualApprox(a, twoi, tol)
}

func (ps *ParameterSet) String() string {
	return fmt.Sprintf("q: %v\np: %v\nQ: %v\nP: %v\nS: %v", ps.Pos, ps.Mom, ps.Q, ps.P, ps.S)
}
