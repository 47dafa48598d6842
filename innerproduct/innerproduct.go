/*
 * innerproduct.go, part of gohawp.
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

//Package innerproduct assembles the block matrix of an operator between the
//components of a Hagedorn wavepacket, by quadrature.
//
//Block (i,j) approximates <phi^i_k | op_ij | phi^j_l> for all k in the shape of
//component i and l in the shape of component j. The quadrature nodes are
//mapped into the frame of component i: x = q_i + sqrt(eps) R_i y, with
//R_i R_i^T = Q_i Q_i^H, so that the Gaussian envelope of component i becomes
//exp(-|y|^2), the weight of the Gauss-Hermite rules.
package innerproduct

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/quadrature"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Operator returns the (i,j) entry of a (matrix) operator at the position x,
//for a block expanded about q (the position of component i). x is reused
//between calls and must not be retained.
type Operator func(x, q []float64, i, j int) complex128

//Builder assembles block matrices with a given quadrature rule.
//A Builder is read-only once created, and can be shared.
type Builder struct {
	rule quadrature.Rule
	cpus int
}

//NewBuilder returns a Builder using rule. The blocks are assembled by up to
//cpus goroutines (all logical CPUs if not given, serially if 1). The result
//doesn't depend on the number of goroutines.
func NewBuilder(rule quadrature.Rule, cpus ...int) *Builder {
	c := runtime.NumCPU()
	if len(cpus) > 0 && cpus[0] > 0 {
		c = cpus[0]
	}
	return &Builder{rule: rule, cpus: c}
}

//Rule returns the quadrature rule of the builder
func (B *Builder) Rule() quadrature.Rule { return B.rule }

//Cpus returns the maximum number of goroutines used by Build.
func (B *Builder) Cpus() int { return B.cpus }

//frame holds the quadrature nodes and effective weights mapped to one
//parameter set.
type frame struct {
	params  *hawp.ParameterSet
	nodes   *mat.Dense
	weights []float64
}

//newFrame maps the rule to the frame of ps.
func newFrame(eps float64, ps *hawp.ParameterSet, rule quadrature.Rule) (*frame, error) {
	D := ps.Dim()
	if rule.Dim() != D {
		return nil, hawp.NewError(fmt.Sprintf("rule has dimension %d, packet %d", rule.Dim(), D), "newFrame", true, hawp.ErrDimension)
	}
	QQh := cmat.Zeros(D, D)
	QQh.Mul(ps.Q, ps.Q.Adjoint())
	sym := mat.NewSymDense(D, nil)
	for a := 0; a < D; a++ {
		for b := a; b < D; b++ {
			sym.SetSym(a, b, 0.5*(real(QQh.At(a, b))+real(QQh.At(b, a))))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, hawp.NewError("can't diagonalize Re(QQ^H)", "newFrame", true, hawp.ErrSingularFrame)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	detR := 1.0
	for k, v := range vals {
		if !(v > 0) {
			return nil, hawp.NewError(fmt.Sprintf("Re(QQ^H) is not positive definite, eigenvalues: %v", vals), "newFrame", true, hawp.ErrSingularFrame)
		}
		vals[k] = math.Sqrt(v)
		detR *= vals[k]
	}
	//R = V diag(sqrt(lambda)) V^T
	var R, tmp mat.Dense
	tmp.Mul(&vecs, mat.NewDiagDense(D, vals))
	R.Mul(&tmp, vecs.T())

	y := rule.Nodes()
	n := rule.Len()
	f := &frame{params: ps, nodes: mat.NewDense(D, n, nil), weights: make([]float64, n)}
	f.nodes.Mul(&R, y)
	f.nodes.Scale(math.Sqrt(eps), f.nodes)
	for m := 0; m < n; m++ {
		for a := 0; a < D; a++ {
			f.nodes.Set(a, m, f.nodes.At(a, m)+ps.Pos[a])
		}
	}
	col := make([]float64, D)
	scale := math.Pow(eps, 0.5*float64(D)) * detR
	for m, w := range rule.Weights() {
		mat.Col(col, m, y)
		f.weights[m] = w * math.Exp(floats.Dot(col, col)) * scale
	}
	return f, nil
}

//Build returns the Size() x Size() block matrix of op between the components of P.
//Block (i,j) starts at row P.Offsets()[i] and column P.Offsets()[j], and for
//inhomogeneous packets carries the relative phase exp(i(S_j-S_i)/eps).
//Only entry (i,j) of the operator is requested for block (i,j).
func (B *Builder) Build(P *hawp.Packet, op Operator) (*cmat.Matrix, error) {
	N := P.Len()
	eps := P.Eps()
	offsets := P.Offsets()
	frames := make(map[*hawp.ParameterSet]*frame, len(P.Params()))
	for _, ps := range P.Params() {
		f, err := newFrame(eps, ps, B.rule)
		if err != nil {
			return nil, hawp.ErrDecorate(err, "Builder.Build")
		}
		frames[ps] = f
	}
	//basis[i][j]: basis of component j at the nodes of the frame of component i.
	//Components sharing a frame share the evaluations.
	basis := make([][]*cmat.Matrix, N)
	done := make(map[*hawp.ParameterSet][]*cmat.Matrix, len(frames))
	for i, c := range P.Components() {
		if b, ok := done[c.Params()]; ok {
			basis[i] = b
			continue
		}
		f := frames[c.Params()]
		basis[i] = make([]*cmat.Matrix, N)
		for j := range P.Components() {
			b, err := P.EvaluateBasis(j, f.nodes)
			if err != nil {
				return nil, hawp.ErrDecorate(err, "Builder.Build")
			}
			basis[i][j] = b
		}
		done[c.Params()] = basis[i]
	}

	F := cmat.Zeros(offsets[N], offsets[N])
	errs := make([]error, N*N)
	sem := make(chan struct{}, B.cpus)
	var wg sync.WaitGroup
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if B.cpus == 1 {
				errs[i*N+j] = B.block(F, P, frames, basis, offsets, op, i, j)
				continue
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(i, j int) {
				defer wg.Done()
				errs[i*N+j] = B.block(F, P, frames, basis, offsets, op, i, j)
				<-sem
			}(i, j)
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, hawp.ErrDecorate(err, "Builder.Build")
		}
	}
	return F, nil
}

//block fills the (i,j) block of F. Each block writes a disjoint region of F and
//sums over the nodes in a fixed order.
func (B *Builder) block(F *cmat.Matrix, P *hawp.Packet, frames map[*hawp.ParameterSet]*frame, basis [][]*cmat.Matrix, offsets []int, op Operator, i, j int) error {
	ci, cj := P.Component(i), P.Component(j)
	f := frames[ci.Params()]
	D := P.Dim()
	n := len(f.weights)
	q := ci.Params().Pos
	x := make([]float64, D)
	//weighted operator values
	wv := make([]complex128, n)
	for m := 0; m < n; m++ {
		mat.Col(x, m, f.nodes)
		v := op(x, q, i, j)
		if !cmat.Finite(v) {
			return hawp.NewError(fmt.Sprintf("non-finite operator value %v at x=%v for block (%d,%d)", v, x, i, j), "Builder.block", true, hawp.ErrNonFinite)
		}
		wv[m] = complex(f.weights[m], 0) * v
	}
	//The coefficients exclude exp(iS/eps), so the row equation is divided
	//by exp(iS_i/eps), not multiplied by its conjugate.
	phase := complex(1, 0)
	if ci.Params() != cj.Params() {
		phase = cmplx.Exp(complex(0, 1/P.Eps()) * (cj.Params().S - ci.Params().S))
	}
	Bi, Bj := basis[i][i], basis[i][j]
	for k := 0; k < ci.Shape.Size(); k++ {
		for l := 0; l < cj.Shape.Size(); l++ {
			var s complex128
			for m := 0; m < n; m++ {
				s += cmplx.Conj(Bi.At(k, m)) * wv[m] * Bj.At(l, m)
			}
			F.Set(offsets[i]+k, offsets[j]+l, phase*s)
		}
	}
	return nil
}
