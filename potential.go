/*
 * potential.go, part of gohawp.
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
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/rmera/gohawp/cmat"
)

//Potential is a (possibly matrix-valued) potential energy surface, as seen by
//the propagator. The leading level is a scalar surface whose quadratic Taylor
//expansion about the packet position is integrated exactly by the classical
//parameters, the local remainder is what is left, and is handled by quadrature.
type Potential interface {
	//Dim returns the spatial dimension.
	Dim() int
	//Levels returns the number of levels N (the potential is N x N).
	Levels() int
	//LeadingLevelTaylor returns the value, gradient and Hessian of the
	//leading level at q.
	LeadingLevelTaylor(q []float64) (complex128, []complex128, *cmat.Matrix)
	//LocalRemainder returns the (i,j) entry of the potential minus the
	//quadratic Taylor expansion of the leading level about q (diagonal
	//entries only), evaluated at x.
	LocalRemainder(x, q []float64, i, j int) complex128
	//Evaluate returns the (i,j) entry of the potential at x.
	Evaluate(x []float64, i, j int) complex128
}

//Func is a potential entry, or a leading level, as a function of the position.
type Func func(x []float64) complex128

//Gradient returns the gradient of a leading level.
type Gradient func(x []float64) []complex128

//Hessian returns the Hessian matrix of a leading level.
type Hessian func(x []float64) *cmat.Matrix

//LeadingLevel is a scalar surface given with its first and second derivatives.
type LeadingLevel struct {
	V    Func
	Grad Gradient
	Hess Hessian
}

//Taylor returns the value, gradient and Hessian of the leading level at q.
func (L LeadingLevel) Taylor(q []float64) (complex128, []complex128, *cmat.Matrix) {
	return L.V(q), L.Grad(q), L.Hess(q)
}

//Quadratic returns U(q) + grad U(q).(x-q) + 1/2 (x-q)^T H(q) (x-q), the quadratic Taylor
//expansion of the leading level U about q, evaluated at x.
//To evaluate many points about the same q, use Expand.
func (L LeadingLevel) Quadratic(x, q []float64) complex128 {
	return L.Expand(q).At(x)
}

//Expansion is the quadratic Taylor expansion of a leading level about a point.
type Expansion struct {
	q    []float64
	v    complex128
	grad []complex128
	hess *cmat.Matrix
}

//Expand returns the quadratic Taylor expansion of L about q. q is copied.
func (L LeadingLevel) Expand(q []float64) *Expansion {
	v, g, H := L.Taylor(q)
	return &Expansion{q: append([]float64(nil), q...), v: v, grad: g, hess: H}
}

//At evaluates the expansion at x. It doesn't allocate.
func (E *Expansion) At(x []float64) complex128 {
	ret := E.v
	for a := range E.q {
		da := complex(x[a]-E.q[a], 0)
		ret += E.grad[a] * da
		for b := range E.q {
			ret += 0.5 * da * E.hess.At(a, b) * complex(x[b]-E.q[b], 0)
		}
	}
	return ret
}

//expansionCache keeps the expansions of a leading level about the last
//few points asked for, so the quadrature nodes of a block, which share the
//expansion point, don't recompute the derivatives. It is safe for
//concurrent use.
type expansionCache struct {
	mu sync.Mutex
	m  map[string]*Expansion
}

//maxExpansions bounds the cache. One entry per parameter set is needed
//during a step.
const maxExpansions = 64

func newExpansionCache() *expansionCache {
	return &expansionCache{m: make(map[string]*Expansion)}
}

func (c *expansionCache) get(L LeadingLevel, q []float64) *Expansion {
	b := make([]byte, 0, 8*len(q))
	for _, v := range q {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	key := string(b)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[key]; ok {
		return e
	}
	if len(c.m) >= maxExpansions {
		clear(c.m)
	}
	e := L.Expand(q)
	c.m[key] = e
	return e
}

//ScalarPotential is a single-level potential, which is its own leading level.
type ScalarPotential struct {
	dim     int
	leading LeadingLevel
	cache   *expansionCache
}

//NewScalarPotential returns a single-level potential in dim dimensions.
func NewScalarPotential(dim int, v Func, grad Gradient, hess Hessian) *ScalarPotential {
	return &ScalarPotential{dim: dim, leading: LeadingLevel{V: v, Grad: grad, Hess: hess}, cache: newExpansionCache()}
}

//Dim returns the spatial dimension
func (S *ScalarPotential) Dim() int { return S.dim }

//Levels returns 1
func (S *ScalarPotential) Levels() int { return 1 }

//LeadingLevelTaylor returns the value, gradient and Hessian of the potential at q.
func (S *ScalarPotential) LeadingLevelTaylor(q []float64) (complex128, []complex128, *cmat.Matrix) {
	return S.leading.Taylor(q)
}

//LocalRemainder returns V(x) minus its quadratic Taylor expansion about q.
//i and j are ignored.
func (S *ScalarPotential) LocalRemainder(x, q []float64, i, j int) complex128 {
	return S.leading.V(x) - S.cache.get(S.leading, q).At(x)
}

//Evaluate returns V(x). i and j are ignored.
func (S *ScalarPotential) Evaluate(x []float64, i, j int) complex128 {
	return S.leading.V(x)
}

//MatrixPotential is an N x N potential given entry by entry, plus a
//leading level used for the classical part of the propagation. Usually the
//leading level is the lowest eigenvalue, or the average of the diagonal.
type MatrixPotential struct {
	dim     int
	entries [][]Func
	leading LeadingLevel
	cache   *expansionCache
}

//NewMatrixPotential returns an N x N potential, N=len(entries). It returns an
//error if entries is not square or has nil entries.
func NewMatrixPotential(dim int, entries [][]Func, leading LeadingLevel) (*MatrixPotential, error) {
	N := len(entries)
	if N == 0 {
		return nil, NewError("no entries given", "NewMatrixPotential", true, ErrDimension)
	}
	for i, row := range entries {
		if len(row) != N {
			return nil, NewError(fmt.Sprintf("row %d has %d entries, want %d", i, len(row), N), "NewMatrixPotential", true, ErrDimension)
		}
		for j, f := range row {
			if f == nil {
				return nil, NewError(fmt.Sprintf("nil entry (%d,%d)", i, j), "NewMatrixPotential", true, nil)
			}
		}
	}
	if leading.V == nil || leading.Grad == nil || leading.Hess == nil {
		return nil, NewError("incomplete leading level", "NewMatrixPotential", true, nil)
	}
	return &MatrixPotential{dim: dim, entries: entries, leading: leading, cache: newExpansionCache()}, nil
}

//Dim returns the spatial dimension
func (M *MatrixPotential) Dim() int { return M.dim }

//Levels returns N
func (M *MatrixPotential) Levels() int { return len(M.entries) }

//LeadingLevelTaylor returns the value, gradient and Hessian of the leading level at q.
func (M *MatrixPotential) LeadingLevelTaylor(q []float64) (complex128, []complex128, *cmat.Matrix) {
	return M.leading.Taylor(q)
}

//LocalRemainder returns V_ij(x), minus the quadratic expansion of the leading level
//about q if i==j. Only the requested entry is evaluated.
func (M *MatrixPotential) LocalRemainder(x, q []float64, i, j int) complex128 {
	v := M.entries[i][j](x)
	if i == j {
		v -= M.cache.get(M.leading, q).At(x)
	}
	return v
}

//Evaluate returns V_ij(x)
func (M *MatrixPotential) Evaluate(x []float64, i, j int) complex128 {
	return M.entries[i][j](x)
}
