/*
 * quadrature.go, part of gohawp.
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

//Package quadrature provides the quadrature rules used to build inner
//products of Hagedorn wavepackets: Gauss-Hermite rules in one dimension and
//their tensor products in D dimensions. All rules integrate against the
//weight exp(-|y|^2).
package quadrature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

//Rule is a quadrature rule in Dim() dimensions with Len() nodes.
//Rules are immutable once built, and can be shared between goroutines.
type Rule interface {
	Dim() int
	Len() int
	//Nodes returns the Dim() x Len() matrix of nodes, one per column.
	//It must not be modified.
	Nodes() *mat.Dense
	//Weights returns the Len() weights. It must not be modified.
	Weights() []float64
}

//GaussHermiteQR is the one-dimensional Gauss-Hermite rule of a given order:
//it integrates exactly p(y)exp(-y^2) for polynomials p of degree up to 2*order-1.
type GaussHermiteQR struct {
	order   int
	nodes   *mat.Dense
	weights []float64
}

//GaussHermite returns the Gauss-Hermite rule with order nodes. Nodes and weights
//come from gonum's quad.Hermite.
func GaussHermite(order int) *GaussHermiteQR {
	if order < 1 {
		panic(fmt.Sprintf("goHawp/quadrature: Gauss-Hermite order must be positive, got %d", order))
	}
	x := make([]float64, order)
	w := make([]float64, order)
	quad.Hermite{}.FixedLocations(x, w, math.Inf(-1), math.Inf(1))
	return &GaussHermiteQR{order: order, nodes: mat.NewDense(1, order, x), weights: w}
}

//Order returns the number of nodes of the rule
func (G *GaussHermiteQR) Order() int { return G.order }

//Dim returns 1
func (G *GaussHermiteQR) Dim() int { return 1 }

//Len returns the number of nodes of the rule
func (G *GaussHermiteQR) Len() int { return G.order }

//Nodes returns a 1 x order matrix with the nodes
func (G *GaussHermiteQR) Nodes() *mat.Dense { return G.nodes }

//Weights returns the weights of the rule
func (G *GaussHermiteQR) Weights() []float64 { return G.weights }

//TensorProductQR is the outer product of one-dimensional rules, one per axis.
//Nodes are listed in lexicographic order of the per-axis node indices, with the
//last axis running fastest, so summation order is fixed.
type TensorProductQR struct {
	rules   []Rule
	nodes   *mat.Dense
	weights []float64
}

//NewTensorProduct returns the tensor product of the given one-dimensional rules.
//It panics if a rule is not one-dimensional.
func NewTensorProduct(rules ...Rule) *TensorProductQR {
	D := len(rules)
	if D == 0 {
		panic("goHawp/quadrature: no rules given for a tensor product")
	}
	n := 1
	for i, r := range rules {
		if r.Dim() != 1 {
			panic(fmt.Sprintf("goHawp/quadrature: rule %d is %d-dimensional, tensor products take 1-dimensional rules", i, r.Dim()))
		}
		n *= r.Len()
	}
	T := &TensorProductQR{rules: rules, nodes: mat.NewDense(D, n, nil), weights: make([]float64, n)}
	idx := make([]int, D)
	for m := 0; m < n; m++ {
		w := 1.0
		for d, r := range rules {
			T.nodes.Set(d, m, r.Nodes().At(0, idx[d]))
			w *= r.Weights()[idx[d]]
		}
		T.weights[m] = w
		for d := D - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < rules[d].Len() {
				break
			}
			idx[d] = 0
		}
	}
	return T
}

//GaussHermiteProduct returns the tensor product of Gauss-Hermite rules
//with the given orders, one per axis.
func GaussHermiteProduct(orders ...int) *TensorProductQR {
	rules := make([]Rule, len(orders))
	for i, o := range orders {
		rules[i] = GaussHermite(o)
	}
	return NewTensorProduct(rules...)
}

//Dim returns the number of axes
func (T *TensorProductQR) Dim() int { return len(T.rules) }

//Len returns the number of nodes, the product of the lengths of the rules.
func (T *TensorProductQR) Len() int { return len(T.weights) }

//Nodes returns the D x Len() matrix of nodes
func (T *TensorProductQR) Nodes() *mat.Dense { return T.nodes }

//Weights returns the product weights
func (T *TensorProductQR) Weights() []float64 { return T.weights }

//Rule returns the one-dimensional rule used for axis d.
func (T *TensorProductQR) Rule(d int) Rule { return T.rules[d] }
