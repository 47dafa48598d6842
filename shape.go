/*
 * shape.go, part of gohawp.
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
	"slices"
)

//BasisShape is a finite set of D-dimensional multi-indices with a fixed
//enumeration order. The order defines how coefficients are stored.
//Shapes must be lower sets (if k is in the shape, so is k-e_d for every d with
//k_d>0) and must enumerate every multi-index after all of its lower neighbours.
//Shapes are immutable and shared by reference between components.
type BasisShape interface {
	Dim() int
	Size() int
	//At returns the n-th multi-index. The returned slice must not be modified.
	At(n int) []int
	//Index returns the position of the multi-index k in the enumeration,
	//and false if k is not part of the shape.
	Index(k []int) (int, bool)
}

//Shape is a BasisShape backed by an explicit, lexicographically sorted list
//of multi-indices. Lexicographic order lists each multi-index after its lower
//neighbours.
type Shape struct {
	dim     int
	indices [][]int
	lookup  map[string]int
}

//NewShape builds a Shape from the given multi-indices, which are copied and sorted.
//It returns an error if the indices don't all have dimension dim, have
//negative entries, are repeated, or don't form a lower set.
func NewShape(dim int, indices [][]int) (*Shape, error) {
	S := &Shape{dim: dim, indices: make([][]int, 0, len(indices)), lookup: make(map[string]int, len(indices))}
	for _, k := range indices {
		if len(k) != dim {
			return nil, NewError(fmt.Sprintf("multi-index %v doesn't have dimension %d", k, dim), "NewShape", true, ErrDimension)
		}
		for _, v := range k {
			if v < 0 {
				return nil, NewError(fmt.Sprintf("negative entry in multi-index %v", k), "NewShape", true, nil)
			}
		}
		S.indices = append(S.indices, slices.Clone(k))
	}
	slices.SortFunc(S.indices, func(a, b []int) int { return slices.Compare(a, b) })
	for n, k := range S.indices {
		key := mikey(k)
		if _, ok := S.lookup[key]; ok {
			return nil, NewError(fmt.Sprintf("repeated multi-index %v", k), "NewShape", true, nil)
		}
		S.lookup[key] = n
	}
	tmp := make([]int, dim)
	for _, k := range S.indices {
		copy(tmp, k)
		for d := range tmp {
			if tmp[d] == 0 {
				continue
			}
			tmp[d]--
			if _, ok := S.Index(tmp); !ok {
				return nil, NewError(fmt.Sprintf("shape is not a lower set: %v has no lower neighbour along axis %d", k, d), "NewShape", true, nil)
			}
			tmp[d]++
		}
	}
	return S, nil
}

//mikey returns a map key for the multi-index k
func mikey(k []int) string {
	b := make([]byte, 0, 2*len(k))
	for _, v := range k {
		b = binary.AppendUvarint(b, uint64(v))
	}
	return string(b)
}

//Dim returns the dimension of the multi-indices in the shape.
func (S *Shape) Dim() int { return S.dim }

//Size returns the number of multi-indices in the shape.
func (S *Shape) Size() int { return len(S.indices) }

//At returns the n-th multi-index of the shape.
func (S *Shape) At(n int) []int { return S.indices[n] }

//Index returns the position of k in the shape, and whether k was found at all.
func (S *Shape) Index(k []int) (int, bool) {
	if len(k) != S.dim {
		return -1, false
	}
	n, ok := S.lookup[mikey(k)]
	if !ok {
		return -1, false
	}
	return n, true
}

//boxShape enumerates the box 0<=k_d<limits[d] and keeps the indices accepted by keep.
func boxShape(limits []int, keep func(k []int) bool) *Shape {
	dim := len(limits)
	total := 1
	for _, l := range limits {
		if l <= 0 {
			panic(fmt.Sprintf("goHawp/BasisShape: limits must be positive, got %v", limits))
		}
		total *= l
	}
	indices := make([][]int, 0, total)
	k := make([]int, dim)
	for n := 0; n < total; n++ {
		if keep(k) {
			indices = append(indices, slices.Clone(k))
		}
		//odometer, last axis fastest
		for d := dim - 1; d >= 0; d-- {
			k[d]++
			if k[d] < limits[d] {
				break
			}
			k[d] = 0
		}
	}
	S, err := NewShape(dim, indices)
	if err != nil {
		panic(err.Error()) //the box enumerations below are always lower sets
	}
	return S
}

//HyperCubic returns the shape {k : 0 <= k_d < limits[d]}. Its dimension is
//the number of limits given.
func HyperCubic(limits ...int) *Shape {
	return boxShape(limits, func([]int) bool { return true })
}

//Hyperbolic returns the hyperbolic cut shape {k : prod_d (1+k_d) <= sparsity}
//in dim dimensions.
func Hyperbolic(dim, sparsity int) *Shape {
	limits := make([]int, dim)
	for i := range limits {
		limits[i] = sparsity
	}
	return boxShape(limits, func(k []int) bool {
		p := 1
		for _, v := range k {
			p *= 1 + v
		}
		return p <= sparsity
	})
}

//Extend returns the shape formed by S and all the neighbours k+e_d of its
//multi-indices. It is a lower set whenever S is.
func Extend(S BasisShape) *Shape {
	dim := S.Dim()
	indices := make([][]int, 0, S.Size()*(dim+1))
	seen := make(map[string]bool, S.Size()*(dim+1))
	add := func(k []int) {
		key := mikey(k)
		if !seen[key] {
			seen[key] = true
			indices = append(indices, slices.Clone(k))
		}
	}
	tmp := make([]int, dim)
	for n := 0; n < S.Size(); n++ {
		k := S.At(n)
		add(k)
		for d := 0; d < dim; d++ {
			copy(tmp, k)
			tmp[d]++
			add(tmp)
		}
	}
	E, err := NewShape(dim, indices)
	if err != nil {
		panic(err.Error())
	}
	return E
}
