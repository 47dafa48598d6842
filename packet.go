/*
 * packet.go, part of gohawp.
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
)

//Kind tells how the components of a Packet relate to their parameter sets.
type Kind int

const (
	//Scalar packets have a single component.
	Scalar Kind = iota
	//Homogeneous packets have N components sharing one parameter set.
	Homogeneous
	//Inhomogeneous packets have N components, each with its own parameter set.
	Inhomogeneous
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Homogeneous:
		return "homogeneous"
	case Inhomogeneous:
		return "inhomogeneous"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

//Coefficients are the complex amplitudes of a component, in the
//enumeration order of its BasisShape.
type Coefficients []complex128

//Norm2 returns the sum of the squared moduli of the coefficients.
func (c Coefficients) Norm2() float64 {
	var n float64
	for _, v := range c {
		n += real(v * cmplx.Conj(v))
	}
	return n
}

//Component is one level of a wavepacket. It owns its coefficients, and
//references a shape and a parameter set, which may be shared.
type Component struct {
	Shape        BasisShape
	Coefficients Coefficients
	params       *ParameterSet
}

//Params returns the parameter set of the component. For Homogeneous packets
//every component returns the same pointer.
func (c *Component) Params() *ParameterSet {
	return c.params
}

//Packet is a Hagedorn wavepacket with one or more components and a
//semiclassical parameter eps.
type Packet struct {
	eps    float64
	kind   Kind
	comps  []*Component
	params []*ParameterSet
}

//NewScalar returns a single-component packet. The parameter set and the
//coefficients are used directly, not copied.
func NewScalar(eps float64, params *ParameterSet, shape BasisShape, coefs Coefficients) (*Packet, error) {
	P, err := newPacket(Scalar, eps, []*ParameterSet{params}, []BasisShape{shape}, []Coefficients{coefs})
	if err != nil {
		return nil, ErrDecorate(err, "NewScalar")
	}
	return P, nil
}

//NewHomogeneous returns a packet whose len(shapes) components share the parameter set params.
func NewHomogeneous(eps float64, params *ParameterSet, shapes []BasisShape, coefs []Coefficients) (*Packet, error) {
	ps := make([]*ParameterSet, len(shapes))
	for i := range ps {
		ps[i] = params
	}
	P, err := newPacket(Homogeneous, eps, ps, shapes, coefs)
	if err != nil {
		return nil, ErrDecorate(err, "NewHomogeneous")
	}
	return P, nil
}

//NewInhomogeneous returns a packet where the i-th component has the parameter
//set params[i]. The parameter sets must be distinct.
func NewInhomogeneous(eps float64, params []*ParameterSet, shapes []BasisShape, coefs []Coefficients) (*Packet, error) {
	seen := make(map[*ParameterSet]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return nil, NewError("inhomogeneous components can't share a parameter set", "NewInhomogeneous", true, nil)
		}
		seen[p] = true
	}
	P, err := newPacket(Inhomogeneous, eps, params, shapes, coefs)
	if err != nil {
		return nil, ErrDecorate(err, "NewInhomogeneous")
	}
	return P, nil
}

func newPacket(kind Kind, eps float64, params []*ParameterSet, shapes []BasisShape, coefs []Coefficients) (*Packet, error) {
	if !(eps > 0) {
		return nil, NewError(fmt.Sprintf("eps must be positive, got %g", eps), "newPacket", true, nil)
	}
	N := len(shapes)
	if N == 0 || len(params) != N || len(coefs) != N {
		return nil, NewError(fmt.Sprintf("%d shapes, %d parameter sets and %d coefficient vectors given", N, len(params), len(coefs)), "newPacket", true, ErrDimension)
	}
	P := &Packet{eps: eps, kind: kind, comps: make([]*Component, N)}
	for i := 0; i < N; i++ {
		if params[i] == nil || shapes[i] == nil {
			return nil, NewError(fmt.Sprintf("nil parameter set or shape for component %d", i), "newPacket", true, nil)
		}
		D := params[i].Dim()
		if shapes[i].Dim() != D || params[0].Dim() != D {
			return nil, NewError(fmt.Sprintf("component %d: shape dimension %d, parameter dimension %d", i, shapes[i].Dim(), D), "newPacket", true, ErrDimension)
		}
		if len(coefs[i]) != shapes[i].Size() {
			return nil, NewError(fmt.Sprintf("component %d: %d coefficients for a shape of size %d", i, len(coefs[i]), shapes[i].Size()), "newPacket", true, ErrDimension)
		}
		P.comps[i] = &Component{Shape: shapes[i], Coefficients: coefs[i], params: params[i]}
		if i == 0 || kind == Inhomogeneous {
			P.params = append(P.params, params[i])
		}
	}
	return P, nil
}

//Eps returns the semiclassical parameter of the packet.
func (P *Packet) Eps() float64 { return P.eps }

//Kind returns the kind of packet
func (P *Packet) Kind() Kind { return P.kind }

//Dim returns the spatial dimension
func (P *Packet) Dim() int { return P.params[0].Dim() }

//Len returns the number of components
func (P *Packet) Len() int { return len(P.comps) }

//Component returns the i-th component.
func (P *Packet) Component(i int) *Component { return P.comps[i] }

//Components returns the components in order. The slice must not be modified.
func (P *Packet) Components() []*Component { return P.comps }

//Params returns the distinct parameter sets of the packet, in component
//order: one for Scalar and Homogeneous packets, one per component otherwise.
func (P *Packet) Params() []*ParameterSet { return P.params }

//Actions returns the accumulated action of each parameter set, in the order of Params.
func (P *Packet) Actions() []complex128 {
	ret := make([]complex128, len(P.params))
	for i, p := range P.params {
		ret[i] = p.S
	}
	return ret
}

//Size returns the total number of coefficients.
func (P *Packet) Size() int {
	var s int
	for _, c := range P.comps {
		s += len(c.Coefficients)
	}
	return s
}

//Offsets returns the offset table of the packet: the coefficients of component i
//occupy positions offsets[i] to offsets[i+1]-1 of the flattened vector.
//len(offsets) is Len()+1 and offsets[Len()] is Size().
func (P *Packet) Offsets() []int {
	off := make([]int, len(P.comps)+1)
	for i, c := range P.comps {
		off[i+1] = off[i] + len(c.Coefficients)
	}
	return off
}

//Flatten copies the coefficients of all components, in component order, into
//one vector, following the offset table offsets. If dst has the right length
//it is used.
func (P *Packet) Flatten(offsets []int, dst []complex128) []complex128 {
	if len(dst) != offsets[len(offsets)-1] {
		dst = make([]complex128, offsets[len(offsets)-1])
	}
	for i, c := range P.comps {
		copy(dst[offsets[i]:offsets[i+1]], c.Coefficients)
	}
	return dst
}

//Unflatten copies c back into the coefficients of each component, using
//the same offset table given to Flatten.
func (P *Packet) Unflatten(offsets []int, c []complex128) {
	for i, comp := range P.comps {
		copy(comp.Coefficients, c[offsets[i]:offsets[i+1]])
	}
}

//Norm returns the L2 norm of the packet, sqrt(sum_k |c_k|^2) over all
//components. The Hagedorn basis is orthonormal, so this is the norm of the
//wavefunction.
func (P *Packet) Norm() float64 {
	var n float64
	for _, c := range P.comps {
		n += c.Coefficients.Norm2()
	}
	return math.Sqrt(n)
}

//Clone returns a deep copy of the packet. Shapes are shared, parameter sets
//and coefficients are copied, keeping the sharing pattern of the original.
func (P *Packet) Clone() *Packet {
	R := &Packet{eps: P.eps, kind: P.kind, comps: make([]*Component, len(P.comps))}
	copies := make(map[*ParameterSet]*ParameterSet, len(P.params))
	for _, p := range P.params {
		c := p.Clone()
		copies[p] = c
		R.params = append(R.params, c)
	}
	for i, c := range P.comps {
		R.comps[i] = &Component{
			Shape:        c.Shape,
			Coefficients: append(Coefficients(nil), c.Coefficients...),
			params:       copies[c.params],
		}
	}
	return R
}
