/*
 * observables.go, part of gohawp.
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

//Package observables computes expectation values of Hagedorn wavepackets:
//norm, kinetic and potential energy.
package observables

import (
	"fmt"
	"math"
	"math/cmplx"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/innerproduct"
)

//Summary contains the observables of a packet at one time.
type Summary struct {
	Norm      float64
	Kinetic   float64
	Potential float64
}

//Total returns the total energy
func (s Summary) Total() float64 { return s.Kinetic + s.Potential }

func (s Summary) String() string {
	return fmt.Sprintf("norm: %.10f ekin: %.10f epot: %.10f etot: %.10f", s.Norm, s.Kinetic, s.Potential, s.Total())
}

//Norm returns the norm of the packet.
func Norm(P *hawp.Packet) float64 {
	return P.Norm()
}

//KineticEnergy returns <psi| -eps^2/2 Laplacian |psi>, summed over the components.
//
//It uses the ladder form of the momentum operator,
//-i eps grad = p + sqrt(eps/2)(P A^+ + conj(P) A), where A^+ and A raise and lower
//the multi-indices, so no quadrature is needed. The result is exact for
//the (orthonormal) Hagedorn basis.
func KineticEnergy(P *hawp.Packet) float64 {
	var ekin float64
	for _, c := range P.Components() {
		ps := c.Params()
		ext := hawp.Extend(c.Shape)
		D := ps.Dim()
		s := complex(math.Sqrt(0.5*P.Eps()), 0)
		k := make([]int, D)
		for a := 0; a < D; a++ {
			for m := 0; m < ext.Size(); m++ {
				copy(k, ext.At(m))
				var w complex128
				if n, ok := c.Shape.Index(k); ok {
					w = complex(ps.Mom[a], 0) * c.Coefficients[n]
				}
				for d := 0; d < D; d++ {
					Pad := ps.P.At(a, d)
					if k[d] > 0 {
						//raising from m-e_d
						k[d]--
						if n, ok := c.Shape.Index(k); ok {
							w += s * Pad * complex(math.Sqrt(float64(k[d]+1)), 0) * c.Coefficients[n]
						}
						k[d]++
					}
					//lowering from m+e_d
					k[d]++
					if n, ok := c.Shape.Index(k); ok {
						w += s * cmplx.Conj(Pad) * complex(math.Sqrt(float64(k[d])), 0) * c.Coefficients[n]
					}
					k[d]--
				}
				ekin += 0.5 * real(w*cmplx.Conj(w))
			}
		}
	}
	return ekin
}

//PotentialEnergy returns Re <psi|V|psi>, with the matrix elements of the
//full potential built by quadrature with B.
func PotentialEnergy(P *hawp.Packet, V hawp.Potential, B *innerproduct.Builder) (float64, error) {
	F, err := B.Build(P, func(x, q []float64, i, j int) complex128 { return V.Evaluate(x, i, j) })
	if err != nil {
		return 0, hawp.ErrDecorate(err, "PotentialEnergy")
	}
	offsets := P.Offsets()
	c := P.Flatten(offsets, nil)
	Fc := cmat.MulVec(F, c)
	var e complex128
	for k, v := range c {
		e += cmplx.Conj(v) * Fc[k]
	}
	return real(e), nil
}

//Energies returns the norm, kinetic and potential energies of P.
func Energies(P *hawp.Packet, V hawp.Potential, B *innerproduct.Builder) (Summary, error) {
	epot, err := PotentialEnergy(P, V, B)
	if err != nil {
		return Summary{}, hawp.ErrDecorate(err, "Energies")
	}
	return Summary{Norm: Norm(P), Kinetic: KineticEnergy(P), Potential: epot}, nil
}
