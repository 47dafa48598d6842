/*
 * hagedorn.go, part of gohawp.
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

//Package propagator integrates Hagedorn wavepackets in time with the
//semiclassical splitting of Hagedorn and Lasser.
//
//Each step is a symmetric (Strang) splitting: a half step of free classical
//motion for the parameters, a kick with the quadratic expansion of the leading
//level, an exact exponential of the coupling of the coefficients through the
//local remainder of the potential, and a second classical half step.
//The scheme is second order in the time step.
package propagator

import (
	"fmt"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/innerproduct"
	"github.com/rmera/gohawp/quadrature"
	"gonum.org/v1/gonum/floats"
)

//Hagedorn is the semiclassical splitting propagator. It keeps no state
//between calls other than its configuration, so it can be reused for many
//packets.
type Hagedorn struct {
	rule quadrature.Rule
	opts *Options
}

//NewHagedorn returns a propagator that builds the coupling matrices with
//rule. If opts is nil, DefaultOptions are used.
func NewHagedorn(rule quadrature.Rule, opts *Options) *Hagedorn {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Hagedorn{rule: rule, opts: opts}
}

//Options returns the options of the propagator. Changes to them
//apply from the next step on.
func (H *Hagedorn) Options() *Options { return H.opts }

//Builder returns the inner product builder used for the coupling matrix,
//with the current Cpus option.
func (H *Hagedorn) Builder() *innerproduct.Builder {
	return innerproduct.NewBuilder(H.rule, H.opts.Cpus())
}

//Propagate advances P by one step of length dt under the potential V,
//updating the parameter sets (including the accumulated actions) and the
//coefficients in place. The optional t is the time at the beginning of
//the step, and is only used in error messages.
//A returned error means the state of P can't be trusted.
func (H *Hagedorn) Propagate(P *hawp.Packet, dt float64, V hawp.Potential, t ...float64) error {
	t0 := 0.0
	if len(t) > 0 {
		t0 = t[0]
	}
	if V.Dim() != P.Dim() || V.Levels() != P.Len() {
		return hawp.NewError(fmt.Sprintf("potential is %d-dimensional with %d levels, packet is %d-dimensional with %d components", V.Dim(), V.Levels(), P.Dim(), P.Len()), "Hagedorn.Propagate", true, hawp.ErrDimension)
	}
	params := P.Params()
	for _, ps := range params {
		drift(ps, 0.5*dt)
	}
	for _, ps := range params {
		kick(ps, dt, V)
	}
	if err := H.couple(P, dt, V, t0); err != nil {
		return hawp.ErrDecorate(err, "Hagedorn.Propagate")
	}
	for _, ps := range params {
		drift(ps, 0.5*dt)
	}
	return nil
}

//drift is the free classical flow for a time h:
//q += h p, Q += h P, S += h/2 p.p.
func drift(ps *hawp.ParameterSet, h float64) {
	floats.AddScaled(ps.Pos, h, ps.Mom)
	ps.Q.AddScaled(ps.Q, complex(h, 0), ps.P)
	ps.S += complex(0.5*h*floats.Dot(ps.Mom, ps.Mom), 0)
	ps.TrackSqrtDetQ()
}

//kick applies the quadratic expansion of the leading level at q for a time h:
//p -= h Re(grad U), P -= h Hess U Q, S -= h U.
func kick(ps *hawp.ParameterSet, h float64, V hawp.Potential) {
	v, g, hess := V.LeadingLevelTaylor(ps.Pos)
	for a := range ps.Mom {
		ps.Mom[a] -= h * real(g[a])
	}
	D := ps.Dim()
	HQ := cmat.Zeros(D, D)
	HQ.Mul(hess, ps.Q)
	ps.P.AddScaled(ps.P, complex(-h, 0), HQ)
	ps.S -= complex(h, 0) * v
}

//couple propagates the coefficients with the exponential of the coupling
//matrix of the local remainder. A single offset table is used to flatten
//and unflatten the coefficients.
func (H *Hagedorn) couple(P *hawp.Packet, dt float64, V hawp.Potential, t0 float64) error {
	F, err := H.Builder().Build(P, V.LocalRemainder)
	if err != nil {
		return hawp.ErrDecorate(err, "Hagedorn.couple")
	}
	t := t0 + dt
	if H.opts.CheckFinite() && !F.IsFinite() {
		return hawp.NewError(fmt.Sprintf("non-finite coupling matrix at t=%g", t), "Hagedorn.couple", true, hawp.ErrNonFinite)
	}
	if H.opts.SkipZeroCoupling() && F.MaxAbs() == 0 {
		return nil
	}
	offsets := P.Offsets()
	c := P.Flatten(offsets, nil)
	M := cmat.Zeros(offsets[len(offsets)-1], offsets[len(offsets)-1])
	M.Scale(complex(0, -dt/P.Eps()), F)
	c = cmat.ExpMulVec(M, c, c)
	if H.opts.CheckFinite() {
		for k, v := range c {
			if !cmat.Finite(v) {
				return hawp.NewError(fmt.Sprintf("non-finite coefficient after coupling step at t=%g (entry %d: %v)", t, k, v), "Hagedorn.couple", true, hawp.ErrNonFinite)
			}
		}
	}
	P.Unflatten(offsets, c)
	return nil
}

//Observer is called by Run with the step number, the time and the packet,
//before the first step and after each step. If it returns an error, the run stops
//and the error is returned.
type Observer func(step int, t float64, P *hawp.Packet) error

//Run propagates P for steps steps of length dt under V, calling obs (if not nil)
//before the first step and after every step. It returns at the first error.
func (H *Hagedorn) Run(P *hawp.Packet, V hawp.Potential, dt float64, steps int, obs Observer) error {
	t := 0.0
	if obs != nil {
		if err := obs(0, t, P); err != nil {
			return err
		}
	}
	for i := 1; i <= steps; i++ {
		if err := H.Propagate(P, dt, V, t); err != nil {
			return hawp.ErrDecorate(err, fmt.Sprintf("Hagedorn.Run (step %d)", i))
		}
		t = float64(i) * dt
		if obs != nil {
			if err := obs(i, t, P); err != nil {
				return err
			}
		}
	}
	return nil
}
