/*
 * doc.go, part of gohawp.
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

/*Package hawp is the main package of the goHawp library. It provides Hagedorn
wavepackets: the Gaussian parameter sets (q, p, Q, P, S), the basis shapes,
the packets themselves (scalar, homogeneous and inhomogeneous) and the
potentials they move in.


	**goHawp Capabilities**

    Hagedorn basis functions of any dimension, evaluated with the three-term
	recursion, on hypercubic, hyperbolic or user-defined basis shapes.

    Scalar, homogeneous (one parameter set for all the levels) and
	inhomogeneous (one parameter set per level) wavepackets.

    Scalar and matrix-valued potentials, split into a leading level, whose
	quadratic expansion moves the parameters, and a local remainder.

    Quadrature rules (Gauss-Hermite and their tensor products) in the
	quadrature sub-package, and block inner products in innerproduct.

    Time propagation with the semiclassical splitting of Hagedorn and Lasser
	(propagator sub-package), which is second order in the time step.

    Norm, kinetic and potential energies (observables), compressed
	trajectory records (record) and plots (hawplot).

Complex matrices are handled by the cmat sub-package, on top of gonum.

*/
package hawp
