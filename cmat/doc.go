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

/*
Package cmat implements a Matrix type representing a dense complex matrix.
It is based on gonum's (gonum.org/v1/gonum/mat) CDense type, with the
operations that gonum only offers for real matrices (inverse, exponential)
obtained through the real 2n x 2n representation of a complex n x n matrix,
which gonum can factorize.

cmat.Matrix is used for the complex frame matrices Q and P of Hagedorn
wavepackets, for Hessians of the potentials and for the block coupling
matrix assembled by the innerproduct package.
*/
package cmat
