/*
 * linalg.go, part of gohawp.
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

package cmat

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

//Gonum only factorizes real matrices. The complex n x n matrix A+iB is
//represented by the real 2n x 2n matrix
//
//	| A  -B |
//	| B   A |
//
//This map is an algebra homomorphism, so products, inverses and
//exponentials can be computed on the real side and mapped back.

//Realify returns the real 2n x 2m representation of F.
func (F *Matrix) Realify() *mat.Dense {
	r, c := F.Dims()
	ret := mat.NewDense(2*r, 2*c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			z := F.At(i, j)
			ret.Set(i, j, real(z))
			ret.Set(i+r, j+c, real(z))
			ret.Set(i, j+c, -imag(z))
			ret.Set(i+r, j, imag(z))
		}
	}
	return ret
}

//Complexify returns the complex matrix represented by the real 2n x 2m matrix R,
//the inverse of Realify. Only the left blocks of R are read.
func Complexify(R mat.Matrix) *Matrix {
	rr, rc := R.Dims()
	if rr%2 != 0 || rc%2 != 0 {
		panic(ErrShape)
	}
	r, c := rr/2, rc/2
	ret := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(i, j, complex(R.At(i, j), R.At(i+r, j)))
		}
	}
	return ret
}

//RealifyVec returns the real vector [Re(x); Im(x)].
func RealifyVec(x []complex128) *mat.VecDense {
	n := len(x)
	ret := mat.NewVecDense(2*n, nil)
	for i, v := range x {
		ret.SetVec(i, real(v))
		ret.SetVec(i+n, imag(v))
	}
	return ret
}

//ComplexifyVec puts in dst the complex vector represented by v, the inverse of RealifyVec.
func ComplexifyVec(v mat.Vector, dst []complex128) []complex128 {
	n := v.Len() / 2
	if len(dst) != n {
		dst = make([]complex128, n)
	}
	for i := range dst {
		dst[i] = complex(v.AtVec(i), v.AtVec(i+n))
	}
	return dst
}

//Inverse puts the inverse of A in the receiver. It returns an error if A is singular
//or too ill-conditioned for gonum to invert.
func (F *Matrix) Inverse(A *Matrix) error {
	r, c := A.Dims()
	if r != c {
		panic(ErrSquare)
	}
	var inv mat.Dense
	if err := inv.Inverse(A.Realify()); err != nil {
		return err
	}
	F.Copy(Complexify(&inv))
	return nil
}

//Exp puts the matrix exponential of A in the receiver. It uses gonum's
//scaling and squaring Pade approximant on the real representation of A.
func (F *Matrix) Exp(A *Matrix) {
	r, c := A.Dims()
	if r != c {
		panic(ErrSquare)
	}
	var e mat.Dense
	e.Exp(A.Realify())
	F.Copy(Complexify(&e))
}

//ExpMulVec returns exp(A)*x, computed entirely in the real representation so
//no intermediate complex matrix is needed. If dst is given and has the right
//length, the result is put there.
func ExpMulVec(A *Matrix, x []complex128, dst ...[]complex128) []complex128 {
	r, c := A.Dims()
	if r != c {
		panic(ErrSquare)
	}
	if len(x) != c {
		panic(ErrShape)
	}
	var e mat.Dense
	e.Exp(A.Realify())
	var y mat.VecDense
	y.MulVec(&e, RealifyVec(x))
	var d []complex128
	if len(dst) > 0 {
		d = dst[0]
	}
	return ComplexifyVec(&y, d)
}

//Det returns the determinant of the square matrix A, from an LU
//factorization with partial pivoting.
func Det(A mat.CMatrix) complex128 {
	n, c := A.Dims()
	if n != c {
		panic(ErrSquare)
	}
	lu := make([][]complex128, n)
	for i := range lu {
		lu[i] = make([]complex128, n)
		for j := range lu[i] {
			lu[i][j] = A.At(i, j)
		}
	}
	det := complex(1, 0)
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if cmplx.Abs(lu[i][k]) > cmplx.Abs(lu[p][k]) {
				p = i
			}
		}
		if lu[p][k] == 0 {
			return 0
		}
		if p != k {
			lu[p], lu[k] = lu[k], lu[p]
			det = -det
		}
		det *= lu[k][k]
		for i := k + 1; i < n; i++ {
			f := lu[i][k] / lu[k][k]
			for j := k + 1; j < n; j++ {
				lu[i][j] -= f * lu[k][j]
			}
		}
	}
	return det
}
