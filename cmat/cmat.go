/*
 * cmat.go, part of gohawp.
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
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//The main container. It embeds a gonum CDense, so it satisfies mat.CMatrix.
//Most methods put their result in the receiver, in the gonum style.
type Matrix struct {
	*mat.CDense
}

//CDense2Matrix wraps a gonum CDense without copying it.
func CDense2Matrix(A *mat.CDense) *Matrix {
	return &Matrix{A}
}

//NewMatrix returns a r x c Matrix backed by data, which is used directly
//(row-major). If data is nil a new, zero-filled slice is allocated.
func NewMatrix(r, c int, data []complex128) *Matrix {
	if data != nil && len(data) < r*c {
		panic(ErrNotEnoughElements)
	}
	if data == nil {
		data = make([]complex128, r*c)
	}
	return &Matrix{mat.NewCDense(r, c, data[:r*c])}
}

//Zeros returns a zero-filled r x c Matrix
func Zeros(r, c int) *Matrix {
	return NewMatrix(r, c, nil)
}

//Eye returns a span x span identity matrix.
func Eye(span int) *Matrix {
	A := Zeros(span, span)
	for i := 0; i < span; i++ {
		A.Set(i, i, 1)
	}
	return A
}

//Diag returns a square matrix with the given values in the diagonal.
func Diag(vals ...complex128) *Matrix {
	A := Zeros(len(vals), len(vals))
	for i, v := range vals {
		A.Set(i, i, v)
	}
	return A
}

//FromReal returns a complex copy of the real matrix A.
func FromReal(A mat.Matrix) *Matrix {
	r, c := A.Dims()
	F := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, complex(A.At(i, j), 0))
		}
	}
	return F
}

//Clone returns a deep copy of F.
func (F *Matrix) Clone() *Matrix {
	r, c := F.Dims()
	ret := Zeros(r, c)
	ret.Copy(F)
	return ret
}

//Copy puts a copy of A in the receiver. Panics if the dimensions differ.
func (F *Matrix) Copy(A mat.CMatrix) {
	r, c := F.sameDims(A)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, A.At(i, j))
		}
	}
}

func (F *Matrix) sameDims(A mat.CMatrix) (int, int) {
	r, c := F.Dims()
	ar, ac := A.Dims()
	if r != ar || c != ac {
		panic(ErrShape)
	}
	return r, c
}

//Add puts A+B in the receiver. The receiver can be A or B.
func (F *Matrix) Add(A, B mat.CMatrix) {
	r, c := F.sameDims(A)
	F.sameDims(B)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, A.At(i, j)+B.At(i, j))
		}
	}
}

//Sub puts A-B in the receiver. The receiver can be A or B.
func (F *Matrix) Sub(A, B mat.CMatrix) {
	r, c := F.sameDims(A)
	F.sameDims(B)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, A.At(i, j)-B.At(i, j))
		}
	}
}

//Scale puts alpha*A in the receiver.
func (F *Matrix) Scale(alpha complex128, A mat.CMatrix) {
	r, c := F.sameDims(A)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, alpha*A.At(i, j))
		}
	}
}

//AddScaled puts A+alpha*B in the receiver. This is the axpy used by the
//classical updates of the frame matrices (Q += h*P).
func (F *Matrix) AddScaled(A mat.CMatrix, alpha complex128, B mat.CMatrix) {
	r, c := F.sameDims(A)
	F.sameDims(B)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, A.At(i, j)+alpha*B.At(i, j))
		}
	}
}

//Mul puts the product A*B in the receiver. The receiver can be A or B,
//in which case a temporary is used.
func (F *Matrix) Mul(A, B mat.CMatrix) {
	ar, ac := A.Dims()
	br, bc := B.Dims()
	fr, fc := F.Dims()
	if ac != br || fr != ar || fc != bc {
		panic(ErrShape)
	}
	dst := F
	if F == A || F == B {
		dst = Zeros(fr, fc)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var s complex128
			for k := 0; k < ac; k++ {
				s += A.At(i, k) * B.At(k, j)
			}
			dst.Set(i, j, s)
		}
	}
	if dst != F {
		F.Copy(dst)
	}
}

//MulVec returns A*x. If dst is given and has the right length, the result is
//put there.
func MulVec(A mat.CMatrix, x []complex128, dst ...[]complex128) []complex128 {
	r, c := A.Dims()
	if len(x) != c {
		panic(ErrShape)
	}
	var ret []complex128
	if len(dst) > 0 && len(dst[0]) == r {
		ret = dst[0]
	} else {
		ret = make([]complex128, r)
	}
	for i := 0; i < r; i++ {
		var s complex128
		for k := 0; k < c; k++ {
			s += A.At(i, k) * x[k]
		}
		ret[i] = s
	}
	return ret
}

//Conj puts the elementwise complex conjugate of A in the receiver.
func (F *Matrix) Conj(A mat.CMatrix) {
	r, c := F.sameDims(A)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, cmplx.Conj(A.At(i, j)))
		}
	}
}

//Transpose returns a new Matrix with the transpose of F.
func (F *Matrix) Transpose() *Matrix {
	r, c := F.Dims()
	ret := Zeros(c, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(j, i, F.At(i, j))
		}
	}
	return ret
}

//Adjoint returns a new Matrix with the conjugate transpose of F.
func (F *Matrix) Adjoint() *Matrix {
	ret := F.Transpose()
	ret.Conj(ret)
	return ret
}

//Real returns the real part of F as a gonum Dense.
func (F *Matrix) Real() *mat.Dense {
	return F.part(func(z complex128) float64 { return real(z) })
}

//Imag returns the imaginary part of F as a gonum Dense.
func (F *Matrix) Imag() *mat.Dense {
	return F.part(func(z complex128) float64 { return imag(z) })
}

func (F *Matrix) part(f func(complex128) float64) *mat.Dense {
	r, c := F.Dims()
	ret := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(i, j, f(F.At(i, j)))
		}
	}
	return ret
}

//MaxAbs returns the largest absolute value among the elements of F.
func (F *Matrix) MaxAbs() float64 {
	r, c := F.Dims()
	var m float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m = math.Max(m, cmplx.Abs(F.At(i, j)))
		}
	}
	return m
}

//IsFinite returns false if any element of F has a NaN or infinite part.
func (F *Matrix) IsFinite() bool {
	r, c := F.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !Finite(F.At(i, j)) {
				return false
			}
		}
	}
	return true
}

//Finite returns true if neither part of z is NaN or infinite.
func Finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

//EqualApprox returns true if every element of A and B differs by at most tol.
func EqualApprox(A, B mat.CMatrix, tol float64) bool {
	r, c := A.Dims()
	br, bc := B.Dims()
	if r != br || c != bc {
		return false
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if cmplx.Abs(A.At(i, j)-B.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, 0, r)
	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			z := F.At(i, j)
			row[j] = fmt.Sprintf("%8.4f%+8.4fi", real(z), imag(z))
		}
		v = append(v, strings.Join(row, " "))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}

//Errors

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotEnoughElements = PanicMsg("goHawp/cmat: not enough elements in Matrix")
	ErrShape             = PanicMsg("goHawp/cmat: Dimension mismatch")
	ErrSquare            = PanicMsg("goHawp/cmat: Matrix must be square")
	ErrSingular          = PanicMsg("goHawp/cmat: Matrix is singular")
)
