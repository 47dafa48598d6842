package hawp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/rmera/gohawp/cmat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestShapes(Te *testing.T) {
	H := HyperCubic(2, 3)
	require.Equal(Te, 6, H.Size())
	assert.Equal(Te, []int{0, 0}, H.At(0))
	assert.Equal(Te, []int{0, 2}, H.At(2))
	assert.Equal(Te, []int{1, 0}, H.At(3))
	n, ok := H.Index([]int{1, 2})
	assert.True(Te, ok)
	assert.Equal(Te, 5, n)
	_, ok = H.Index([]int{2, 0})
	assert.False(Te, ok)

	//(1+k1)(1+k2)<=4: 00 01 02 03 10 11 20 30
	Y := Hyperbolic(2, 4)
	assert.Equal(Te, 8, Y.Size())
	_, ok = Y.Index([]int{1, 2})
	assert.False(Te, ok)

	E := Extend(HyperCubic(2))
	assert.Equal(Te, 3, E.Size())
	E2 := Extend(Y)
	for _, k := range [][]int{{4, 0}, {0, 4}, {2, 1}, {1, 2}, {3, 1}} {
		_, ok := E2.Index(k)
		assert.True(Te, ok, "%v", k)
	}
	for n := 0; n < E2.Size(); n++ {
		k := E2.At(n)
		for d := range k {
			if k[d] == 0 {
				continue
			}
			k2 := append([]int(nil), k...)
			k2[d]--
			m, ok := E2.Index(k2)
			assert.True(Te, ok)
			assert.Less(Te, m, n)
		}
	}

	_, err := NewShape(2, [][]int{{0, 0}, {0, 2}})
	assert.Error(Te, err, "not a lower set")
	_, err = NewShape(2, [][]int{{0, 0}, {0, 0}})
	assert.Error(Te, err, "repeated")
	_, err = NewShape(2, [][]int{{0, 0}, {1}})
	assert.Error(Te, err, "wrong dimension")
	S, err := NewShape(1, [][]int{{1}, {0}, {2}})
	require.NoError(Te, err)
	assert.Equal(Te, []int{0}, S.At(0))
	assert.Panics(Te, func() { HyperCubic(2, 0) })
}

func TestParameterSet(Te *testing.T) {
	ps := Standard([]float64{1, 2}, []float64{0, -1})
	assert.True(Te, ps.Compatible(1e-14))
	assert.Equal(Te, complex128(1), ps.SqrtDetQ())
	ps.P.Set(0, 1, 0.5)
	assert.False(Te, ps.Compatible(1e-10))

	_, err := NewParameterSet([]float64{0}, []float64{0, 1}, cmat.Eye(1), cmat.Eye(1), 0)
	assert.True(Te, errors.Is(err, ErrDimension))
	_, err = NewParameterSet([]float64{0}, []float64{0}, cmat.Zeros(1, 1), cmat.Eye(1), 0)
	assert.True(Te, errors.Is(err, ErrSingularFrame))

	//Q=exp(i theta) once around the origin. The tracked square root
	//has to come back as -1.
	Q := cmat.Diag(1)
	q, err := NewParameterSet([]float64{0}, []float64{0}, Q, cmat.Diag(1i), 0)
	require.NoError(Te, err)
	for i := 1; i <= 100; i++ {
		q.Q.Set(0, 0, cmplx.Exp(complex(0, 2*math.Pi*float64(i)/100)))
		q.TrackSqrtDetQ()
	}
	assert.InDelta(Te, 0, cmplx.Abs(q.SqrtDetQ()+1), 1e-12)

	c := q.Clone()
	c.Pos[0] = 5
	c.Q.Set(0, 0, 3)
	assert.Equal(Te, 0.0, q.Pos[0])
	assert.NotEqual(Te, complex128(3), q.Q.At(0, 0))
	assert.Equal(Te, q.SqrtDetQ(), c.SqrtDetQ())
}

func TestPacket(Te *testing.T) {
	ps := Standard([]float64{0}, []float64{0})
	shapes := []BasisShape{HyperCubic(3), HyperCubic(2)}
	P, err := NewHomogeneous(0.1, ps, shapes, []Coefficients{{1, 2, 3}, {4i, 5i}})
	require.NoError(Te, err)
	assert.Equal(Te, Homogeneous, P.Kind())
	assert.Len(Te, P.Params(), 1)
	assert.Equal(Te, []int{0, 3, 5}, P.Offsets())
	off := P.Offsets()
	c := P.Flatten(off, nil)
	assert.Equal(Te, []complex128{1, 2, 3, 4i, 5i}, c)
	for i := range c {
		c[i] *= 2
	}
	P.Unflatten(off, c)
	assert.Equal(Te, Coefficients{8i, 10i}, P.Component(1).Coefficients)
	assert.InDelta(Te, 2*math.Sqrt(1+4+9+16+25), P.Norm(), 1e-12)

	C := P.Clone()
	C.Component(0).Coefficients[0] = 0
	C.Params()[0].Pos[0] = 1
	assert.Equal(Te, complex128(2), P.Component(0).Coefficients[0])
	assert.Equal(Te, 0.0, P.Params()[0].Pos[0])
	assert.Same(Te, C.Component(0).Params(), C.Component(1).Params())

	_, err = NewHomogeneous(0.1, ps, shapes, []Coefficients{{1, 2}, {4i, 5i}})
	assert.True(Te, errors.Is(err, ErrDimension))
	_, err = NewInhomogeneous(0.1, []*ParameterSet{ps, ps}, shapes, []Coefficients{{1, 2, 3}, {4i, 5i}})
	assert.Error(Te, err)
	_, err = NewScalar(0, ps, shapes[0], Coefficients{1, 2, 3})
	assert.Error(Te, err)
	_, err = NewScalar(0.1, ps, HyperCubic(2, 2), Coefficients{1, 2, 3, 4})
	assert.True(Te, errors.Is(err, ErrDimension))
}

//The basis is orthonormal for any compatible Q and P. Checked with a
//Riemann sum on a fine grid.
func TestBasisOrthonormal(Te *testing.T) {
	eps := 0.3
	Q := complex(0.8, 0.6)
	ps, err := NewParameterSet([]float64{0.4}, []float64{-1}, cmat.Diag(Q), cmat.Diag(1i/cmplx.Conj(Q)), 0)
	require.NoError(Te, err)
	require.True(Te, ps.Compatible(1e-14))
	shape := HyperCubic(6)
	h := 0.002
	n := int(16 / h)
	x := make([]float64, n)
	for i := range x {
		x[i] = -8 + h*float64(i)
	}
	B, err := EvaluateBasis(eps, ps, shape, mat.NewDense(1, n, x))
	require.NoError(Te, err)
	for k := 0; k < 6; k++ {
		for l := 0; l < 6; l++ {
			var s complex128
			for m := 0; m < n; m++ {
				s += cmplx.Conj(B.At(k, m)) * B.At(l, m)
			}
			s *= complex(h, 0)
			want := complex(0, 0)
			if k == l {
				want = 1
			}
			assert.InDelta(Te, 0, cmplx.Abs(s-want), 1e-9, "<%d|%d>", k, l)
		}
	}
	//the ground state in closed form
	dx := 1.3 - 0.4
	phi0 := complex(math.Pow(math.Pi*eps, -0.25), 0) / ps.SqrtDetQ() *
		cmplx.Exp(complex(0, 1/eps)*(0.5*complex(dx*dx, 0)*(1i/cmplx.Conj(Q))/Q+complex(-dx, 0)))
	got, err := EvaluateBasis(eps, ps, shape, mat.NewDense(1, 1, []float64{1.3}))
	require.NoError(Te, err)
	assert.InDelta(Te, 0, cmplx.Abs(got.At(0, 0)-phi0), 1e-14)
}

func TestPacketEvaluate(Te *testing.T) {
	ps := Standard([]float64{0, 0}, []float64{1, 0})
	ps.S = 0.2
	P, err := NewScalar(0.1, ps, HyperCubic(2, 2), Coefficients{1, 0, 0, 0})
	require.NoError(Te, err)
	nodes := mat.NewDense(2, 2, []float64{0, 0.5, 0, -0.5})
	V, err := P.Evaluate(nodes)
	require.NoError(Te, err)
	B, err := P.EvaluateBasis(0, nodes)
	require.NoError(Te, err)
	phase := cmplx.Exp(complex(0, 2))
	assert.InDelta(Te, 0, cmplx.Abs(V.At(0, 1)-phase*B.At(0, 1)), 1e-14)
	assert.InDelta(Te, 1/math.Sqrt(math.Pi*0.1), real(B.At(0, 0)), 1e-12)
}

func TestPotentials(Te *testing.T) {
	lead := LeadingLevel{
		V:    func(x []float64) complex128 { return complex(math.Cos(x[0]), 0) },
		Grad: func(x []float64) []complex128 { return []complex128{complex(-math.Sin(x[0]), 0)} },
		Hess: func(x []float64) *cmat.Matrix { return cmat.Diag(complex(-math.Cos(x[0]), 0)) },
	}
	S := NewScalarPotential(1, lead.V, lead.Grad, lead.Hess)
	q := []float64{0.3}
	//the remainder vanishes to third order at q
	for _, h := range []float64{1e-2, 1e-3} {
		r := S.LocalRemainder([]float64{q[0] + h}, q, 0, 0)
		assert.InDelta(Te, 0, cmplx.Abs(r), 0.2*h*h*h)
	}
	assert.Equal(Te, complex(math.Cos(0.3), 0), S.Evaluate(q, 0, 0))

	off := func(x []float64) complex128 { return complex(x[0], 0) }
	M, err := NewMatrixPotential(1, [][]Func{{lead.V, off}, {off, lead.V}}, lead)
	require.NoError(Te, err)
	assert.Equal(Te, 2, M.Levels())
	assert.Equal(Te, complex(0.7, 0), M.LocalRemainder([]float64{0.7}, q, 0, 1))
	assert.Equal(Te, S.LocalRemainder([]float64{0.7}, q, 0, 0), M.LocalRemainder([]float64{0.7}, q, 1, 1))
	_, err = NewMatrixPotential(1, [][]Func{{lead.V, off}}, lead)
	assert.True(Te, errors.Is(err, ErrDimension))
	_, err = NewMatrixPotential(1, [][]Func{{lead.V}}, LeadingLevel{V: lead.V})
	assert.Error(Te, err)
}

//The derivatives of the leading level are computed once per expansion point,
//however many nodes are evaluated about it.
func TestRemainderReusesExpansion(Te *testing.T) {
	calls := 0
	V := NewScalarPotential(1,
		func(x []float64) complex128 { return complex(math.Cos(x[0]), 0) },
		func(x []float64) []complex128 { calls++; return []complex128{complex(-math.Sin(x[0]), 0)} },
		func(x []float64) *cmat.Matrix { return cmat.Diag(complex(-math.Cos(x[0]), 0)) })
	q := []float64{0.3}
	for n := 0; n < 50; n++ {
		x := []float64{0.3 + 0.01*float64(n)}
		d := x[0] - q[0]
		want := math.Cos(x[0]) - (math.Cos(q[0]) - math.Sin(q[0])*d - 0.5*math.Cos(q[0])*d*d)
		assert.InDelta(Te, want, real(V.LocalRemainder(x, q, 0, 0)), 1e-14)
	}
	assert.Equal(Te, 1, calls)
	//a moved expansion point is noticed
	q[0] = 0.5
	V.LocalRemainder([]float64{0.6}, q, 0, 0)
	assert.Equal(Te, 2, calls)
	for i := 0; i < 2*maxExpansions; i++ {
		V.LocalRemainder([]float64{0}, []float64{float64(i)}, 0, 0)
	}
	assert.LessOrEqual(Te, len(V.cache.m), maxExpansions)
}

func TestErrors(Te *testing.T) {
	err := NewError("bad thing", "inner", true, ErrNonFinite)
	wrapped := ErrDecorate(err, "outer")
	assert.True(Te, errors.Is(wrapped, ErrNonFinite))
	assert.Equal(Te, "goHawp: bad thing (inner <- outer)", wrapped.Error())
	var e Error
	require.True(Te, errors.As(wrapped, &e))
	assert.True(Te, e.Critical())
	plain := errors.New("plain")
	assert.Equal(Te, plain, ErrDecorate(plain, "x"))

	//copies don't share decorations
	a := ErrDecorate(wrapped, "a")
	b := ErrDecorate(wrapped, "b")
	assert.Equal(Te, "goHawp: bad thing (inner <- outer <- a)", a.Error())
	assert.Equal(Te, "goHawp: bad thing (inner <- outer <- b)", b.Error())
	assert.Equal(Te, "goHawp: bad thing (inner <- outer)", wrapped.Error())

	//an Error wrapped in another error is left alone, with its wrapper
	outer := fmt.Errorf("context: %w", wrapped)
	got := ErrDecorate(outer, "x")
	assert.Same(Te, outer, got)
	assert.Equal(Te, "context: goHawp: bad thing (inner <- outer)", got.Error())
	assert.True(Te, errors.Is(got, ErrNonFinite))

	pe := &Error{message: "ptr", deco: []string{"inner"}}
	assert.Equal(Te, "goHawp: ptr (inner <- outer)", ErrDecorate(pe, "outer").Error())
}
