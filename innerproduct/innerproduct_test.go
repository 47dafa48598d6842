package innerproduct

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/quadrature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//diagParams returns a parameter set with diagonal Q and the matching
//P = i conj(Q)^-1, which satisfies the symplectic relations.
func diagParams(Te *testing.T, q, p []float64, Qd ...complex128) *hawp.ParameterSet {
	Pd := make([]complex128, len(Qd))
	for i, v := range Qd {
		Pd[i] = 1i / cmplx.Conj(v)
	}
	ps, err := hawp.NewParameterSet(q, p, cmat.Diag(Qd...), cmat.Diag(Pd...), 0)
	require.NoError(Te, err)
	require.True(Te, ps.Compatible(1e-12))
	return ps
}

func one(x, q []float64, i, j int) complex128 { return 1 }

func TestOrthonormality(Te *testing.T) {
	ps := diagParams(Te, []float64{0.3, -1}, []float64{0.5, 0.2}, 1+0.5i, 0.8)
	shapes := []hawp.BasisShape{hawp.HyperCubic(4, 4), hawp.Hyperbolic(2, 5)}
	coefs := []hawp.Coefficients{make(hawp.Coefficients, shapes[0].Size()), make(hawp.Coefficients, shapes[1].Size())}
	P, err := hawp.NewHomogeneous(0.1, ps, shapes, coefs)
	require.NoError(Te, err)
	B := NewBuilder(quadrature.GaussHermiteProduct(6, 6), 1)
	F, err := B.Build(P, one)
	require.NoError(Te, err)
	r, c := F.Dims()
	require.Equal(Te, P.Size(), r)
	require.Equal(Te, P.Size(), c)
	//<phi_k|phi_l> within each diagonal block.
	off := P.Offsets()
	for i := 0; i < 2; i++ {
		for k := off[i]; k < off[i+1]; k++ {
			for l := off[i]; l < off[i+1]; l++ {
				want := complex(0, 0)
				if k == l {
					want = 1
				}
				assert.InDelta(Te, 0, cmplx.Abs(F.At(k, l)-want), 1e-10, "block %d entry (%d,%d)", i, k, l)
			}
		}
	}
}

func TestPositionMatrix(Te *testing.T) {
	eps := 0.05
	Q := complex(1, 0.5)
	ps := diagParams(Te, []float64{0.7}, []float64{-0.4}, Q)
	shape := hawp.HyperCubic(3)
	P, err := hawp.NewScalar(eps, ps, shape, make(hawp.Coefficients, 3))
	require.NoError(Te, err)
	B := NewBuilder(quadrature.GaussHermite(8))
	F, err := B.Build(P, func(x, q []float64, i, j int) complex128 { return complex(x[0], 0) })
	require.NoError(Te, err)
	s := complex(math.Sqrt(eps/2), 0)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(0, 0)-0.7), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(0, 1)-s*cmplx.Conj(Q)), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(1, 0)-s*Q), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(2, 1)-s*Q*complex(math.Sqrt(2), 0)), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(0, 2)), 1e-10)
}

func TestRelativePhase(Te *testing.T) {
	eps := 0.2
	ps0 := hawp.Standard([]float64{0}, []float64{1})
	ps1 := ps0.Clone()
	ps1.S = 0.3
	shapes := []hawp.BasisShape{hawp.HyperCubic(2), hawp.HyperCubic(2)}
	P, err := hawp.NewInhomogeneous(eps, []*hawp.ParameterSet{ps0, ps1}, shapes, []hawp.Coefficients{{1, 0}, {0, 0}})
	require.NoError(Te, err)
	F, err := NewBuilder(quadrature.GaussHermite(4), 2).Build(P, one)
	require.NoError(Te, err)
	ph := cmplx.Exp(complex(0, 0.3/eps))
	assert.InDelta(Te, 0, cmplx.Abs(F.At(0, 2)-ph), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(2, 0)-cmplx.Conj(ph)), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(1, 3)-ph), 1e-10)
	assert.InDelta(Te, 0, cmplx.Abs(F.At(0, 3)), 1e-10)
}

//Components with equal parameter sets couple as in a homogeneous packet,
//also when the action has an imaginary part.
func TestComplexActionPhase(Te *testing.T) {
	eps := 0.2
	ps := hawp.Standard([]float64{0.1}, []float64{0.5})
	ps.S = complex(0.3, 0.05)
	shapes := []hawp.BasisShape{hawp.HyperCubic(3), hawp.HyperCubic(3)}
	coefs := []hawp.Coefficients{{1, 0, 0}, {0, 0, 0}}
	op := func(x, q []float64, i, j int) complex128 { return complex(math.Sin(x[0])+float64(i+j), 0) }
	B := NewBuilder(quadrature.GaussHermite(8), 1)
	H, err := hawp.NewHomogeneous(eps, ps, shapes, coefs)
	require.NoError(Te, err)
	I, err := hawp.NewInhomogeneous(eps, []*hawp.ParameterSet{ps.Clone(), ps.Clone()}, shapes, coefs)
	require.NoError(Te, err)
	FH, err := B.Build(H, op)
	require.NoError(Te, err)
	FI, err := B.Build(I, op)
	require.NoError(Te, err)
	assert.True(Te, cmat.EqualApprox(FH, FI, 1e-14), "homogeneous %v\ninhomogeneous %v", FH, FI)
}

func TestParallelMatchesSerial(Te *testing.T) {
	ps := []*hawp.ParameterSet{
		diagParams(Te, []float64{0, 0}, []float64{1, 0}, 1, 1.2i),
		diagParams(Te, []float64{0.2, 0.1}, []float64{0.9, 0.1}, 1.1, 1+0.1i),
		diagParams(Te, []float64{-0.1, 0.1}, []float64{1, -0.2}, 0.9, 1),
	}
	shapes := []hawp.BasisShape{hawp.HyperCubic(3, 2), hawp.HyperCubic(2, 2), hawp.Hyperbolic(2, 3)}
	coefs := make([]hawp.Coefficients, 3)
	for i, s := range shapes {
		coefs[i] = make(hawp.Coefficients, s.Size())
	}
	P, err := hawp.NewInhomogeneous(0.1, ps, shapes, coefs)
	require.NoError(Te, err)
	op := func(x, q []float64, i, j int) complex128 {
		return complex(math.Cos(x[0]*x[1])+float64(i-j)*x[0], 0.1*x[1])
	}
	rule := quadrature.GaussHermiteProduct(5, 5)
	serial, err := NewBuilder(rule, 1).Build(P, op)
	require.NoError(Te, err)
	parallel, err := NewBuilder(rule, 4).Build(P, op)
	require.NoError(Te, err)
	assert.True(Te, cmat.EqualApprox(serial, parallel, 0))
}

func TestBuildErrors(Te *testing.T) {
	P, err := hawp.NewScalar(0.1, hawp.Standard([]float64{0, 0}, []float64{0, 0}), hawp.HyperCubic(2, 2), make(hawp.Coefficients, 4))
	require.NoError(Te, err)
	_, err = NewBuilder(quadrature.GaussHermite(4)).Build(P, one)
	assert.True(Te, errors.Is(err, hawp.ErrDimension))
	_, err = NewBuilder(quadrature.GaussHermiteProduct(3, 3)).Build(P, func(x, q []float64, i, j int) complex128 { return cmplx.NaN() })
	assert.True(Te, errors.Is(err, hawp.ErrNonFinite))
}
