package record

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/observables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testPacket(Te *testing.T) *hawp.Packet {
	Q := cmat.NewMatrix(2, 2, []complex128{1, 0.2i, 0, 1})
	ps0, err := hawp.NewParameterSet([]float64{0.1, -0.2}, []float64{1.5, 0}, Q, cmat.Diag(1i, 1i), 0.25-0.5i)
	require.NoError(Te, err)
	ps1 := hawp.Standard([]float64{1.0 / 3, 2}, []float64{-1e-20, 7})
	s0 := hawp.Hyperbolic(2, 4)
	s1 := hawp.HyperCubic(2, 1)
	c0 := make(hawp.Coefficients, s0.Size())
	for i := range c0 {
		c0[i] = complex(float64(i)/7, -1/float64(i+3))
	}
	P, err := hawp.NewInhomogeneous(0.01, []*hawp.ParameterSet{ps0, ps1}, []hawp.BasisShape{s0, s1}, []hawp.Coefficients{c0, {0.5i, -0.25}})
	require.NoError(Te, err)
	return P
}

func TestRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	P := testPacket(Te)
	e := observables.Summary{Norm: 1, Kinetic: 0.1234567890123, Potential: 2.5e-7}
	for _, name := range []string{"traj.hawp", "traj.hawp.gz", "traj.hawp.fl"} {
		fname := filepath.Join(dir, name)
		W, err := NewWriter(fname, map[string]string{"eps": "0.01", "scenario": "test"})
		require.NoError(Te, err)
		require.NoError(Te, W.WriteFrame(0, P, e))
		require.NoError(Te, W.WriteFrame(0.1, P, e))
		require.NoError(Te, W.Close())
		assert.Error(Te, W.WriteFrame(0.2, P, e))

		R, header, err := NewReader(fname)
		require.NoError(Te, err, name)
		assert.Equal(Te, map[string]string{"eps": "0.01", "scenario": "test"}, header)
		for _, t := range []float64{0, 0.1} {
			F, err := R.Next()
			require.NoError(Te, err, name)
			assert.Equal(Te, t, F.T)
			assert.Equal(Te, e, F.Energies)
			assert.Equal(Te, "inhomogeneous", F.Kind)
			require.Len(Te, F.Params, 2)
			for i, ps := range P.Params() {
				assert.Equal(Te, ps.Pos, F.Params[i].Pos)
				assert.Equal(Te, ps.Mom, F.Params[i].Mom)
				assert.True(Te, cmat.EqualApprox(ps.Q, F.Params[i].Q, 0))
				assert.True(Te, cmat.EqualApprox(ps.P, F.Params[i].P, 0))
				assert.Equal(Te, ps.S, F.Params[i].S)
				assert.Equal(Te, ps.SqrtDetQ(), F.Params[i].SqrtDetQ())
			}
			Q, err := F.Packet()
			require.NoError(Te, err)
			nodes := mat.NewDense(2, 3, []float64{0, 0.1, 1, -0.2, 0.3, 2})
			want, err := P.Evaluate(nodes)
			require.NoError(Te, err)
			got, err := Q.Evaluate(nodes)
			require.NoError(Te, err)
			assert.True(Te, cmat.EqualApprox(want, got, 0), "%s: %v vs %v", name, want, got)
		}
		_, err = R.Next()
		assert.True(Te, errors.Is(err, io.EOF), name)
		var last *LastFrameError
		assert.True(Te, errors.As(err, &last))
		assert.False(Te, R.Readable())
	}
}

func TestNoHeader(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "noheader.hawp")
	W, err := NewWriter(fname, nil)
	require.NoError(Te, err)
	require.NoError(Te, W.Close())
	R, header, err := NewReader(fname)
	require.NoError(Te, err)
	assert.Nil(Te, header)
	_, err = R.Next()
	assert.True(Te, errors.Is(err, io.EOF))
}

func TestMissingFile(Te *testing.T) {
	_, _, err := NewReader(filepath.Join(Te.TempDir(), "nothere.hawp"))
	assert.Error(Te, err)
}
