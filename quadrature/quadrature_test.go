package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

//int_-inf^inf y^2k exp(-y^2) dy = Gamma(k+1/2)
func gaussMoment(k int) float64 {
	if k%2 == 1 {
		return 0
	}
	return math.Gamma(float64(k)/2 + 0.5)
}

func TestGaussHermiteMoments(Te *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 8} {
		G := GaussHermite(order)
		require.Equal(Te, order, G.Len())
		x := G.Nodes().RawRowView(0)
		for k := 0; k <= 2*order-1; k++ {
			var s float64
			for i, w := range G.Weights() {
				s += w * math.Pow(x[i], float64(k))
			}
			want := gaussMoment(k)
			assert.InDelta(Te, want, s, 1e-10*math.Max(1, want), "order %d moment %d", order, k)
		}
	}
}

func TestTensorProduct(Te *testing.T) {
	T := GaussHermiteProduct(3, 4)
	require.Equal(Te, 2, T.Dim())
	require.Equal(Te, 12, T.Len())
	assert.InDelta(Te, math.Pi, floats.Sum(T.Weights()), 1e-12)
	//last axis runs fastest
	g3 := GaussHermite(3).Nodes().RawRowView(0)
	g4 := GaussHermite(4).Nodes().RawRowView(0)
	assert.Equal(Te, g3[0], T.Nodes().At(0, 3))
	assert.Equal(Te, g4[3], T.Nodes().At(1, 3))
	assert.Equal(Te, g3[1], T.Nodes().At(0, 4))
	assert.Equal(Te, g4[0], T.Nodes().At(1, 4))
	//int y1^2 y2^4 exp(-|y|^2) = Gamma(3/2)Gamma(5/2)
	var s float64
	for m, w := range T.Weights() {
		s += w * math.Pow(T.Nodes().At(0, m), 2) * math.Pow(T.Nodes().At(1, m), 4)
	}
	assert.InDelta(Te, gaussMoment(2)*gaussMoment(4), s, 1e-10)
}

func TestBadRules(Te *testing.T) {
	assert.Panics(Te, func() { GaussHermite(0) })
	assert.Panics(Te, func() { NewTensorProduct(GaussHermiteProduct(2, 2)) })
}
