package hawplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/observables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlots(Te *testing.T) {
	dir := Te.TempDir()
	for _, D := range []int{1, 2} {
		q := make([]float64, D)
		p := make([]float64, D)
		ps := hawp.Standard(q, p)
		limits := make([]int, D)
		for i := range limits {
			limits[i] = 1
		}
		P, err := hawp.NewScalar(1, ps, hawp.HyperCubic(limits...), hawp.Coefficients{1})
		require.NoError(Te, err)
		tr := new(Trace)
		for i := 0; i < 20; i++ {
			t := 0.1 * float64(i)
			ps.Pos[0] = math.Cos(t)
			tr.Add(t, P, observables.Summary{Norm: 1 + 1e-12*t, Kinetic: 0.5 * math.Sin(t) * math.Sin(t), Potential: 0.5 * math.Cos(t) * math.Cos(t)})
		}
		require.Equal(Te, 20, tr.Len())
		assert.Equal(Te, 1.0, tr.Pos[0][0][0])
		for _, f := range []struct {
			name string
			plot func(*Trace, string, string) error
		}{{"path", PathPlot}, {"energy", EnergyPlot}, {"drift", DriftPlot}} {
			name := filepath.Join(dir, f.name+string(rune('0'+D))+".png")
			require.NoError(Te, f.plot(tr, f.name, name))
			st, err := os.Stat(name)
			require.NoError(Te, err)
			assert.Greater(Te, st.Size(), int64(0))
		}
	}
	assert.Error(Te, PathPlot(new(Trace), "empty", filepath.Join(dir, "empty.png")))
}
