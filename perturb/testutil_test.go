// Package perturb_test provides helpers shared across *_test.go files.
package perturb_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvmds/matrix"
	"github.com/katalvlaran/lvmds/perturb"
	"github.com/stretchr/testify/require"
)

const (
	// epsTight bounds incremental-vs-exact disagreement on well-conditioned inputs.
	epsTight = 1e-9

	// epsLoose bounds drift accumulated over many incremental updates.
	epsLoose = 1e-6

	// seedDet is the deterministic seed used where a specific value is irrelevant.
	seedDet = int64(7)
)

// triangle is the 3-point, 2-dimensional reference configuration.
var triangle = [][]float64{{0, 0}, {1, 0}, {0, 1}}

// Repeat runs fn n times as subtests; used to lock determinism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run("", fn)
	}
}

// dense wraps matrix.NewDenseFrom with a fatal on error.
func dense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// newProblem builds X from pts, Current as the exact distances of pts and
// Goal as the exact distances of goalPts.
func newProblem(t testing.TB, pts, goalPts [][]float64) *perturb.Problem {
	t.Helper()
	x := dense(t, pts)
	cur, err := perturb.Distances(x)
	require.NoError(t, err)
	goal, err := perturb.Distances(dense(t, goalPts))
	require.NoError(t, err)
	p, err := perturb.NewProblem(x, cur, goal)
	require.NoError(t, err)

	return p
}

// randomPoints returns n points in dims dimensions, uniform in [-scale, scale).
func randomPoints(r *rand.Rand, n, dims int, scale float64) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dims)
		for k := range out[i] {
			out[i][k] = (2*r.Float64() - 1) * scale
		}
	}

	return out
}

// randomProblem builds a problem whose goal is an independent random configuration.
func randomProblem(t testing.TB, seed int64, n, dims int) *perturb.Problem {
	t.Helper()
	r := rand.New(rand.NewSource(seed))

	return newProblem(t, randomPoints(r, n, dims, 2), randomPoints(r, n, dims, 2))
}

// engine builds an Engine from options tweaked by fn.
func engine(t testing.TB, fn func(o *perturb.Options)) *perturb.Engine {
	t.Helper()
	opts := perturb.DefaultOptions()
	opts.Seed = seedDet
	if fn != nil {
		fn(&opts)
	}
	e, err := perturb.NewEngine(opts)
	require.NoError(t, err)

	return e
}

// snapshot deep-copies the mutable matrices of p.
func snapshot(p *perturb.Problem) (x, cur []float64) {
	x = append([]float64(nil), p.X.Data()...)
	cur = append([]float64(nil), p.Current.Data()...)

	return x, cur
}

// exactRowError perturbs a copy of X and recomputes distances from scratch.
func exactRowError(t testing.TB, p *perturb.Problem, row, dim int, step float64) float64 {
	t.Helper()
	x := p.X.Clone().(*matrix.Dense)
	v, err := x.At(row, dim)
	require.NoError(t, err)
	require.NoError(t, x.Set(row, dim, v+step))
	d, err := perturb.Distances(x)
	require.NoError(t, err)

	var sum float64
	for ll := 0; ll < p.Points(); ll++ {
		if ll == row {
			continue
		}
		g, _ := p.Goal.At(row, ll)
		dd, _ := d.At(row, ll)
		sum += (g - dd) * (g - dd)
	}

	return sum
}

// assertSymmetric checks exact symmetry of Current.
func assertSymmetric(t *testing.T, p *perturb.Problem) {
	t.Helper()
	n := p.Points()
	data := p.Current.Data()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.Equal(t, data[i*n+j], data[j*n+i], "Current[%d][%d] != Current[%d][%d]", i, j, j, i)
		}
	}
}
