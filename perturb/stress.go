// SPDX-License-Identifier: MIT

package perturb

import (
	"math"

	"github.com/katalvlaran/lvmds/matrix"
	"gonum.org/v1/gonum/floats"
)

// RowError returns Σ_{ll≠row} (Goal[row][ll] − Current[row][ll])², the error
// currently attributed to one point. It is the incumbent value SearchStep expects.
func RowError(p *Problem, row int) (float64, error) {
	n, _, err := p.checkRow(row)
	if err != nil {
		return 0, err
	}
	cur, goal := p.Current.Data(), p.Goal.Data()
	var (
		sum, diff float64
		ll        int
	)
	base := row * n
	for ll = 0; ll < n; ll++ {
		if ll == row {
			continue
		}
		diff = goal[base+ll] - cur[base+ll]
		sum += diff * diff
	}

	return sum, nil
}

// Stress returns Σ_{i<j} (Goal[i][j] − Current[i][j])² over the upper triangle.
func Stress(p *Problem) (float64, error) {
	n, _, err := p.shape()
	if err != nil {
		return 0, err
	}
	cur, goal := p.Current.Data(), p.Goal.Data()
	var (
		sum, diff float64
		i, j      int
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			diff = goal[i*n+j] - cur[i*n+j]
			sum += diff * diff
		}
	}

	return sum, nil
}

// Distances recomputes the exact n×n Euclidean distance matrix of the rows of x.
// Complexity: O(n²·dims).
func Distances(x *matrix.Dense) (*matrix.Dense, error) {
	if x == nil {
		return nil, ErrNilProblem
	}
	n := x.Rows()
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	data := out.Data()
	var (
		i, j   int
		ri, rj []float64
		d      float64
	)
	for i = 0; i < n; i++ {
		ri, _ = x.Row(i)
		for j = i + 1; j < n; j++ {
			rj, _ = x.Row(j)
			d = floats.Distance(ri, rj, 2)
			data[i*n+j] = d
			data[j*n+i] = d
		}
	}

	return out, nil
}

// Drift returns max |Current[i][j] − exact(i,j)|, the error accumulated by
// incremental updates since the last Resync.
func Drift(p *Problem) (float64, error) {
	if _, _, err := p.shape(); err != nil {
		return 0, err
	}
	exact, err := Distances(p.X)
	if err != nil {
		return 0, err
	}
	var worst float64
	for i, v := range p.Current.Data() {
		worst = math.Max(worst, math.Abs(v-exact.Data()[i]))
	}

	return worst, nil
}

// Resync overwrites Current with exact distances recomputed from X.
// Scheduling it (e.g. once Drift exceeds a tolerance) is the caller's policy.
func Resync(p *Problem) error {
	if _, _, err := p.shape(); err != nil {
		return err
	}
	exact, err := Distances(p.X)
	if err != nil {
		return err
	}

	return p.Current.CopyFrom(exact)
}
