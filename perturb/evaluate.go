// SPDX-License-Identifier: MIT

// Package perturb - incremental distance evaluation.
//
// For a point `row` and a move of `step` along dimension `dim`, only one term
// of each squared distance d(row,ll)² = Σ_k (x[row][k] − x[ll][k])² changes:
//
//	diff   = x[row][dim] − x[ll][dim]
//	d'²    = d(row,ll)² − diff² + (diff + step)²
//
// so the row error after the move costs O(n) instead of O(n·dims).
// Round-off can push d'² slightly below zero; it is clamped to 0 before the
// square root and counted, never turned into NaN.
package perturb

import "math"

// shiftedDistance returns the distance after moving one endpoint by step
// along a dimension where the endpoints currently differ by diff.
// The second result reports whether the radicand had to be clamped.
func shiftedDistance(dPrev, diff, step float64) (float64, bool) {
	after := diff + step
	rad := dPrev*dPrev - diff*diff + after*after
	if rad < 0 {
		return 0, true
	}

	return math.Sqrt(rad), false
}

// rowErrorAfter is the hot kernel behind Evaluate: the squared error of
// row against the goal distances if x[row][dim] moved by step.
// Slices are the flat row-major buffers of X (n×dims), Current and Goal (n×n).
// Returns the error and the number of clamped radicands.
//
// Complexity: O(n), no allocations.
func rowErrorAfter(x, cur, goal []float64, n, dims, row, dim int, step float64) (float64, int) {
	var (
		sum    float64
		clamps int
		ll     int
		d      float64
		diff   float64
		clamp  bool
	)
	dRow := row * n
	xr := x[row*dims+dim]
	for ll = 0; ll < n; ll++ {
		if ll == row {
			continue
		}
		d, clamp = shiftedDistance(cur[dRow+ll], xr-x[ll*dims+dim], step)
		if clamp {
			clamps++
		}
		diff = goal[dRow+ll] - d
		sum += diff * diff
	}

	return sum, clamps
}

// Evaluate returns Σ_{ll≠row} (Goal[row][ll] − d'(row,ll))² where d' is the
// distance after adding step to X[row][dim]. It reads p and never writes it.
//
// It is the package-level form of Engine.Evaluate without logging or metrics.
//
// Errors: ErrNilProblem, ErrShapeMismatch, ErrRowOutOfRange, ErrDimOutOfRange.
func Evaluate(p *Problem, row, dim int, step float64) (float64, error) {
	n, dims, err := p.checkRow(row)
	if err != nil {
		return 0, err
	}
	if err = checkDim(dim, dims); err != nil {
		return 0, err
	}
	e, _ := rowErrorAfter(p.X.Data(), p.Current.Data(), p.Goal.Data(), n, dims, row, dim, step)

	return e, nil
}
