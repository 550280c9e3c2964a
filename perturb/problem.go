// SPDX-License-Identifier: MIT

package perturb

import (
	"fmt"

	"github.com/katalvlaran/lvmds/matrix"
)

// Problem bundles the caller-owned matrices one search step works on.
//
//   - X       n×dims point configuration, one point per row. SearchStep mutates it.
//   - Current n×n distances maintained incrementally; SearchStep mutates it,
//     always writing [i][j] and [j][i] together.
//   - Goal    n×n target distances; never written.
//
// The Problem never copies or reallocates the matrices. Shapes are read from
// the matrices on every call, so reassigning a field after NewProblem is
// caught with ErrShapeMismatch rather than trusted.
type Problem struct {
	X       *matrix.Dense
	Current *matrix.Dense
	Goal    *matrix.Dense
}

// NewProblem validates the three matrices and binds them.
//
// Checks, in order:
//   - none is nil (ErrNilProblem);
//   - Current and Goal are square, of equal shape, with n == X.Rows() (ErrShapeMismatch);
//   - all entries finite (matrix.ErrNaNInf);
//   - distances non-negative (matrix.ErrNegative);
//   - Current and Goal symmetric within SymTol (matrix.ErrAsymmetry).
//
// Complexity: O(n² + n·dims).
func NewProblem(x, current, goal *matrix.Dense) (*Problem, error) {
	if x == nil || current == nil || goal == nil {
		return nil, ErrNilProblem
	}
	p := &Problem{X: x, Current: current, Goal: goal}
	if _, _, err := p.shape(); err != nil {
		return nil, err
	}

	checks := []struct {
		name string
		fn   func() error
	}{
		{"x", func() error { return matrix.ValidateFinite(x) }},
		{"current", func() error { return matrix.ValidateNonNegative(current) }},
		{"current", func() error { return matrix.ValidateFinite(current) }},
		{"current", func() error { return matrix.ValidateSymmetric(current, SymTol) }},
		{"goal", func() error { return matrix.ValidateNonNegative(goal) }},
		{"goal", func() error { return matrix.ValidateFinite(goal) }},
		{"goal", func() error { return matrix.ValidateSymmetric(goal, SymTol) }},
	}
	for _, c := range checks {
		if err := c.fn(); err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
	}

	return p, nil
}

// shape returns (n, dims) after checking that the bound matrices still agree:
// X is n×dims with n > 0, Current and Goal are both n×n. O(1).
func (p *Problem) shape() (n, dims int, err error) {
	if p == nil || p.X == nil || p.Current == nil || p.Goal == nil {
		return 0, 0, ErrNilProblem
	}
	n, dims = p.X.Shape()
	if err = matrix.ValidateSquare(p.Current); err != nil {
		return 0, 0, fmt.Errorf("current: %w: %w", ErrShapeMismatch, err)
	}
	if err = matrix.ValidateSameShape(p.Current, p.Goal); err != nil {
		return 0, 0, fmt.Errorf("goal: %w: %w", ErrShapeMismatch, err)
	}
	if p.Current.Rows() != n {
		return 0, 0, fmt.Errorf("current is %dx%d, x has %d points: %w",
			p.Current.Rows(), p.Current.Cols(), n, ErrShapeMismatch)
	}

	return n, dims, nil
}

// Points returns the number of points n, or 0 when X is unset.
func (p *Problem) Points() int {
	if p == nil || p.X == nil {
		return 0
	}

	return p.X.Rows()
}

// Dims returns the dimensionality of the configuration, or 0 when X is unset.
func (p *Problem) Dims() int {
	if p == nil || p.X == nil {
		return 0
	}

	return p.X.Cols()
}

// Candidates returns the neighbourhood size 2·dims.
func (p *Problem) Candidates() int { return 2 * p.Dims() }

// checkRow is the cheap per-call guard used by every public operation.
// It returns the current shape so callers never index with stale sizes.
func (p *Problem) checkRow(row int) (n, dims int, err error) {
	if n, dims, err = p.shape(); err != nil {
		return 0, 0, err
	}
	if row < 0 || row >= n {
		return 0, 0, fmt.Errorf("point %d of %d: %w", row, n, ErrRowOutOfRange)
	}

	return n, dims, nil
}

// checkDim guards a perturbed dimension.
func checkDim(dim, dims int) error {
	if dim < 0 || dim >= dims {
		return fmt.Errorf("dimension %d of %d: %w", dim, dims, ErrDimOutOfRange)
	}

	return nil
}
