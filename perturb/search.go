// SPDX-License-Identifier: MIT

// Package perturb - greedy pattern search (first improvement).
//
// SearchStep walks the same 2·dims candidates as SelectBest, in index order,
// on a single goroutine. A sampled candidate with row error e is judged by
//
//	test = curr − (incumbent − e)
//
// i.e. the point's contribution `incumbent` is swapped for `e`. When
// test < curr the move is applied immediately:
//   - Current[ii][ll] and Current[ll][ii] get the exact shifted distance for all ll≠ii;
//   - X[ii][dim] += step;
//   - curr = test, incumbent = e.
//
// Later candidates are judged against the updated baseline, so one call can
// apply several moves. The returned error never exceeds the input.
package perturb

import (
	"fmt"
	"math"
)

// SearchStep runs one first-improvement scan for point ii and returns the
// point's final current error. currErr is the total error attributed to the
// configuration and errI the row error it was computed against (see RowError).
//
// Errors: ErrNilProblem, ErrShapeMismatch, ErrRowOutOfRange, ErrInvalidBaseline.
func (e *Engine) SearchStep(p *Problem, ii int, currErr, errI float64) (float64, error) {
	rep, err := e.SearchStepReport(p, ii, currErr, errI)
	if err != nil {
		return 0, err
	}

	return rep.Error, nil
}

// SearchStepReport is SearchStep with bookkeeping on what happened.
//
// Complexity: O(2·dims·n) evaluations plus O(n) per accepted move; no allocations.
func (e *Engine) SearchStepReport(p *Problem, ii int, currErr, errI float64) (StepReport, error) {
	n, dims, err := p.checkRow(ii)
	if err != nil {
		return StepReport{}, err
	}
	if math.IsNaN(currErr) || math.IsInf(currErr, 0) || math.IsNaN(errI) || math.IsInf(errI, 0) {
		return StepReport{}, fmt.Errorf("curr=%g incumbent=%g: %w", currErr, errI, ErrInvalidBaseline)
	}

	var (
		x, cur, goal = p.X.Data(), p.Current.Data(), p.Goal.Data()
		radius       = e.opts.Radius
		percent      = e.opts.Percent
		src          = newStream(forkParent(e.rng), 0)
		rep          = StepReport{Error: currErr}

		jj, cl int
		cand   Candidate
		v      float64
		test   float64
	)
	for jj = 0; jj < 2*dims; jj++ {
		if !sampled(&src, percent) {
			continue
		}
		rep.Sampled++
		cand = candidateAt(jj, dims, radius)
		v, cl = rowErrorAfter(x, cur, goal, n, dims, ii, cand.Dim, cand.Step)
		rep.Clamps += cl

		test = rep.Error - (errI - v)
		if test < rep.Error {
			rep.Clamps += applyMove(x, cur, n, dims, ii, cand)
			rep.Error = test
			errI = v
			rep.Accepted++
			e.log.Debug().
				Int("point", ii).
				Int("dim", cand.Dim).
				Float64("step", cand.Step).
				Float64("error", test).
				Msg("perturbation accepted")
		}
	}

	e.reportClamps(ii, rep.Clamps)
	if e.opts.Metrics {
		CandidateEvaluations.WithLabelValues(opSearch).Add(float64(rep.Sampled))
		MovesAccepted.Add(float64(rep.Accepted))
	}

	return rep, nil
}

// applyMove moves point ii by cand and rewrites row/column ii of cur
// symmetrically. Distances use the pre-move coordinates, so X is updated last.
// Returns the number of clamped radicands.
func applyMove(x, cur []float64, n, dims, ii int, cand Candidate) int {
	var (
		ll, clamps int
		d          float64
		clamp      bool
	)
	xi := ii*dims + cand.Dim
	for ll = 0; ll < n; ll++ {
		if ll == ii {
			continue
		}
		d, clamp = shiftedDistance(cur[ii*n+ll], x[xi]-x[ll*dims+cand.Dim], cand.Step)
		if clamp {
			clamps++
		}
		cur[ii*n+ll] = d
		cur[ll*n+ii] = d
	}
	x[xi] += cand.Step

	return clamps
}
