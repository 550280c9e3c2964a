// SPDX-License-Identifier: MIT

// Package perturb - best-candidate selection.
//
// SelectBest enumerates the 2·dims candidates of one point, keeps each with
// probability Percent, evaluates the kept ones and returns the lowest error.
// Ties go to the lowest candidate index (first encountered in scan order).
//
// Fork-join:
//   - The index range [0, 2·dims) is cut into at most Workers contiguous, disjoint chunks.
//   - Worker w samples with its own stream derived from one base-stream draw and w,
//     so results depend only on Seed, Workers and the call sequence.
//   - ReduceLocked merges per-worker optima under a mutex comparing (error, index).
//   - ReduceScratch writes each error to scratch slot jj (disjoint by chunk) and
//     scans the slots after the join.
//
// Both reductions see exactly the same draws and return the same Selection.
package perturb

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ScratchBuffer is the caller-owned slot array used by ReduceScratch.
// Its capacity must be at least 2·dims for every problem it is used with;
// SelectBest checks this before doing any work.
type ScratchBuffer struct {
	errs []float64
}

// NewScratchBuffer allocates a buffer for up to capacity candidates.
func NewScratchBuffer(capacity int) (*ScratchBuffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &ScratchBuffer{errs: make([]float64, capacity)}, nil
}

// Cap returns the number of candidate slots.
func (b *ScratchBuffer) Cap() int { return len(b.errs) }

// Slots copies the first m slots as left by the last ReduceScratch selection:
// slot jj holds the row error of candidate jj, or +Inf if it was not sampled.
// m is clipped to Cap().
func (b *ScratchBuffer) Slots(m int) []float64 {
	if m > len(b.errs) {
		m = len(b.errs)
	}
	if m < 0 {
		m = 0
	}

	return append([]float64(nil), b.errs[:m]...)
}

// chunk is a worker's half-open candidate range with its sampling stream.
type chunk struct {
	lo, hi int
	src    stream
}

// partition splits [0, m) into contiguous chunks of ceil(m/Workers) indices.
// Only non-empty chunks are returned, so there are at most min(Workers, m).
// The base stream advances by exactly one draw per call whatever m is.
func (e *Engine) partition(m int) []chunk {
	parent := forkParent(e.rng)
	if m <= 0 {
		return nil
	}
	size := (m + e.opts.Workers - 1) / e.opts.Workers
	k := (m + size - 1) / size
	out := make([]chunk, k)
	var i, lo int
	for i = 0; i < k; i++ {
		lo = i * size
		out[i] = chunk{lo: lo, hi: min(lo+size, m), src: newStream(parent, uint64(i))}
	}

	return out
}

// localBest is a worker's running optimum; jj < 0 means nothing evaluated.
type localBest struct {
	err   float64
	jj    int
	evals int
	clamp int
}

// better reports whether (err, jj) beats the incumbent (bestErr, bestJJ).
func better(err float64, jj int, bestErr float64, bestJJ int) bool {
	if err < bestErr {
		return true
	}

	return err == bestErr && bestJJ >= 0 && jj < bestJJ
}

// SelectBest returns the best sampled candidate for point ii without applying it.
//
// Contract:
//   - p is not modified.
//   - Selection.Error is the row error the point would have after the move.
//   - If nothing was sampled, Selection.Found() is false and Error is +Inf.
//
// Errors: ErrNilProblem, ErrShapeMismatch, ErrRowOutOfRange, ErrScratchCapacity (ReduceScratch).
//
// Complexity: O(2·dims·n / Workers) per worker plus O(2·dims) for the scan.
func (e *Engine) SelectBest(p *Problem, ii int) (Selection, error) {
	n, dims, err := p.checkRow(ii)
	if err != nil {
		return Selection{}, err
	}
	m := 2 * dims
	if e.opts.Reduction == ReduceScratch && e.opts.Scratch.Cap() < m {
		return Selection{}, fmt.Errorf("need %d slots, have %d: %w", m, e.opts.Scratch.Cap(), ErrScratchCapacity)
	}

	start := time.Now()
	chunks := e.partition(m)

	var (
		sel          Selection
		evals, clamp int
	)
	switch e.opts.Reduction {
	case ReduceScratch:
		sel, evals, clamp = e.selectScratch(p, ii, n, dims, chunks)
	default:
		sel, evals, clamp = e.selectLocked(p, ii, n, dims, chunks)
	}

	e.reportClamps(ii, clamp)
	if e.opts.Metrics {
		CandidateEvaluations.WithLabelValues(opSelect).Add(float64(evals))
		SelectionDuration.WithLabelValues(e.opts.Reduction.String()).Observe(time.Since(start).Seconds())
	}
	e.log.Debug().
		Int("point", ii).
		Int("evaluated", evals).
		Float64("error", sel.Error).
		Int("dim", sel.Dim).
		Float64("step", sel.Step).
		Msg("best candidate selected")

	return sel, nil
}

// selectLocked is the critical-section reduction.
func (e *Engine) selectLocked(p *Problem, ii, n, dims int, chunks []chunk) (Selection, int, int) {
	x, cur, goal := p.X.Data(), p.Current.Data(), p.Goal.Data()
	radius, percent := e.opts.Radius, e.opts.Percent

	var mu sync.Mutex
	best := localBest{err: math.Inf(1), jj: -1}

	var g errgroup.Group
	for i := range chunks {
		c := &chunks[i]
		g.Go(func() error {
			lb := localBest{err: math.Inf(1), jj: -1}
			var (
				jj   int
				cand Candidate
				v    float64
				cl   int
			)
			for jj = c.lo; jj < c.hi; jj++ {
				if !sampled(&c.src, percent) {
					continue
				}
				cand = candidateAt(jj, dims, radius)
				v, cl = rowErrorAfter(x, cur, goal, n, dims, ii, cand.Dim, cand.Step)
				lb.evals++
				lb.clamp += cl
				if v < lb.err {
					lb.err, lb.jj = v, jj
				}
			}

			mu.Lock()
			defer mu.Unlock()
			best.evals += lb.evals
			best.clamp += lb.clamp
			if lb.jj >= 0 && better(lb.err, lb.jj, best.err, best.jj) {
				best.err, best.jj = lb.err, lb.jj
			}

			return nil
		})
	}
	_ = g.Wait() // workers never fail

	if best.jj < 0 {
		return noSelection(radius), best.evals, best.clamp
	}
	won := candidateAt(best.jj, dims, radius)

	return Selection{Error: best.err, Dim: won.Dim, Step: won.Step}, best.evals, best.clamp
}

// selectScratch is the disjoint-write reduction.
func (e *Engine) selectScratch(p *Problem, ii, n, dims int, chunks []chunk) (Selection, int, int) {
	x, cur, goal := p.X.Data(), p.Current.Data(), p.Goal.Data()
	radius, percent := e.opts.Radius, e.opts.Percent
	slots := e.opts.Scratch.errs

	// Per-worker tallies live in their own slots too; no shared counters.
	evals := make([]int, len(chunks))
	clamps := make([]int, len(chunks))

	var g errgroup.Group
	for w := range chunks {
		c := &chunks[w]
		g.Go(func() error {
			var (
				jj   int
				cand Candidate
				cl   int
			)
			for jj = c.lo; jj < c.hi; jj++ {
				if !sampled(&c.src, percent) {
					slots[jj] = math.Inf(1)
					continue
				}
				cand = candidateAt(jj, dims, radius)
				slots[jj], cl = rowErrorAfter(x, cur, goal, n, dims, ii, cand.Dim, cand.Step)
				evals[w]++
				clamps[w] += cl
			}

			return nil
		})
	}
	_ = g.Wait() // workers never fail

	bestJJ := -1
	bestErr := math.Inf(1)
	var jj int
	for jj = 0; jj < 2*dims; jj++ {
		if slots[jj] < bestErr {
			bestErr, bestJJ = slots[jj], jj
		}
	}

	var totalEvals, totalClamps int
	for w := range chunks {
		totalEvals += evals[w]
		totalClamps += clamps[w]
	}
	if bestJJ < 0 {
		return noSelection(radius), totalEvals, totalClamps
	}
	won := candidateAt(bestJJ, dims, radius)

	return Selection{Error: bestErr, Dim: won.Dim, Step: won.Step}, totalEvals, totalClamps
}
