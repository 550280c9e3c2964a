// SPDX-License-Identifier: MIT

// Package perturb implements the single-point step of a multidimensional
// scaling (MDS) stress minimizer.
//
// Given goal distances, a point configuration X and the distances Current
// between its points, the package searches moves of one coordinate of one
// point by ±Radius that reduce that point's squared error
//
//	E(i) = Σ_{j≠i} (Goal[i][j] − Current[i][j])²
//
// Operations:
//
//   - Evaluate     - row error after a hypothetical move, via the incremental
//     distance update d'² = d² − diff² + (diff+step)² (O(n), read-only).
//   - SelectBest   - best sampled candidate out of the 2·dims moves, evaluated
//     in parallel; reduction strategy is configurable (ReduceLocked, ReduceScratch).
//   - SearchStep   - first-improvement pattern search that applies every
//     improving move it meets, updating X and Current in place.
//   - RowError, Stress, Distances, Drift, Resync - bookkeeping helpers for the
//     caller's outer loop.
//
// Sampling is Monte Carlo: each candidate is evaluated with probability
// Percent. Streams are seeded from Options.Seed and derived per worker, so a
// fixed seed gives reproducible runs. There is no time-based randomness.
//
// The outer schedule (which point next, radius annealing, stopping) belongs
// to the caller:
//
//	eng, _ := perturb.NewEngine(perturb.DefaultOptions().WithRadius(0.5))
//	p, _ := perturb.NewProblem(x, current, goal)
//	total, _ := perturb.Stress(p)
//	for i := 0; i < p.Points(); i++ {
//		ei, _ := perturb.RowError(p, i)
//		total, _ = eng.SearchStep(p, i, total, ei)
//	}
//
// Concurrency: SelectBest fans out over Options.Workers goroutines and joins
// before returning. An Engine must not be shared between goroutines.
package perturb
