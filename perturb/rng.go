// SPDX-License-Identifier: MIT

// Package perturb - RNG utilities for candidate sampling.
//
// Goals:
//   - Determinism: same seed ⇒ identical sampling across runs and platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Cheap forks: every call draws exactly one value from the engine's base
//     stream and derives per-worker streams from it in O(1), without allocating.
//
// Concurrency:
//   - rand.PCG is NOT goroutine-safe. Each worker owns its stream value; the
//     base stream is only touched by the calling goroutine before the fork.
package perturb

import "math/rand/v2"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns the deterministic base stream of an Engine.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.PCG {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.NewPCG(uint64(s), uint64(deriveSeed(s, 0)))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring worker ids get uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// forkParent consumes the single base-stream value a call is allowed to use.
// If base==nil, defaultRNGSeed is used as the parent.
func forkParent(base *rand.PCG) uint64 {
	if base == nil {
		return uint64(defaultRNGSeed)
	}

	return base.Uint64()
}

// stream is a worker-local sampling source held by value.
type stream struct {
	pcg rand.PCG
}

// newStream derives stream id from a per-call parent value. O(1), no allocation.
func newStream(parent, id uint64) stream {
	var s stream
	s.pcg.Seed(parent, uint64(deriveSeed(int64(parent), id)))

	return s
}

// float64 returns u uniform in [0,1) with 53 random bits.
func (s *stream) float64() float64 {
	return float64(s.pcg.Uint64()>>11) * 0x1p-53
}

// sampled draws u ∈ [0,1) and keeps the candidate when u < percent.
// percent==1 keeps everything, percent==0 keeps nothing.
func sampled(s *stream, percent float64) bool {
	return s.float64() < percent
}
