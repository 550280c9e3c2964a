package perturb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRNG_ZeroSeedIsDefault locks the seed==0 policy.
func TestRNG_ZeroSeedIsDefault(t *testing.T) {
	a := rngFromSeed(0)
	b := rngFromSeed(defaultRNGSeed)
	for i := 0; i < 16; i++ {
		assert.Equal(t, b.Uint64(), a.Uint64())
	}
}

// TestRNG_DerivedStreamsDiffer checks worker streams are distinct and reproducible.
func TestRNG_DerivedStreamsDiffer(t *testing.T) {
	seen := make(map[int64]uint64)
	for w := uint64(0); w < 64; w++ {
		s := deriveSeed(12345, w)
		if prev, ok := seen[s]; ok {
			t.Fatalf("streams %d and %d collide", prev, w)
		}
		seen[s] = w
	}

	x := newStream(forkParent(rngFromSeed(5)), 3)
	y := newStream(forkParent(rngFromSeed(5)), 3)
	z := newStream(forkParent(rngFromSeed(5)), 4)
	var same int
	for i := 0; i < 16; i++ {
		a, b, c := x.float64(), y.float64(), z.float64()
		assert.Equal(t, a, b)
		if a == c {
			same++
		}
	}
	assert.Less(t, same, 16, "neighbouring stream ids must not coincide")
}

// TestRNG_SampledBounds: percent 1 keeps everything, percent 0 nothing.
func TestRNG_SampledBounds(t *testing.T) {
	s := newStream(9, 0)
	for i := 0; i < 1000; i++ {
		u := s.float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
		assert.True(t, sampled(&s, 1))
		assert.False(t, sampled(&s, 0))
	}
}

// TestRNG_ForkIsAllocationFree keeps per-call stream derivation off the heap.
func TestRNG_ForkIsAllocationFree(t *testing.T) {
	base := rngFromSeed(3)
	var sink float64
	allocs := testing.AllocsPerRun(100, func() {
		s := newStream(forkParent(base), 7)
		sink += s.float64()
	})
	assert.Equal(t, 0.0, allocs)
	_ = sink
}

// TestPartition_CoversRangeDisjointly checks the chunking used by SelectBest.
func TestPartition_CoversRangeDisjointly(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 20, 64} {
		e := &Engine{opts: Options{Workers: workers}, rng: rngFromSeed(1)}
		for _, m := range []int{2, 5, 10, 13} {
			chunks := e.partition(m)
			assert.LessOrEqual(t, len(chunks), min(workers, m), "workers=%d m=%d", workers, m)
			next := 0
			for _, c := range chunks {
				assert.Less(t, c.lo, c.hi, "empty chunk, workers=%d m=%d", workers, m)
				assert.Equal(t, next, c.lo, "workers=%d m=%d", workers, m)
				next = c.hi
			}
			assert.Equal(t, m, next, "workers=%d m=%d", workers, m)
		}
	}
}

// TestPartition_AdvancesBaseOnce: each call consumes one base draw, whatever
// the candidate count, so later calls see the same parent sequence.
func TestPartition_AdvancesBaseOnce(t *testing.T) {
	a := &Engine{opts: Options{Workers: 4}, rng: rngFromSeed(11)}
	b := &Engine{opts: Options{Workers: 4}, rng: rngFromSeed(11)}

	a.partition(2)
	b.partition(40)
	assert.Equal(t, a.rng.Uint64(), b.rng.Uint64())
}
