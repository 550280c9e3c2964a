// SPDX-License-Identifier: MIT

package perturb

import (
	"math"
	"runtime"

	"github.com/katalvlaran/lvmds/matrix"
	"github.com/rs/zerolog"
)

// Defaults applied by DefaultOptions.
const (
	// DefaultRadius is the perturbation magnitude used when none is configured.
	DefaultRadius = 1.0

	// DefaultPercent evaluates the whole 2·dims neighbourhood.
	DefaultPercent = 1.0

	// SymTol is the tolerance used when NewProblem checks distance-matrix symmetry.
	SymTol = matrix.DefaultEpsilon
)

// Options configures an Engine.
//
// Fields:
//   - Radius    - step magnitude; candidates move one coordinate by ±Radius.
//   - Percent   - probability in [0,1] that a candidate is evaluated at all.
//   - Seed      - base seed for sampling streams; 0 selects a fixed default.
//   - Workers   - goroutines used by SelectBest (SearchStep is always sequential).
//   - Reduction - how SelectBest merges worker results.
//   - Scratch   - caller-owned buffer, required when Reduction == ReduceScratch.
//   - Logger    - debug events (clamps, selections, accepted moves).
//   - Metrics   - record prometheus counters/histograms (see metrics.go).
type Options struct {
	Radius    float64        `yaml:"radius"`
	Percent   float64        `yaml:"percent"`
	Seed      int64          `yaml:"seed"`
	Workers   int            `yaml:"workers"`
	Reduction Reduction      `yaml:"reduction"`
	Scratch   *ScratchBuffer `yaml:"-"`
	Logger    zerolog.Logger `yaml:"-"`
	Metrics   bool           `yaml:"metrics"`
}

// DefaultOptions returns full-neighbourhood sampling with unit radius,
// one worker per available CPU, the locked reduction and a silent logger.
func DefaultOptions() Options {
	return Options{
		Radius:    DefaultRadius,
		Percent:   DefaultPercent,
		Seed:      0,
		Workers:   runtime.GOMAXPROCS(0),
		Reduction: ReduceLocked,
		Logger:    zerolog.Nop(),
		Metrics:   false,
	}
}

// WithRadius returns a copy of o with Radius replaced.
func (o Options) WithRadius(r float64) Options {
	o.Radius = r

	return o
}

// validateRadius accepts finite r > 0.
func validateRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return ErrInvalidRadius
	}

	return nil
}

// validateOptions checks internal consistency of Options. O(1).
func validateOptions(o Options) error {
	if err := validateRadius(o.Radius); err != nil {
		return err
	}
	// NaN fails both comparisons, so test the accepted range positively.
	if !(o.Percent >= 0 && o.Percent <= 1) {
		return ErrInvalidPercent
	}
	if o.Workers < 1 {
		return ErrInvalidWorkers
	}
	if !o.Reduction.valid() {
		return ErrUnknownReduction
	}
	if o.Reduction == ReduceScratch && o.Scratch == nil {
		return ErrNilScratch
	}

	return nil
}
