// SPDX-License-Identifier: MIT

package perturb

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Engine runs selections and search steps with a fixed configuration and a
// seeded base sampling stream.
//
// An Engine is NOT safe for concurrent use: every call consumes the base stream,
// and SearchStep mutates the caller's matrices. Serialize calls, which callers
// must do anyway for any two points whose distance entries overlap.
type Engine struct {
	opts Options
	rng  *rand.PCG
	log  zerolog.Logger
}

// NewEngine validates opts and seeds the base stream.
// Two engines built from equal Options produce identical results for
// identical call sequences.
func NewEngine(opts Options) (*Engine, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Engine{
		opts: opts,
		rng:  rngFromSeed(opts.Seed),
		log:  opts.Logger,
	}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// SetRadius changes the step magnitude for subsequent calls.
// Annealing schedules live with the caller; this is their hook.
func (e *Engine) SetRadius(r float64) error {
	if err := validateRadius(r); err != nil {
		return err
	}
	e.opts.Radius = r

	return nil
}

// Evaluate is the engine form of the package-level Evaluate: same result,
// plus clamp logging and metrics.
func (e *Engine) Evaluate(p *Problem, row, dim int, step float64) (float64, error) {
	n, dims, err := p.checkRow(row)
	if err != nil {
		return 0, err
	}
	if err = checkDim(dim, dims); err != nil {
		return 0, err
	}
	v, clamps := rowErrorAfter(p.X.Data(), p.Current.Data(), p.Goal.Data(), n, dims, row, dim, step)
	e.reportClamps(row, clamps)

	return v, nil
}

// reportClamps logs and counts clamped radicands for one point.
func (e *Engine) reportClamps(row, clamps int) {
	if clamps == 0 {
		return
	}
	e.log.Debug().
		Int("point", row).
		Int("clamps", clamps).
		Msg("negative squared distance clamped to zero")
	if e.opts.Metrics {
		RadicandClamps.Add(float64(clamps))
	}
}
