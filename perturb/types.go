// SPDX-License-Identifier: MIT

package perturb

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors. Callers match them via errors.Is; boundary code may wrap
// them with fmt.Errorf("ctx: %w", ErrX) to add coordinates.
var (
	// ErrNilProblem is returned when a nil *Problem (or a nil matrix inside it) is used.
	ErrNilProblem = errors.New("perturb: nil problem")

	// ErrShapeMismatch indicates that X, Current and Goal disagree on the point count,
	// or that a distance matrix is not n×n.
	ErrShapeMismatch = errors.New("perturb: shape mismatch")

	// ErrRowOutOfRange indicates a point index outside [0, n).
	ErrRowOutOfRange = errors.New("perturb: point index out of range")

	// ErrDimOutOfRange indicates a perturbed dimension outside [0, dims).
	ErrDimOutOfRange = errors.New("perturb: dimension out of range")

	// ErrInvalidRadius indicates a radius that is not a finite positive number.
	ErrInvalidRadius = errors.New("perturb: radius must be finite and > 0")

	// ErrInvalidPercent indicates a sampling probability outside [0, 1].
	ErrInvalidPercent = errors.New("perturb: percent must be in [0, 1]")

	// ErrInvalidWorkers indicates a worker count below 1.
	ErrInvalidWorkers = errors.New("perturb: workers must be >= 1")

	// ErrUnknownReduction indicates a Reduction value outside the known set.
	ErrUnknownReduction = errors.New("perturb: unknown reduction strategy")

	// ErrNilScratch is returned when ReduceScratch is selected without a buffer.
	ErrNilScratch = errors.New("perturb: scratch reduction requires a buffer")

	// ErrInvalidCapacity indicates a non-positive scratch buffer capacity.
	ErrInvalidCapacity = errors.New("perturb: scratch capacity must be > 0")

	// ErrScratchCapacity is returned when 2·dims candidates do not fit the scratch buffer.
	ErrScratchCapacity = errors.New("perturb: scratch buffer smaller than candidate count")

	// ErrInvalidBaseline indicates a NaN or ±Inf current/incumbent error passed to SearchStep.
	ErrInvalidBaseline = errors.New("perturb: baseline error must be finite")
)

// Candidate is one trial move for a fixed point: add Step to coordinate Dim.
type Candidate struct {
	Dim  int
	Step float64
}

// candidateAt maps a candidate index jj ∈ [0, 2·dims) to its move.
// The first dims indices step by +radius, the rest by −radius.
func candidateAt(jj, dims int, radius float64) Candidate {
	if jj < dims {
		return Candidate{Dim: jj, Step: radius}
	}

	return Candidate{Dim: jj - dims, Step: -radius}
}

// Selection is the best candidate found for a point plus its row error.
// Error == +Inf means nothing was sampled; Dim and Step then hold the
// neutral defaults (0, +radius) and must not be applied.
type Selection struct {
	Error float64
	Dim   int
	Step  float64
}

// Found reports whether the selection refers to an evaluated candidate.
func (s Selection) Found() bool { return !math.IsInf(s.Error, 1) }

// Candidate returns the selected move.
func (s Selection) Candidate() Candidate { return Candidate{Dim: s.Dim, Step: s.Step} }

// noSelection is the sentinel state every reduction starts from.
func noSelection(radius float64) Selection {
	return Selection{Error: math.Inf(1), Dim: 0, Step: radius}
}

// StepReport summarizes one SearchStep call.
type StepReport struct {
	Error    float64 // final current error of the point
	Sampled  int     // candidates that passed the Percent draw
	Accepted int     // candidates applied to X / Current
	Clamps   int     // negative radicands clamped to zero
}

// Reduction selects how SelectBest merges partial results from its workers.
type Reduction int

const (
	// ReduceLocked keeps a running optimum per worker and merges under a mutex.
	ReduceLocked Reduction = iota

	// ReduceScratch writes every candidate error into its own slot of a
	// caller-owned ScratchBuffer and scans it once all workers have joined.
	ReduceScratch
)

const (
	reduceLockedName  = "locked"
	reduceScratchName = "scratch"
)

// String implements fmt.Stringer.
func (r Reduction) String() string {
	switch r {
	case ReduceLocked:
		return reduceLockedName
	case ReduceScratch:
		return reduceScratchName
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

// ParseReduction maps "locked" / "scratch" (case-insensitive) to a Reduction.
func ParseReduction(s string) (Reduction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case reduceLockedName:
		return ReduceLocked, nil
	case reduceScratchName:
		return ReduceScratch, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownReduction)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for the textual form.
func (r *Reduction) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseReduction(s)
	if err != nil {
		return err
	}
	*r = v

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Reduction) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r Reduction) valid() bool {
	return r == ReduceLocked || r == ReduceScratch
}
