// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// A Dense rejects NaN/±Inf on ingestion and Set. Structural checks such as
// symmetry take an explicit tolerance; DefaultEpsilon is the fallback callers
// use when they have no better number.
package matrix

const (
	// DefaultEpsilon is the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)
