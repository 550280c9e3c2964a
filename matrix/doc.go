// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage used by the MDS perturbation core.
//
// What it offers:
//
//   - Dense - a row-major float64 matrix in one flat slice (offset = i*cols + j),
//     with bounds-checked At/Set, no-copy Row views and a Data accessor for
//     hot loops that validate once up front.
//   - Validators - ValidateNotNil, ValidateSquare, ValidateSameShape,
//     ValidateSymmetric, ValidateFinite, ValidateNonNegative.
//   - Sentinel errors - every failure is one of the Err* values in errors.go,
//     possibly wrapped with a method/validator tag; match with errors.Is.
//
// A point configuration is an n×dims Dense (one point per row); a distance
// matrix is an n×n Dense that callers keep symmetric.
//
//	x, _ := matrix.NewDenseFrom([][]float64{{0, 0}, {1, 0}, {0, 1}})
//	row, _ := x.Row(1) // []float64{1, 0}, aliases x
package matrix
