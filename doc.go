// Package lvmds is a small toolkit for the inner step of multidimensional
// scaling by stress minimization.
//
// It moves one point of a configuration at a time, one coordinate by ±radius,
// and keeps the pairwise distance matrix up to date incrementally instead of
// recomputing it.
//
// Packages:
//
//	matrix/   row-major Dense storage plus structural validators
//	          (finite, non-negative, symmetric)
//	perturb/  candidate evaluation, parallel best-candidate selection,
//	          first-improvement pattern search, stress bookkeeping,
//	          YAML options, zerolog logging and prometheus metrics
//	examples/ a runnable ring-layout recovery showing a full outer loop
//
// The outer schedule (point order, radius annealing, stopping rules) is left
// to the caller; see examples/mds_ring_layout.go for one way to write it.
package lvmds
