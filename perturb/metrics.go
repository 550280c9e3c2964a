// SPDX-License-Identifier: MIT

package perturb

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CandidateEvaluations counts incremental row-error evaluations by operation.
	CandidateEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lvmds_candidate_evaluations_total",
			Help: "The total number of perturbation candidates evaluated",
		},
		[]string{"op"},
	)

	// MovesAccepted counts perturbations applied by SearchStep.
	MovesAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lvmds_moves_accepted_total",
			Help: "The total number of improving perturbations applied",
		},
	)

	// RadicandClamps counts negative radicands clamped to zero.
	RadicandClamps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lvmds_radicand_clamps_total",
			Help: "The total number of negative squared distances clamped to zero",
		},
	)

	// SelectionDuration tracks SelectBest wall time per reduction strategy.
	SelectionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lvmds_selection_duration_seconds",
			Help:    "The duration of best-candidate selection in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12), // From 1µs to ~4s
		},
		[]string{"reduction"},
	)
)

const (
	opSelect = "select"
	opSearch = "search"
)

// Collectors returns every collector of this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		CandidateEvaluations,
		MovesAccepted,
		RadicandClamps,
		SelectionDuration,
	}
}

// MustRegister registers the package collectors on reg; it panics on
// duplicate registration like prometheus.Registerer.MustRegister.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(Collectors()...)
}
