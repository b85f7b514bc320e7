package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RollupRecomputations counts parent status rollups by resulting status.
	RollupRecomputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worktrack",
		Name:      "rollup_recomputations_total",
		Help:      "Work-item status rollups, labelled by the resulting parent status.",
	}, []string{"status"})

	// WorklogMutations counts worklog writes by operation and outcome.
	WorklogMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worktrack",
		Name:      "worklog_mutations_total",
		Help:      "Worklog create/edit/delete operations, labelled by operation and outcome.",
	}, []string{"operation", "outcome"})

	// VisibilityDenials counts rejected assignment attempts.
	VisibilityDenials = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "worktrack",
		Name:      "visibility_denials_total",
		Help:      "Requests rejected because the target employee was outside the caller's visible set.",
	})
)
