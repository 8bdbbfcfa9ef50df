package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writeConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relations",
		Name:      "write_conflicts_total",
		Help:      "Transactions aborted by lock contention, grouped by pg error code.",
	}, []string{"pg_code"})

	hierarchyRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relations",
		Name:      "hierarchy_rejections_total",
		Help:      "Edge writes rejected by hierarchy validation.",
	}, []string{"reason"})
)

func recordWriteConflict(pgCode string) {
	writeConflicts.WithLabelValues(pgCode).Inc()
}

func recordHierarchyRejection(reason string) {
	hierarchyRejections.WithLabelValues(reason).Inc()
}
