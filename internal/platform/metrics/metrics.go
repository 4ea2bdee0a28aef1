package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AuthRejections      prometheus.Counter
	AlertsEmitted       *prometheus.CounterVec
	EvaluationsSkipped  prometheus.Counter
	EvaluationsFailed   prometheus.Counter
	EvaluationsDropped  prometheus.Counter
	EvaluationsBelowMin prometheus.Counter
}

// New creates all metrics on the given registerer. Tests pass a fresh
// prometheus.NewRegistry so repeated construction never double-registers.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuthRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "exptrack_auth_rejections_total",
			Help: "Total number of requests rejected by the auth gate",
		}),
		AlertsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "exptrack_budget_alerts_emitted_total",
			Help: "Total number of budget alert notifications written, by level",
		}, []string{"level"}),
		EvaluationsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "exptrack_budget_evaluations_skipped_total",
			Help: "Evaluations aborted because the budget was missing or not owned",
		}),
		EvaluationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "exptrack_budget_evaluations_failed_total",
			Help: "Evaluations aborted by a storage failure",
		}),
		EvaluationsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "exptrack_budget_evaluations_dropped_total",
			Help: "Evaluation triggers dropped because the queue was full or stopped",
		}),
		EvaluationsBelowMin: factory.NewCounter(prometheus.CounterOpts{
			Name: "exptrack_budget_evaluations_quiet_total",
			Help: "Evaluations that completed below the warning threshold",
		}),
	}
}
