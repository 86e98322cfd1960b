package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	postOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_post_operations_total",
		Help: "Post store operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_auth_attempts_total",
		Help: "Registration and login attempts by kind and outcome.",
	}, []string{"kind", "outcome"})
)

// PostOperation counts one list/get/create/update/delete call
func PostOperation(operation, outcome string) {
	postOperations.WithLabelValues(operation, outcome).Inc()
}

// AuthAttempt counts one register/login call
func AuthAttempt(kind, outcome string) {
	authAttempts.WithLabelValues(kind, outcome).Inc()
}
