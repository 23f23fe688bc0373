package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "content_workflow"

// OutcomeOK labels a successful attempt; failures carry their error code
const OutcomeOK = "ok"

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "transitions_total", Help: "Workflow transition attempts by transition and outcome."},
		[]string{"transition", "outcome"},
	)
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ai_requests_total", Help: "AI text requests by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	SessionsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "sessions_swept_total", Help: "Expired session rows removed by the sweeper."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers every collector with reg
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(TransitionsTotal)
	reg.MustRegister(AIRequestsTotal)
	reg.MustRegister(SessionsSweptTotal)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
