// Package metrics exposes Prometheus counters for received submissions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"email-intake/internal/validator"
)

const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

var (
	// SubmissionsTotal counts stored submissions by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emailintake",
			Name:      "submissions_total",
			Help:      "Total number of stored submissions by validation outcome",
		},
		[]string{"outcome"},
	)

	// RuleViolationsTotal counts failed rules by rule identifier
	RuleViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emailintake",
			Name:      "rule_violations_total",
			Help:      "Total number of email rule violations by rule",
		},
		[]string{"rule"},
	)
)

// ObserveOutcome records one validated submission.
func ObserveOutcome(o validator.Outcome) {
	if o.Valid() {
		SubmissionsTotal.WithLabelValues(OutcomeValid).Inc()
		return
	}
	SubmissionsTotal.WithLabelValues(OutcomeInvalid).Inc()
	for _, v := range o.Violations {
		RuleViolationsTotal.WithLabelValues(v.Rule).Inc()
	}
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
