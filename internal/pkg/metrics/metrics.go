// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "placementhub"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status_code"},
	)

	// DBPoolConnections tracks database connection pool state.
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Number of database connections by state",
		},
		[]string{"state"},
	)

	// LoginAttempts counts login attempts by requested role and outcome.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by requested role and outcome",
		},
		[]string{"role", "outcome"},
	)

	// RegionRedirects counts authorization redirects away from role regions.
	RegionRedirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "region_redirects_total",
			Help:      "Navigations redirected away from a role region",
		},
		[]string{"region", "reason"},
	)
)

// RecordLoginAttempt records a login attempt outcome.
func RecordLoginAttempt(role, outcome string) {
	LoginAttempts.WithLabelValues(role, outcome).Inc()
}

// RecordRegionRedirect records a redirect issued by the route authorizer.
func RecordRegionRedirect(region, reason string) {
	RegionRedirects.WithLabelValues(region, reason).Inc()
}
