// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	BetsPlaced              *prometheus.CounterVec
	BetsSettled             *prometheus.CounterVec
	BetsExpired             *prometheus.CounterVec
	LedgerNegativeAvailable prometheus.Counter
	LedgerDrift             prometheus.Counter
	EngagementEvents        *prometheus.CounterVec
	EngagementPublishErrors prometheus.Counter
	HTTPRequests            *prometheus.CounterVec
	HTTPDuration            *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BetsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bets_placed_total",
			Help: "Bets placed, by mode.",
		}, []string{"mode"}),
		BetsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bets_settled_total",
			Help: "Bets settled, by who won (bettor or house).",
		}, []string{"winner"}),
		BetsExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bets_expired_total",
			Help: "Bets closed by the expiry sweeper, by final status.",
		}, []string{"status"}),
		LedgerNegativeAvailable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_negative_available_total",
			Help: "Balance reads where available points came out negative.",
		}),
		LedgerDrift: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_drift_total",
			Help: "Reconciliations that found the cached balance out of sync with the ledger.",
		}),
		EngagementEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_events_total",
			Help: "Engagement events consumed by the counter worker, by kind and result.",
		}, []string{"kind", "result"}),
		EngagementPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engagement_publish_errors_total",
			Help: "Engagement events that could not be published.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests, by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.BetsPlaced, m.BetsSettled, m.BetsExpired,
		m.LedgerNegativeAvailable, m.LedgerDrift,
		m.EngagementEvents, m.EngagementPublishErrors,
		m.HTTPRequests, m.HTTPDuration,
	)
	return m
}

// NewUnregistered is for tests that do not scrape.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
