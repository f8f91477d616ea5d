package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records search activity served over HTTP.
type Metrics struct {
	searches       *prometheus.CounterVec
	expandedNodes  prometheus.Histogram
	searchDuration prometheus.Histogram
	sessionsActive prometheus.Gauge
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "searches_total",
			Help:      "Searches served, by outcome.",
		}, []string{"outcome"}),
		expandedNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "expanded_nodes",
			Help:      "Nodes expanded per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "search_duration_seconds",
			Help:      "Wall time of one search.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "astar",
			Name:      "sessions_active",
			Help:      "Step-by-step sessions currently held in memory.",
		}),
	}
}

func (m *Metrics) observeSearch(found bool, expanded int, seconds float64) {
	outcome := "no_path"
	if found {
		outcome = "found"
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.expandedNodes.Observe(float64(expanded))
	m.searchDuration.Observe(seconds)
}
