// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixisphere_upstream_requests_total",
			Help: "Total number of upstream API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pixisphere_upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	StoreLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixisphere_store_loads_total",
			Help: "Total number of listing store loads by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	StoreCollectionSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pixisphere_store_collection_size",
			Help: "Number of photographers in the published collection",
		},
	)

	StoreLoadsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pixisphere_store_loads_in_flight",
			Help: "Number of store loads that have not resolved yet",
		},
	)

	SearchInputs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixisphere_search_inputs_total",
			Help: "Search bar input events, received and fired after debounce",
		},
		[]string{"stage"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeNotFound = "not_found"
)
