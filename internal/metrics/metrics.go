package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmux_provider_requests_total",
		Help: "Total upstream provider calls, labelled by provider and outcome.",
	}, []string{"provider", "status"})

	EventsNormalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmux_events_normalized_total",
		Help: "Total raw records normalized into canonical events, labelled by provider.",
	}, []string{"provider"})

	ErrorEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmux_error_events_total",
		Help: "Total records that failed normalization and became error events.",
	}, []string{"provider"})

	PartyOverrides = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmux_party_overrides_total",
		Help: "Total events the party classifier reclassified, labelled by provider.",
	}, []string{"provider"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventmux_cache_hits_total",
		Help: "Total search responses served from the cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventmux_cache_misses_total",
		Help: "Total searches that bypassed or missed the cache.",
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventmux_search_duration_ms",
		Help:    "End-to-end search latency in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000},
	})
)
