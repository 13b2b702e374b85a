package request

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shelternav",
		Subsystem: "request",
		Name:      "provider_requests_total",
		Help:      "Upstream provider requests by outcome",
	}, []string{"provider", "outcome"})
	metricCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shelternav",
		Subsystem: "request",
		Name:      "cache_hits_total",
		Help:      "Responses served from the local cache",
	}, []string{"provider"})
	metricCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shelternav",
		Subsystem: "request",
		Name:      "cache_misses_total",
		Help:      "Cache lookups that required an upstream request",
	}, []string{"provider"})
)
