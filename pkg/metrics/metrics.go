package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skillsync"

// Role profile cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
)

var (
	RoleCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "role_cache",
		Name:      "lookups_total",
		Help:      "Role profile cache lookups by result (hit, miss, stale).",
	}, []string{"result"})

	RoleGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "role_cache",
		Name:      "generations_total",
		Help:      "Role profile generations by outcome.",
	}, []string{"outcome"})

	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ai",
		Name:      "requests_total",
		Help:      "Generative model calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	AIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Generative model call latency.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"operation"})

	JobPostingsFetched = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "postings_returned",
		Help:      "Number of job descriptions returned per search after filtering.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
