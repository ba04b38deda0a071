package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Optimizations counts optimizer calls by outcome (ok, no_viable_route,
	// invalid_request, cached).
	Optimizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_optimizations_total", Help: "Route optimizations by outcome."},
		[]string{"outcome"},
	)
	// OptimizeDuration records end-to-end optimization latency in seconds.
	OptimizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_optimize_duration_seconds", Help: "Optimization pipeline duration in seconds.", Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}},
	)
	// CandidatesEvaluated tracks how many candidates each call scored.
	CandidatesEvaluated = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_candidates_evaluated", Help: "Candidates scored per optimization.", Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100}},
	)
)

// RegisterDefault registers collectors to the registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Optimizations)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(CandidatesEvaluated)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
