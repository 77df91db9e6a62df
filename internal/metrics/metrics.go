package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/kumo-site/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cache metrics

	CacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kumo",
		Name:      "cache_requests_total",
		Help:      "Cache lookups by cache name and result (hit, miss, stale).",
	}, []string{"cache", "result"})

	// Upstream API metrics

	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kumo",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to third-party APIs.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"upstream", "operation", "outcome"})

	// Product metrics

	WaitlistSignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kumo",
		Name:      "waitlist_signups_total",
		Help:      "New waitlist subscribers.",
	})

	CountdownStreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kumo",
		Name:      "countdown_stream_clients",
		Help:      "Clients currently connected to the countdown event stream.",
	})

	// Refresher

	RefresherRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kumo",
		Name:      "refresher_runs_total",
		Help:      "Cache warm-up runs by job and outcome.",
	}, []string{"job", "outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kumo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kumo",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		CacheRequestsTotal,
		UpstreamRequestDuration,
		WaitlistSignupsTotal,
		CountdownStreamClients,
		RefresherRunsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// Outcome labels an upstream call for UpstreamRequestDuration.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
