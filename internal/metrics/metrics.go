package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/dashboard-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Access gate

	GateOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "access_gate_outcomes_total",
		Help:      "Authorization decisions by route and outcome (allowed, unauthenticated, inactive, forbidden, error).",
	}, []string{"path", "outcome"})

	// Janitor

	SweepDeletedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Name:      "janitor_deleted_total",
		Help:      "Expired rows removed by the janitor, by kind.",
	}, []string{"kind"})

	SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Name:      "janitor_sweep_duration_seconds",
		Help:      "Time taken for one janitor sweep.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		GateOutcomesTotal,
		SweepDeletedTotal,
		SweepDuration,
	)
}

// prober is satisfied by *health.Checker.
type prober interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

// NewServer serves /metrics, /healthz and /readyz on a port separate from
// the public API.
func NewServer(addr string, checker prober) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
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
