package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "mestre", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mestre", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "mestre", Name: "provider_requests_total", Help: "Outbound provider requests."},
		[]string{"endpoint", "status"}, // endpoint: token|search
	)
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mestre", Name: "provider_request_duration_seconds",
			Help:    "Outbound provider request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "mestre", Name: "scans_total", Help: "Completed grid scans."},
		[]string{"result"}, // result: ok|error
	)
	ScanOffers = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mestre", Name: "scan_offers",
			Help:    "Qualifying offers surfaced per scan.",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, ProviderRequests, ProviderLatency, ScansTotal, ScanOffers)
}

func ObserveHTTP(route, method string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(d.Seconds())
}

func ObserveProvider(endpoint string, status int, d time.Duration) {
	ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	ProviderLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Serve exposes /metrics on its own listener. Disabled when addr is empty.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}
