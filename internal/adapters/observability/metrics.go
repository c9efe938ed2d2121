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
		prometheus.CounterOpts{Namespace: "eatery", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eatery", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	SourceReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatery", Name: "source_reads_total", Help: "Blob reads during catalog load."},
		[]string{"source", "outcome"},
	)
	SourceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eatery", Name: "source_read_duration_seconds",
			Help:    "Blob read duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "eatery", Name: "catalog_records", Help: "Eateries in the loaded catalog."},
	)
	CatalogDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatery", Name: "catalog_load_dropped_total", Help: "Blobs dropped while loading."},
		[]string{"reason"}, // read|malformed
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatery", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts a standalone metrics listener on addr; empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, SourceReads, SourceLatency, CatalogRecords, CatalogDropped, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveSourceRead(source string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SourceReads.WithLabelValues(source, outcome).Inc()
	SourceLatency.WithLabelValues(source).Observe(dur.Seconds())
}

func ObserveDropped(reason string) { CatalogDropped.WithLabelValues(reason).Inc() }

func SetCatalogRecords(n int) { CatalogRecords.Set(float64(n)) }

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
