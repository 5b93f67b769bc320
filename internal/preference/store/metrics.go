package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atelier_preference_store_duration_ms",
		Help:    "Latency of preference store operations in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"backend", "op"})
)

func observe(backend, op string, start time.Time) {
	opDurationMs.WithLabelValues(backend, op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}
