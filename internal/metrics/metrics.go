// Package metrics holds the Prometheus collectors for segmentation.
// Collectors live in their own registry so tests and embedders are not
// coupled to the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "rsvp"
	subsystem = "segmenter"
)

// Result sources for SegmentRequests.
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
	SourceError    = "error"
)

var (
	// Registry is the registry every rsvp collector is registered with.
	Registry = prometheus.NewRegistry()

	segmentRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_ops_total",
			Help:      "The total number of segmentation requests.",
		},
		[]string{"source"},
	)
	segmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "segment_creation_ops_total",
			Help:      "The total number of segments produced.",
		},
		[]string{"tokenizer"},
	)
	segmentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Time taken to segment a text, excluding cache hits.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"tokenizer"},
	)
	cacheShared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "singleflight_shared_total",
			Help:      "The total number of requests served by an in-flight computation.",
		},
	)
)

func init() {
	Registry.MustRegister(segmentRequests)
	Registry.MustRegister(segmentsCreated)
	Registry.MustRegister(segmentDuration)
	Registry.MustRegister(cacheShared)
	Registry.MustRegister(collectors.NewGoCollector())
}

// RecordRequest counts one segmentation request by result source.
func RecordRequest(source string) {
	segmentRequests.WithLabelValues(source).Inc()
}

// RecordSegmentation records a computed segmentation run.
func RecordSegmentation(tokenizer string, segments int, elapsed time.Duration) {
	segmentsCreated.WithLabelValues(tokenizer).Add(float64(segments))
	segmentDuration.WithLabelValues(tokenizer).Observe(elapsed.Seconds())
}

// RecordCacheShared counts a request deduplicated by singleflight.
func RecordCacheShared() {
	cacheShared.Inc()
}

// Handler returns an HTTP handler exposing Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
