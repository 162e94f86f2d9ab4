package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	syncOps        *prometheus.CounterVec
	cacheFallbacks *prometheus.CounterVec
	scoresComputed *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		syncOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triggerlab_sync_operations_total",
				Help: "Total synchronizer operations against the remote store",
			},
			[]string{"operation", "result"},
		),
		cacheFallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triggerlab_cache_fallbacks_total",
				Help: "Total reads served from the local cache after a remote failure",
			},
			[]string{"operation"},
		),
		scoresComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triggerlab_scores_computed_total",
				Help: "Total composite scores computed",
			},
			[]string{"condition_type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "triggerlab_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSyncOp records a synchronizer operation outcome.
func (r *Recorder) RecordSyncOp(op, result string) {
	r.syncOps.WithLabelValues(op, result).Inc()
}

// RecordCacheFallback records a read served from the local cache.
func (r *Recorder) RecordCacheFallback(op string) {
	r.cacheFallbacks.WithLabelValues(op).Inc()
}

// RecordScoreComputed records a score computation for a condition type.
func (r *Recorder) RecordScoreComputed(conditionType string) {
	r.scoresComputed.WithLabelValues(conditionType).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
