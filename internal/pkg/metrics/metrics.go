package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the agent's sync and capture metrics.
type Collector struct {
	PullsTotal       *prometheus.CounterVec
	PushItemsTotal   *prometheus.CounterVec
	PushCyclesTotal  prometheus.Counter
	PushDuration     prometheus.Histogram
	PendingGauge     prometheus.Gauge
	VisitsCaptured   prometheus.Counter
	MediaUploadBytes prometheus.Counter
}

func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		PullsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pulls_total",
				Help:      "Reference-data pull attempts by result",
			},
			[]string{"result"},
		),
		PushItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "push_items_total",
				Help:      "Pending submissions processed by outcome",
			},
			[]string{"outcome"}, // synced, upload_error, submit_error, skipped
		),
		PushCyclesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "push_cycles_total",
				Help:      "Completed push cycles",
			},
		),
		PushDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "push_duration_seconds",
				Help:      "Duration of push cycles in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
		),
		PendingGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "submissions_pending",
				Help:      "Submissions currently awaiting acknowledgment",
			},
		),
		VisitsCaptured: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "visits_captured_total",
				Help:      "Visits captured locally",
			},
		),
		MediaUploadBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "media_upload_bytes_total",
				Help:      "Bytes of media uploaded to the central store",
			},
		),
	}
}

// RecordPull increments the pull counter with a success/error result label.
func (c *Collector) RecordPull(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.PullsTotal.WithLabelValues(result).Inc()
}
