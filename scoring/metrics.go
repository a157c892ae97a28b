package scoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/poiesic/hemeroteca/core"
)

// MetricsMonitor records scoring activity as Prometheus metrics.
type MetricsMonitor struct {
	units        *prometheus.CounterVec
	unitDuration prometheus.Histogram
	batches      prometheus.Counter
	batchSize    prometheus.Gauge
	batchFailed  prometheus.Gauge
	relevance    prometheus.Histogram
}

var _ Monitor = (*MetricsMonitor)(nil)

// NewMetricsMonitor registers the scoring metrics with reg.
func NewMetricsMonitor(reg prometheus.Registerer) *MetricsMonitor {
	factory := promauto.With(reg)
	return &MetricsMonitor{
		units: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "units_total",
			Help:      "Scoring units by result.",
		}, []string{"result"}),
		unitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "unit_duration_seconds",
			Help:      "Time spent scoring one item.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "batches_total",
			Help:      "Scoring batches started.",
		}),
		batchSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "last_batch_size",
			Help:      "Items in the most recent batch.",
		}),
		batchFailed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "last_batch_failed_units",
			Help:      "Failed units in the most recent batch.",
		}),
		relevance: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hemeroteca",
			Subsystem: "scoring",
			Name:      "relevance",
			Help:      "Relevance of scored items.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		}),
	}
}

func (m *MetricsMonitor) BatchStarted(size int) {
	m.batches.Inc()
	m.batchSize.Set(float64(size))
}

func (m *MetricsMonitor) UnitFinished(item *core.Item, elapsed time.Duration, err error) {
	m.unitDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.units.WithLabelValues("error").Inc()
		return
	}
	m.units.WithLabelValues("ok").Inc()
	m.relevance.Observe(item.RelevanceOrZero())
}

func (m *MetricsMonitor) BatchFinished(_, failed int, _ time.Duration) {
	m.batchFailed.Set(float64(failed))
}
