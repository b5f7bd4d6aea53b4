package hpograph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements MetricsCollector with Prometheus metrics.
type PrometheusCollector struct {
	opLatency  *prometheus.HistogramVec
	batchItems *prometheus.CounterVec
	savedBytes prometheus.Counter
}

var _ MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpograph_operation_duration_seconds",
			Help:    "Latency of graph operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hpograph_batch_items_total",
			Help: "Outer elements scored by batch jobs.",
		}, []string{"op"}),
		savedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hpograph_saved_bytes_total",
			Help: "Bytes of snapshots written.",
		}),
	}

	for _, c := range []prometheus.Collector{p.opLatency, p.batchItems, p.savedBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *PrometheusCollector) observe(op string, d time.Duration, err error) {
	p.opLatency.WithLabelValues(op, status(err)).Observe(d.Seconds())
}

// RecordOpen implements MetricsCollector.
func (p *PrometheusCollector) RecordOpen(d time.Duration, err error) {
	p.observe("open", d, err)
}

// RecordSave implements MetricsCollector.
func (p *PrometheusCollector) RecordSave(size int, d time.Duration, err error) {
	p.observe("save", d, err)
	if err == nil {
		p.savedBytes.Add(float64(size))
	}
}

// RecordSimilarity implements MetricsCollector.
func (p *PrometheusCollector) RecordSimilarity(d time.Duration, err error) {
	p.observe("similarity", d, err)
}

// RecordBatch implements MetricsCollector.
func (p *PrometheusCollector) RecordBatch(op string, items int, d time.Duration, err error) {
	p.observe(op, d, err)
	p.batchItems.WithLabelValues(op).Add(float64(items))
}
