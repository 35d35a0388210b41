// Package metrics exposes upload and pipeline counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload results.
const (
	ResultOK            = "ok"
	ResultLoadError     = "load_error"
	ResultPipelineError = "pipeline_error"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry
	uploads  *prometheus.CounterVec
	rows     prometheus.Histogram
	pairs    prometheus.Histogram
}

// New registers the collectors. sessions reports the live session count at scrape time.
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guestpost",
			Name:      "uploads_total",
			Help:      "Uploaded sheets by outcome.",
		}, []string{"result"}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guestpost",
			Name:      "upload_rows",
			Help:      "Data rows per accepted upload.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6),
		}),
		pairs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guestpost",
			Name:      "upload_keyword_pairs",
			Help:      "Keyword/url pairs produced per accepted upload.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6),
		}),
	}

	reg.MustRegister(m.uploads, m.rows, m.pairs, collectors.NewGoCollector())
	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "guestpost",
			Name:      "sessions",
			Help:      "Sessions currently holding an upload.",
		}, func() float64 { return float64(sessions()) }))
	}
	return m
}

// ObserveUpload records a successful upload.
func (m *Metrics) ObserveUpload(rows, pairs int) {
	m.uploads.WithLabelValues(ResultOK).Inc()
	m.rows.Observe(float64(rows))
	m.pairs.Observe(float64(pairs))
}

// UploadFailed records a rejected upload.
func (m *Metrics) UploadFailed(result string) {
	m.uploads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
