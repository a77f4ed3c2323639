// Package metrics exposes Prometheus counters for conversions.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"fjacquet/fsv-csv/internal/fsvparser"
	"fjacquet/fsv-csv/internal/parsererror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fsv_csv"

// Conversion outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeExtractionError = "extraction_error"
	OutcomeEmptyResult     = "empty_result"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeError           = "error"
)

// Metrics holds the collectors of one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lines       *prometheus.CounterVec
	records     prometheus.Counter
}

// New creates a registry with the conversion collectors and the Go runtime
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by source and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent converting one document.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Extracted lines by classification.",
		}, []string{"kind"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records emitted.",
		}),
	}

	m.registry.MustRegister(
		m.conversions,
		m.duration,
		m.lines,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveConversion records one finished conversion.
func (m *Metrics) ObserveConversion(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(source, outcome).Inc()
	m.duration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveParse adds the line statistics of one parse.
func (m *Metrics) ObserveParse(stats fsvparser.Stats) {
	if m == nil {
		return
	}
	m.lines.WithLabelValues("skip").Add(float64(stats.Skipped))
	m.lines.WithLabelValues(fsvparser.KindLevel1.String()).Add(float64(stats.Level1))
	m.lines.WithLabelValues(fsvparser.KindLevel2.String()).Add(float64(stats.Level2))
	m.lines.WithLabelValues(fsvparser.KindLevel3.String()).Add(float64(stats.Level3))
	m.lines.WithLabelValues(fsvparser.KindDataRow.String()).Add(float64(stats.Records))
	m.lines.WithLabelValues("unmatched").Add(float64(stats.Unmatched))
	m.lines.WithLabelValues("rejected").Add(float64(stats.Rejected))
	m.records.Add(float64(stats.Records))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OutcomeFor maps a conversion error to an outcome label.
func OutcomeFor(err error) string {
	var (
		extractErr *parsererror.ExtractionError
		emptyErr   *parsererror.EmptyResultError
		formatErr  *parsererror.InvalidFormatError
		validErr   *parsererror.ValidationError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &extractErr):
		return OutcomeExtractionError
	case errors.As(err, &emptyErr):
		return OutcomeEmptyResult
	case errors.As(err, &formatErr), errors.As(err, &validErr):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
