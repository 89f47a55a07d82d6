// Package metrics records scan outcomes for the Prometheus node
// exporter textfile collector.
package metrics

import (
	"errors"
	"time"

	"github.com/ericlevine/qrdecode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan holds the counters for one scan run on its own registry.
type Scan struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	decodeDuration  prometheus.Histogram
	errorsCorrected prometheus.Histogram
	versions        *prometheus.CounterVec
	crossCheck      *prometheus.CounterVec
}

// NewScan returns a fresh set of scan metrics.
func NewScan() *Scan {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Scan{
		registry: reg,
		filesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrdecode_files_total",
				Help: "Total number of scanned files",
			},
			[]string{"status"}, // status: decoded, not_found, checksum, format, error
		),
		decodeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qrdecode_decode_duration_seconds",
				Help:    "Time to load and decode one file",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		errorsCorrected: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qrdecode_errors_corrected",
				Help:    "Codeword errors corrected per decoded symbol",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		versions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrdecode_symbols_total",
				Help: "Decoded symbols by error correction level",
			},
			[]string{"ecc"},
		),
		crossCheck: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrdecode_cross_check_total",
				Help: "Cross-check outcomes against a second decoder",
			},
			[]string{"result"}, // result: match, mismatch, unavailable
		),
	}
}

// Registry exposes the underlying registry.
func (s *Scan) Registry() *prometheus.Registry {
	return s.registry
}

// ObserveDecoded records a successful decode.
func (s *Scan) ObserveDecoded(d time.Duration, ecc string, errorsCorrected int) {
	s.filesTotal.WithLabelValues("decoded").Inc()
	s.decodeDuration.Observe(d.Seconds())
	s.errorsCorrected.Observe(float64(errorsCorrected))
	s.versions.WithLabelValues(ecc).Inc()
}

// ObserveFailed records a failed file, classified by err.
func (s *Scan) ObserveFailed(d time.Duration, err error) {
	s.filesTotal.WithLabelValues(Status(err)).Inc()
	s.decodeDuration.Observe(d.Seconds())
}

// ObserveCrossCheck records the outcome of a cross-check.
func (s *Scan) ObserveCrossCheck(result string) {
	s.crossCheck.WithLabelValues(result).Inc()
}

// WriteToTextfile writes all metrics to path in the text exposition
// format, atomically.
func (s *Scan) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, s.registry)
}

// Status maps a decode error to the status label.
func Status(err error) string {
	switch {
	case err == nil:
		return "decoded"
	case errors.Is(err, qrdecode.ErrNotFound):
		return "not_found"
	case errors.Is(err, qrdecode.ErrChecksum):
		return "checksum"
	case errors.Is(err, qrdecode.ErrFormat):
		return "format"
	default:
		return "error"
	}
}
