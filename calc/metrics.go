package calc

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
)

const namespace = "jitcalc"

// Metrics counts interpretations and compilations. It owns its registry, so
// any number of Metrics may coexist. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	interpretations *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	compilations    prometheus.Counter
	codeSize        prometheus.Histogram
}

// NewMetrics creates a collector with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		interpretations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interpret",
			Name:      "total",
			Help:      "Number of interpreted lines by mode and outcome",
		}, []string{"mode", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "interpret",
			Name:      "duration_seconds",
			Help:      "Time to interpret one line, from tokenizing to result",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"mode"}),

		compilations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jit",
			Name:      "compilations_total",
			Help:      "Number of expressions compiled to machine code",
		}),

		codeSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jit",
			Name:      "code_size_bytes",
			Help:      "Size of emitted machine code",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 8),
		}),
	}
}

// Registry returns the registry holding the collectors, for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

func (m *Metrics) observe(mode string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.interpretations.WithLabelValues(mode, outcome(err)).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (m *Metrics) compiled(size int) {
	if m == nil {
		return
	}

	m.compilations.Inc()
	m.codeSize.Observe(float64(size))
}

// outcome labels err by its category.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, lang.ErrEmptyInput):
		return "empty"
	case errors.Is(err, lang.ErrTokenize):
		return "tokenize"
	case errors.Is(err, lang.ErrParse):
		return "parse"
	case errors.Is(err, lang.ErrArithmetic):
		return "arithmetic"
	case errors.Is(err, jit.ErrCodegen):
		return "codegen"
	default:
		return "error"
	}
}

// Write gathers every metric and writes it in the Prometheus text
// exposition format:
//
//	# HELP jitcalc_interpret_total Number of interpreted lines by mode and outcome
//	# TYPE jitcalc_interpret_total counter
//	jitcalc_interpret_total{mode="jit",outcome="ok"} 3
func (m *Metrics) Write(w io.Writer) error {
	if m == nil {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
