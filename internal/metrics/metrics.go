// Package metrics exposes prometheus counters for validation passes,
// submissions and HTTP traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const namespace = "contactform"

// Metrics implements controller.Observer.
type Metrics struct {
	registry *prometheus.Registry

	passes        *prometheus.CounterVec
	failedChecks  *prometheus.CounterVec
	submissions   prometheus.Counter
	submitErrors  prometheus.Counter
	requests      *prometheus.CounterVec
	requestTiming *prometheus.HistogramVec
}

var _ controller.Observer = (*Metrics)(nil)

// New registers the collectors on reg, or on a fresh registry when reg is
// nil.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_passes_total",
			Help:      "Validation passes by outcome.",
		}, []string{"outcome"}),
		failedChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_checks_total",
			Help:      "Failing checks by control.",
		}, []string{"control"}),
		submissions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Confirmed submissions.",
		}),
		submitErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submit_errors_total",
			Help:      "Submissions the submitter failed to deliver.",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Tracks the number of HTTP requests.",
		}, []string{"handler", "method", "code"}),
		requestTiming: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Tracks the latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler", "method", "code"}),
	}
}

func (m *Metrics) ValidationCompleted(result validation.Result) {
	outcome := "invalid"
	if result.Valid {
		outcome = "valid"
	}
	m.passes.WithLabelValues(outcome).Inc()
	for _, issue := range result.Issues {
		m.failedChecks.WithLabelValues(issue.Control).Inc()
	}
}

func (m *Metrics) Submitted(submit.Record) {
	m.submissions.Inc()
}

func (m *Metrics) SubmitFailed(error) {
	m.submitErrors.Inc()
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument wraps h with request counting and timing under the given
// handler label.
func (m *Metrics) Instrument(name string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"handler": name}
	return promhttp.InstrumentHandlerDuration(
		m.requestTiming.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h),
	)
}
