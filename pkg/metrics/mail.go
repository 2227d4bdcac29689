package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MailDispatchMetrics records metadata for mail intent dispatch cycles.
type MailDispatchMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	terminal *prometheus.CounterVec
}

// NewMailDispatchMetrics registers the dispatcher metrics on the provided registerer.
func NewMailDispatchMetrics(reg prometheus.Registerer) *MailDispatchMetrics {
	if reg == nil {
		return &MailDispatchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mail_dispatch_duration_seconds",
		Help:    "Duration of mail dispatch cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"worker"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_dispatch_success",
		Help: "Mail intents published successfully.",
	}, []string{"worker"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_dispatch_failure",
		Help: "Mail intent publish attempts that failed.",
	}, []string{"worker"})
	terminal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_dispatch_terminal",
		Help: "Mail intents abandoned after exhausting attempts.",
	}, []string{"worker"})
	reg.MustRegister(duration, success, failure, terminal)
	return &MailDispatchMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		terminal: terminal,
	}
}

// ObserveDuration records the duration of a dispatch cycle.
func (m *MailDispatchMetrics) ObserveDuration(worker string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(worker)).Observe(duration.Seconds())
}

// IncSuccess increments the published counter.
func (m *MailDispatchMetrics) IncSuccess(worker string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(worker)).Inc()
}

// IncFailure increments the failed attempt counter.
func (m *MailDispatchMetrics) IncFailure(worker string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(worker)).Inc()
}

// IncTerminal increments the abandoned intent counter.
func (m *MailDispatchMetrics) IncTerminal(worker string) {
	if m == nil || m.terminal == nil {
		return
	}
	m.terminal.WithLabelValues(normalizeLabel(worker)).Inc()
}

func normalizeLabel(worker string) string {
	if worker == "" {
		return "unknown"
	}
	return worker
}
