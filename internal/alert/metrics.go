package alert

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// MetricsHandler exports check outcome counters and latency histograms.
type MetricsHandler struct {
	checks      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func NewMetricsHandler(reg prometheus.Registerer) *MetricsHandler {
	h := &MetricsHandler{
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitewatch_checks_total",
				Help: "Completed site checks by outcome",
			},
			[]string{"status"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitewatch_transitions_total",
				Help: "Status transitions by new status",
			},
			[]string{"to"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitewatch_check_duration_seconds",
				Help:    "Duration of site checks",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(h.checks, h.transitions, h.duration)
	return h
}

func (h *MetricsHandler) OnCheckComplete(r domain.CheckResult) {
	h.checks.WithLabelValues(string(r.Status)).Inc()
	h.duration.WithLabelValues(string(r.Status)).Observe(r.ResponseTimeMS / 1000)
}

func (h *MetricsHandler) OnStatusChange(r domain.CheckResult, _ domain.Status) {
	h.transitions.WithLabelValues(string(r.Status)).Inc()
}
