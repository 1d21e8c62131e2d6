// Package metrics exposes command execution metrics over Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status values for command execution metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder records the outcome of a command execution.
type Recorder interface {
	RecordExecution(command, status string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordExecution(string, string, time.Duration) {}

// Nop returns a Recorder that discards everything.
func Nop() Recorder {
	return nopRecorder{}
}

type PrometheusRecorder struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusRecorder creates the command collectors and registers them with reg.
// Panics if registration fails, following prometheus convention.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gsbot_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gsbot_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	reg.MustRegister(r.executions, r.duration)

	return r
}

func (r *PrometheusRecorder) RecordExecution(command, status string, duration time.Duration) {
	r.executions.WithLabelValues(command, status).Inc()
	r.duration.WithLabelValues(command).Observe(duration.Seconds())
}
