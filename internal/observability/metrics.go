package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	busPulses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "organd",
			Subsystem: "bus",
			Name:      "pulses_total",
			Help:      "Total pulses emitted on the kernel bus.",
		},
		[]string{"kind"},
	)
	tickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "organd",
			Subsystem: "kernel",
			Name:      "tick_duration_seconds",
			Help:      "Daemon tick duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"daemon"},
	)
	tickPanics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "organd",
			Subsystem: "kernel",
			Name:      "tick_panics_total",
			Help:      "Daemon ticks recovered from a panic.",
		},
		[]string{"daemon"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "organd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "organd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RegisterMetrics installs the collectors exactly once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(busPulses, tickDuration, tickPanics, httpRequests, httpDuration)
	})
}

// RecordPulse counts one bus pulse by kind.
func RecordPulse(kind string) {
	RegisterMetrics()
	busPulses.WithLabelValues(kind).Inc()
}

// RecordTick observes one daemon tick duration.
func RecordTick(daemon string, duration time.Duration) {
	RegisterMetrics()
	tickDuration.WithLabelValues(daemon).Observe(duration.Seconds())
}

// RecordTickPanic counts one recovered daemon tick.
func RecordTickPanic(daemon string) {
	RegisterMetrics()
	tickPanics.WithLabelValues(daemon).Inc()
}

// RecordHTTPRequest counts one listener request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
