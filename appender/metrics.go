package appender

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/lumber/logger"
)

const metricsNamespace = "lumber"

// A Metrics counts messages per Level with Prometheus counters.
// It renders nothing, so its format is empty.
type Metrics struct {
	logger.Base

	TraceCount   prometheus.Counter
	DebugCount   prometheus.Counter
	InfoCount    prometheus.Counter
	WarningCount prometheus.Counter
	ErrorCount   prometheus.Counter
	FatalCount   prometheus.Counter
}

// NewMetrics constructs a *Metrics and attaches it to hub.
func NewMetrics(hub *logger.Hub) *Metrics {
	subsystem := "log"
	m := &Metrics{
		TraceCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "trace_count",
			Help:      "Number of TRACE log messages.",
		}),
		DebugCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "debug_count",
			Help:      "Number of DEBUG log messages.",
		}),
		InfoCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "info_count",
			Help:      "Number of INFO log messages.",
		}),
		WarningCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "warn_count",
			Help:      "Number of WARN log messages.",
		}),
		ErrorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "error_count",
			Help:      "Number of ERROR log messages.",
		}),
		FatalCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "fatal_count",
			Help:      "Number of FATAL log messages.",
		}),
	}

	m.Attach(hub, m)
	return m
}

// Append counts a message at level.
func (m *Metrics) Append(level logger.Level, _ string) {
	switch level {
	case logger.LevelTrace:
		m.TraceCount.Inc()
	case logger.LevelDebug:
		m.DebugCount.Inc()
	case logger.LevelInfo:
		m.InfoCount.Inc()
	case logger.LevelWarning:
		m.WarningCount.Inc()
	case logger.LevelError:
		m.ErrorCount.Inc()
	case logger.LevelFatal:
		m.FatalCount.Inc()
	}
}

// Collectors returns the counters for registration with a prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TraceCount,
		m.DebugCount,
		m.InfoCount,
		m.WarningCount,
		m.ErrorCount,
		m.FatalCount,
	}
}
