package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	optionParses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtcctl",
			Subsystem: "option",
			Name:      "parses_total",
			Help:      "Runtime-control options parsed, by command, scope and outcome.",
		},
		[]string{"command", "scope", "outcome"},
	)
	tasksEncoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtcctl",
			Subsystem: "task",
			Name:      "encoded_total",
			Help:      "Tasks packed for delivery, by output format.",
		},
		[]string{"format"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(optionParses, tasksEncoded)
	})
}

// RecordParse counts one option parse. command and scope are empty for
// options rejected before they were known.
func RecordParse(command, scope, outcome string) {
	RegisterMetrics()
	optionParses.WithLabelValues(command, scope, outcome).Inc()
}

func RecordEncode(format string) {
	RegisterMetrics()
	tasksEncoded.WithLabelValues(format).Inc()
}

// WriteTextfile dumps the counters in the text exposition format for a
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, registry)
}
