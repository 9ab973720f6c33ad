package collector

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	collectDurationHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "charthound",
		Subsystem: "collector",
		Name:      "run_duration_seconds",
		Help:      "The duration of a full collection run.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	})

	channelsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "charthound",
		Subsystem: "collector",
		Name:      "channels_total",
		Help:      "The number of channels collected.",
	})

	rowsAppendedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "charthound",
		Subsystem: "collector",
		Name:      "rows_appended_total",
		Help:      "The number of history rows written to the datastore.",
	})

	channelFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "charthound",
		Subsystem: "collector",
		Name:      "channel_failures_total",
		Help:      "The number of channels that failed to collect.",
	})
)

// RegisterMetrics registers collection metrics to the default registry.
func RegisterMetrics() error {
	for _, metric := range []prometheus.Collector{
		collectDurationHistogram,
		channelsCounter,
		rowsAppendedCounter,
		channelFailuresCounter,
	} {
		if err := prometheus.Register(metric); err != nil {
			return err
		}
	}

	return nil
}
