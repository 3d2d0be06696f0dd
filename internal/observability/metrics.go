package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	shiftPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "shifttrack",
		Subsystem: "persistence",
		Name:      "last_shift_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent shift written to the remote store.",
	})
	degradedReadCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shifttrack",
		Subsystem: "gateway",
		Name:      "degraded_reads_total",
		Help:      "Reads served from the local snapshot because the remote store was unreachable.",
	})
	cacheWriteFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shifttrack",
		Subsystem: "gateway",
		Name:      "snapshot_write_failures_total",
		Help:      "Local snapshot writes that failed after a successful remote operation.",
	})
	balanceFallbackCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shifttrack",
		Subsystem: "gateway",
		Name:      "balance_fallbacks_total",
		Help:      "Balance updates that matched zero remote rows and kept the local value.",
	})
)

func init() {
	prometheus.MustRegister(shiftPersistGauge, degradedReadCounter, cacheWriteFailureCounter, balanceFallbackCounter)
}

// RecordShiftPersisted updates the persistence watermark gauge.
func RecordShiftPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	shiftPersistGauge.Set(float64(ts.Unix()))
}

// RecordDegradedRead counts a read served from the local snapshot.
func RecordDegradedRead() {
	degradedReadCounter.Inc()
}

// RecordCacheWriteFailure counts a failed snapshot write-through.
func RecordCacheWriteFailure() {
	cacheWriteFailureCounter.Inc()
}

// RecordBalanceFallback counts a balance update kept locally.
func RecordBalanceFallback() {
	balanceFallbackCounter.Inc()
}
