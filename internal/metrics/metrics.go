package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"logtable-backend/internal/model"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeStale   = "stale"
)

var (
	pageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logtable_page_fetches_total",
		Help: "Page fetches against the log search endpoint, by outcome",
	}, []string{"outcome"})
	pageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "logtable_page_fetch_duration_seconds",
		Help:    "The duration of page fetches against the log search endpoint",
		Buckets: prometheus.DefBuckets,
	})
	decoratedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logtable_decorated_rows_total",
		Help: "Rows decorated with a severity label, by severity class",
	}, []string{"class"})
	upstreamUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "logtable_upstream_up",
		Help: "1 if the last health probe of the log search endpoint succeeded",
	})
	tableSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "logtable_table_sessions",
		Help: "Table instances currently tracked for stale response detection",
	})
)

func ObserveFetch(outcome string, elapsed time.Duration) {
	pageFetches.WithLabelValues(outcome).Inc()
	pageFetchDuration.Observe(elapsed.Seconds())
}

func CountDecoratedRow(class model.SeverityClass) {
	decoratedRows.WithLabelValues(class.String()).Inc()
}

func SetUpstreamUp(up bool) {
	if up {
		upstreamUp.Set(1)
		return
	}
	upstreamUp.Set(0)
}

func SetTableSessions(n int) {
	tableSessions.Set(float64(n))
}
