package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the pick'em sync worker

var (
	// Feed metrics
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_feed_fetches_total",
			Help: "Total number of upstream feed fetches",
		},
		[]string{"feed", "status"},
	)

	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickem_feed_fetch_duration_seconds",
			Help:    "Duration of upstream feed fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	EventsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_feed_events_skipped_total",
			Help: "Total number of malformed scoreboard events skipped",
		},
	)

	SpreadsUnresolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_spreads_unresolved_total",
			Help: "Total number of games stored without an attributable spread",
		},
	)

	// Sync metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_sync_operations_total",
			Help: "Total number of sync operations",
		},
		[]string{"type", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickem_sync_duration_seconds",
			Help:    "Duration of sync operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"type"},
	)

	GamesImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_games_imported_total",
			Help: "Total number of games imported",
		},
	)

	GamesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_games_updated_total",
			Help: "Total number of live game updates written",
		},
	)

	ActiveGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickem_active_games",
			Help: "Number of games currently in progress",
		},
	)

	AccrualPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_accrual_passes_total",
			Help: "Total number of point accrual passes over finished games",
		},
		[]string{"status"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickem_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulSync = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickem_last_successful_sync_timestamp",
			Help: "Timestamp of last successful sync operation",
		},
	)
)

// RecordFeedFetch records a feed fetch metric
func RecordFeedFetch(feed, status string, duration float64) {
	FeedFetchesTotal.WithLabelValues(feed, status).Inc()
	FeedFetchDuration.WithLabelValues(feed).Observe(duration)
}

// RecordEventSkipped records a skipped malformed scoreboard event
func RecordEventSkipped() {
	EventsSkippedTotal.Inc()
}

// RecordSpreadUnresolved records a game stored without a spread
func RecordSpreadUnresolved() {
	SpreadsUnresolvedTotal.Inc()
}

// RecordSync records a sync operation
func RecordSync(syncType, status string, duration float64) {
	SyncOperationsTotal.WithLabelValues(syncType, status).Inc()
	SyncDuration.WithLabelValues(syncType).Observe(duration)

	if status == "success" {
		LastSuccessfulSync.SetToCurrentTime()
	}
}

// RecordAccrualPass records a point accrual pass
func RecordAccrualPass(status string) {
	AccrualPassesTotal.WithLabelValues(status).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
