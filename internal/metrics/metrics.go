package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NAV Collector Metrics
var (
	NavEventsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nav_collector_events_fetched_total",
		Help: "The total number of NAV events fetched from the valuation service",
	})

	LastNavTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nav_collector_last_event_timestamp_seconds",
		Help: "The timestamp of the most recent NAV event observed",
	})

	LastHashPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nav_collector_last_hash_price_usd",
		Help: "The most recently computed per-unit hash price in USD",
	})
)

// Activity Collector Metrics
var (
	LastCollectedHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "activity_collector_last_height",
		Help: "The last block height the activity collector processed",
	})

	TransactionsCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_collector_transactions_total",
		Help: "The total number of transactions retrieved by the activity collector",
	})
)

// Retrieval Failure Metrics
var (
	ClassifiedFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retrieval_classified_failures_total",
		Help: "The number of retrieval failures by protocol status code",
	}, []string{"code"})
)

// Store Metrics
var (
	RecordsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metric_store_records_inserted_total",
		Help: "The total number of time series records written to the metric store",
	})
)
