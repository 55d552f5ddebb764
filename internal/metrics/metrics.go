package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics
	EventsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logserver_events_parsed_total",
			Help: "Total number of events parsed, by source type",
		},
		[]string{"source_type"},
	)

	SyntheticFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logserver_synthetic_fallbacks_total",
			Help: "Total number of ingestion requests answered with synthetic events",
		},
	)

	// Watcher metrics
	WatchNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logserver_watch_notifications_total",
			Help: "Total number of filesystem change notifications emitted, by action",
		},
		[]string{"action"},
	)

	WatchDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logserver_watch_dropped_total",
			Help: "Total number of notifications dropped for slow subscribers",
		},
	)

	// Node aggregation metrics
	NodeProfileRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logserver_node_profile_requests_total",
			Help: "Total number of node profile requests, by outcome",
		},
		[]string{"outcome"},
	)
)
