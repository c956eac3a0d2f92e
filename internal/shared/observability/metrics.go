package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	RegistryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fedmap_registry_request_seconds",
		Help:    "Time spent on a single registry HTTP request.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	RegistryRequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fedmap_registry_request_errors_total",
		Help: "Total number of failed registry requests by failure class.",
	}, []string{"endpoint", "code"})

	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fedmap_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fedmap_files_scanned_total",
		Help: "Total number of source files handed to the import extractor.",
	})

	FilesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fedmap_files_skipped_total",
		Help: "Total number of source files skipped because no parsed source was available.",
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fedmap_graph_nodes_total",
		Help: "Total number of nodes in the reference graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fedmap_graph_edges_total",
		Help: "Total number of reference edges in the reference graph.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fedmap_analysis_seconds",
		Help:    "Time spent on high-level pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fedmap_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
