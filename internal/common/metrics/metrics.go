// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_analyses_completed_total",
			Help: "Total number of admission analyses produced, by overall grade",
		},
		[]string{"overall_grade", "simulated"},
	)

	ReportsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_reports_sent_total",
			Help: "Total number of analysis reports delivered, by channel",
		},
		[]string{"channel", "status"},
	)

	AnalysisCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_analysis_cache_requests_total",
			Help: "Analysis cache lookups, by outcome (hit or miss)",
		},
		[]string{"outcome"},
	)

	EnrichmentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_enrichment_fallbacks_total",
			Help: "Enrichment requests served by the deterministic engine instead of a provider",
		},
		[]string{"reason"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP API requests, by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)
)
