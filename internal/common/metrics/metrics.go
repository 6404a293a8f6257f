package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_questions_total",
			Help: "Questions answered, by resolved intent and classification source",
		},
		[]string{"intent", "source"},
	)

	ClassifierFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_classifier_fallbacks_total",
			Help: "AI classifications that fell back to keyword matching",
		},
		[]string{"reason"},
	)

	HandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_handler_duration_seconds",
			Help:    "Duration of analytics handler execution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	HandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_handler_errors_total",
			Help: "Analytics handler failures converted to error insights",
		},
		[]string{"intent", "kind"},
	)

	FormatterOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_formatter_outcomes_total",
			Help: "Narrative formatting outcomes",
		},
		[]string{"outcome"},
	)

	PredictorLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_predictor_loads_total",
			Help: "Predictor load attempts by model and status",
		},
		[]string{"model", "status"},
	)

	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_alerts_total",
			Help: "Operational alerts by channel and status",
		},
		[]string{"channel", "status"},
	)

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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Outcome labels for FormatterOutcomes.
const (
	OutcomeSkipped  = "skipped"
	OutcomeEnhanced = "enhanced"
	OutcomeFallback = "fallback"
	OutcomeCached   = "cached"
)
