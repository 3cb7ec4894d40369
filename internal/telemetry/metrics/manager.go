package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterProfileUpdates      prometheus.Counter
	CounterProgressEntries     prometheus.Counter
	CounterPhotoAnalyses       prometheus.Counter
	CounterDietPlans           prometheus.Counter
	CounterCheckupsScheduled   prometheus.Counter
	CounterValidationErrors    *prometheus.CounterVec
	CounterProfileCache        *prometheus.CounterVec
	CounterGeminiCalls         *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramGeminiDuration  *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("healthstats", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("healthstats", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	newCounter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterHandleRequestPanic:  newCounter("handle_request_panic", "The total number of serve request panics"),
		CounterRateLimitedRequests: newCounter("rate_limited_requests", "The total number of rate limited requests"),
		CounterProfileUpdates:      newCounter("profile_updates", "The total number of applied profile updates"),
		CounterProgressEntries:     newCounter("progress_entries", "The total number of tracked progress entries"),
		CounterPhotoAnalyses:       newCounter("photo_analyses", "The total number of recorded photo body fat estimates"),
		CounterDietPlans:           newCounter("diet_plans", "The total number of generated diet plans"),
		CounterCheckupsScheduled:   newCounter("checkups_scheduled", "The total number of scheduled weekly check-ins"),
		CounterValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_errors",
			Help:      "The total number of rejected profile operations",
		}, []string{"operation"}),
		CounterProfileCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "profile_cache",
			Help:      "Profile cache lookups by result",
		}, []string{"result"}),
		CounterGeminiCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gemini_calls",
			Help:      "Gemini calls by operation and outcome",
		}, []string{"operation", "outcome"}),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
		HistogramGeminiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gemini_duration_seconds",
			Help:      "Duration of Gemini generate content calls in seconds",
			Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"operation"}),
	}
}
