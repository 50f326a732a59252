package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"profilewizard/internal/domain"
)

// Registry holds every metric served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilewizard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profilewizard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"route"},
	)

	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilewizard",
			Subsystem: "profile",
			Name:      "submissions_total",
			Help:      "Total number of profile submissions by result",
		},
		[]string{"result"},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilewizard",
			Subsystem: "upload",
			Name:      "photos_total",
			Help:      "Total number of photo uploads by result",
		},
		[]string{"result"},
	)

	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilewizard",
			Subsystem: "location",
			Name:      "lookups_total",
			Help:      "Total number of location lookups by tier and result",
		},
		[]string{"tier", "result"},
	)

	lookupLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profilewizard",
			Subsystem: "location",
			Name:      "lookup_latency_seconds",
			Help:      "Latency of location lookups in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"tier"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "profilewizard",
			Subsystem: "wizard",
			Name:      "active_sessions",
			Help:      "Number of open wizard sessions",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestsTotal,
		requestDuration,
		submissionsTotal,
		uploadsTotal,
		lookupsTotal,
		lookupLatency,
		activeSessions,
	)
}

// recordRequestMetric records a served HTTP request.
func recordRequestMetric(route string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// recordSubmissionMetric records a profile submission outcome.
func recordSubmissionMetric(err error) {
	submissionsTotal.WithLabelValues(resultLabel(err)).Inc()
}

// recordUploadMetric records a photo upload outcome.
func recordUploadMetric(err error) {
	uploadsTotal.WithLabelValues(resultLabel(err)).Inc()
}

// resultLabel buckets err by the status it maps to.
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	switch statusFor(err) {
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}

// instrumentedLocations counts and times lookups against a LocationService.
type instrumentedLocations struct {
	next domain.LocationService
}

func (l instrumentedLocations) FetchChildren(
	ctx context.Context,
	tier domain.Tier,
	parent string,
) ([]domain.LocationOption, error) {
	start := time.Now()
	opts, err := l.next.FetchChildren(ctx, tier, parent)
	result := "success"
	if err != nil {
		result = "error"
	}
	lookupsTotal.WithLabelValues(tier.String(), result).Inc()
	lookupLatency.WithLabelValues(tier.String()).Observe(time.Since(start).Seconds())
	return opts, err
}

var _ domain.LocationService = instrumentedLocations{}
