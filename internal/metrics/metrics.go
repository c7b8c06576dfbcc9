// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat outcomes used as the "outcome" label.
const (
	OutcomeOK            = "ok"
	OutcomeRefused       = "refused"
	OutcomeInvalid       = "invalid"
	OutcomeEmptyResponse = "empty_response"
	OutcomeProviderError = "provider_error"
	OutcomeInternal      = "internal"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookbot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookbot_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Chat
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookbot_chat_requests_total",
			Help: "Chat requests by outcome",
		},
		[]string{"outcome"},
	)

	ProviderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookbot_provider_request_duration_seconds",
			Help:    "Latency of generation requests to the model provider",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	// Feedback
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookbot_feedback_total",
			Help: "Feedback submissions by polarity",
		},
		[]string{"polarity"},
	)

	FeedbackStreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookbot_feedback_stream_clients",
			Help: "Connected feedback stream WebSocket clients",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordChatOutcome(outcome string) {
	ChatRequestsTotal.WithLabelValues(outcome).Inc()
}

func RecordProviderCall(duration time.Duration) {
	ProviderDuration.Observe(duration.Seconds())
}

func RecordFeedback(positive bool) {
	polarity := "negative"
	if positive {
		polarity = "positive"
	}
	FeedbackTotal.WithLabelValues(polarity).Inc()
}

// TrackStreamClient adjusts the connected-client gauge.
func TrackStreamClient(connected bool) {
	if connected {
		FeedbackStreamClients.Inc()
	} else {
		FeedbackStreamClients.Dec()
	}
}
