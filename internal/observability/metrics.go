package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Upstream backend API metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Backend API request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"endpoint", "status"},
	)

	// Session metrics
	ProfileFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_profile_fetches_total",
			Help: "Profile fetches by outcome (ok, refresh, anonymous, error)",
		},
		[]string{"outcome"},
	)

	ProfileFetchCoalescedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_profile_fetch_coalesced_total",
			Help: "Callers that waited on an in-flight profile fetch instead of starting one",
		},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_token_refreshes_total",
			Help: "Access token refresh attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Checkout metrics
	CheckoutStepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_step_transitions_total",
			Help: "Checkout step transitions",
		},
		[]string{"from", "to"},
	)

	PaymentInitiationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_payment_initiations_total",
			Help: "Mobile money payment initiations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	DeliveryFeeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_delivery_fee_lookups_total",
			Help: "Delivery fee lookups by outcome",
		},
		[]string{"outcome"},
	)

	// WebSocket metrics
	NotificationStreamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_streams_active",
			Help: "Number of active notification WebSocket streams",
		},
	)
)
