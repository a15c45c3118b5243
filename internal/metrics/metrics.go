package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courier_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Routing metrics
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_messages_sent_total",
			Help: "Total messages routed, by message type",
		},
		[]string{"type"},
	)

	Broadcasts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_broadcasts_total",
			Help: "Total broadcast operations",
		},
	)

	Deliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_deliveries_total",
			Help: "Total messages enqueued into inboxes",
		},
	)

	UnknownRecipients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_unknown_recipient_total",
			Help: "Total sends rejected for an unknown recipient",
		},
	)

	Receives = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_receives_total",
			Help: "Total inbox polls, by outcome",
		},
		[]string{"outcome"}, // "hit" or "empty"
	)

	QueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "courier_queue_depth",
			Help: "Undelivered messages per participant inbox",
		},
		[]string{"participant"},
	)
)
