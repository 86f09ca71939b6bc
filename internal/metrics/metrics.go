package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentInitiations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_initiations_total",
		Help: "Checkout initiation attempts by result",
	}, []string{"result"})

	WebhookNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhooks_total",
		Help: "Gateway webhook deliveries by result",
	}, []string{"result"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Initiation result labels.
const (
	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultAlreadyPaid = "already_paid"
	ResultInvalid     = "invalid"
	ResultError       = "error"

	// Webhook-specific result.
	ResultBadSignature = "bad_signature"
)
