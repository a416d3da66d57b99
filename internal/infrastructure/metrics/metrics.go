package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers webhook reconciliation and notification delivery.
type PaymentMetrics struct {
	WebhooksReceivedTotal  prometheus.CounterVec
	WebhooksCompletedTotal prometheus.CounterVec
	WebhooksRejectedTotal  prometheus.CounterVec
	WebhooksDuplicateTotal prometheus.CounterVec
	WebhookAmountTotal     prometheus.CounterVec
	WebhookDuration        prometheus.HistogramVec

	NotificationsCreatedTotal   prometheus.CounterVec
	NotificationsDeliveredTotal prometheus.CounterVec
	StreamConnectionsGauge      prometheus.GaugeVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		WebhooksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_received_total",
				Help: "Total gateway webhook deliveries received",
			},
			[]string{"provider"},
		),

		WebhooksCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_completed_total",
				Help: "Webhook deliveries that completed a ledger row",
			},
			[]string{"provider", "target"},
		),

		WebhooksRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_rejected_total",
				Help: "Webhook deliveries rejected before the apply step",
			},
			[]string{"provider", "reason"},
		),

		WebhooksDuplicateTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_duplicate_total",
				Help: "Webhook deliveries dropped by the idempotency guard",
			},
			[]string{"provider"},
		),

		WebhookAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_amount_total",
				Help: "Total reconciled amount by provider",
			},
			[]string{"provider"},
		),

		WebhookDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhook_processing_duration_seconds",
				Help:    "Webhook processing time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"provider", "outcome"},
		),

		NotificationsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_created_total",
				Help: "Notifications persisted by type",
			},
			[]string{"type"},
		),

		NotificationsDeliveredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_delivered_total",
				Help: "Live notification deliveries by path (local or fanout)",
			},
			[]string{"path"},
		),

		StreamConnectionsGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "notification_stream_connections",
				Help: "Currently open notification stream connections",
			},
			[]string{"instance"},
		),
	}
}

func (m *PaymentMetrics) RecordWebhookReceived(provider string) {
	m.WebhooksReceivedTotal.WithLabelValues(provider).Inc()
}

func (m *PaymentMetrics) RecordWebhookCompleted(provider, target string, amount float64) {
	m.WebhooksCompletedTotal.WithLabelValues(provider, target).Inc()
	m.WebhookAmountTotal.WithLabelValues(provider).Add(amount)
}

func (m *PaymentMetrics) RecordWebhookRejected(provider, reason string) {
	m.WebhooksRejectedTotal.WithLabelValues(provider, reason).Inc()
}

func (m *PaymentMetrics) RecordWebhookDuplicate(provider string) {
	m.WebhooksDuplicateTotal.WithLabelValues(provider).Inc()
}

func (m *PaymentMetrics) RecordWebhookDuration(provider, outcome string, seconds float64) {
	m.WebhookDuration.WithLabelValues(provider, outcome).Observe(seconds)
}

func (m *PaymentMetrics) RecordNotificationCreated(notificationType string) {
	m.NotificationsCreatedTotal.WithLabelValues(notificationType).Inc()
}

func (m *PaymentMetrics) RecordNotificationDelivered(path string) {
	m.NotificationsDeliveredTotal.WithLabelValues(path).Inc()
}
