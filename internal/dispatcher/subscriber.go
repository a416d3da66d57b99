package dispatcher

import (
	"encoding/json"
	"log/slog"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/kafka"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
)

// FanoutSubscriber consumes the notifications topic and replays events into
// this instance's local registry. Events originating from this instance are
// skipped: local delivery already happened before publishing.
type FanoutSubscriber struct {
	subscriber domain.SubscriberPort
	registry   domain.StreamRegistry
	metrics    *metrics.PaymentMetrics
	topic      string
	instanceID string
}

func NewFanoutSubscriber(
	subscriber domain.SubscriberPort,
	registry domain.StreamRegistry,
	paymentMetrics *metrics.PaymentMetrics,
	topic, instanceID string,
) *FanoutSubscriber {
	return &FanoutSubscriber{
		subscriber: subscriber,
		registry:   registry,
		metrics:    paymentMetrics,
		topic:      topic,
		instanceID: instanceID,
	}
}

func (s *FanoutSubscriber) Start() error {
	messages, err := s.subscriber.Subscribe(s.topic, s.instanceID)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var event kafka.NotificationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("failed to decode notification event", "error", err.Error())
				continue
			}
			if event.Origin == s.instanceID {
				continue
			}

			payload, err := json.Marshal(map[string]interface{}{
				"id":      event.NotificationID,
				"title":   event.Title,
				"message": event.Message,
				"type":    event.NotificationType,
			})
			if err != nil {
				continue
			}

			if s.registry.SendLocal(event.UserID, payload) {
				s.metrics.RecordNotificationDelivered("fanout")
			}
		}
		slog.Warn("notification fan-out subscription closed", "topic", s.topic)
	}()

	return nil
}
