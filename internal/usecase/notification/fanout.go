package usecase

import (
	"encoding/json"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/kafka"
)

// Fanout is the cross-instance delivery capability, selected at construction.
// A single-instance deployment wires LocalOnlyFanout; a clustered one wires
// KafkaFanout. Call sites never branch on a nil broker.
type Fanout interface {
	Broadcast(n *domain.Notification) error
}

type LocalOnlyFanout struct{}

func NewLocalOnlyFanout() LocalOnlyFanout { return LocalOnlyFanout{} }

func (LocalOnlyFanout) Broadcast(*domain.Notification) error { return nil }

type KafkaFanout struct {
	publisher  domain.PublisherPort
	topic      string
	instanceID string
}

func NewKafkaFanout(publisher domain.PublisherPort, topic, instanceID string) *KafkaFanout {
	return &KafkaFanout{
		publisher:  publisher,
		topic:      topic,
		instanceID: instanceID,
	}
}

func (f *KafkaFanout) Broadcast(n *domain.Notification) error {
	event := kafka.NotificationEvent{
		NotificationID:   n.ID,
		UserID:           n.UserID,
		NotificationType: string(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		Origin:           f.instanceID,
		Timestamp:        time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return f.publisher.Publish(f.topic, domain.Message{
		Key:   []byte(n.UserID),
		Value: value,
	})
}
