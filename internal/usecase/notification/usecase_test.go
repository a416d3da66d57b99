package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/kafka"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
)

var testMetrics = metrics.NewPaymentMetrics()

type fakeNotificationRepo struct {
	notifications map[string]*domain.Notification
	sent          map[string]time.Time
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: map[string]*domain.Notification{},
		sent:          map[string]time.Time{},
	}
}

func (f *fakeNotificationRepo) CreateNotification(n *domain.Notification) error {
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) GetNotificationByID(id string) (*domain.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, fmt.Errorf("%w: notification %s", domain.ErrNotFound, id)
	}
	return n, nil
}

func (f *fakeNotificationRepo) GetNotificationsByUserID(userID string, page, limit int) ([]*domain.Notification, int64, error) {
	var out []*domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) UpdateNotificationStatus(id string, newStatus domain.NotificationStatus) error {
	n, ok := f.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.Status = newStatus
	return nil
}

func (f *fakeNotificationRepo) MarkSent(id string, at time.Time) error {
	f.sent[id] = at
	return nil
}

type fakeRegistry struct {
	delivered map[string][][]byte
	online    map[string]bool
}

func newFakeRegistry(online ...string) *fakeRegistry {
	r := &fakeRegistry{delivered: map[string][][]byte{}, online: map[string]bool{}}
	for _, userID := range online {
		r.online[userID] = true
	}
	return r
}

func (f *fakeRegistry) RegisterConnection(userID string, ch domain.StreamChannel) {}

func (f *fakeRegistry) UnregisterConnection(userID string, ch domain.StreamChannel) {}

func (f *fakeRegistry) SendLocal(userID string, data []byte) bool {
	if !f.online[userID] {
		return false
	}
	f.delivered[userID] = append(f.delivered[userID], data)
	return true
}

type recordingPublisher struct {
	topic    string
	messages []domain.Message
}

func (p *recordingPublisher) Publish(topic string, msgs ...domain.Message) error {
	p.topic = topic
	p.messages = append(p.messages, msgs...)
	return nil
}

func TestNotifyPersistsAndDeliversLocally(t *testing.T) {
	repo := newFakeNotificationRepo()
	registry := newFakeRegistry("user-1")
	uc := NewDefaultNotificationUsecase(repo, registry, NewLocalOnlyFanout(), testMetrics)

	if err := uc.Notify("user-1", "Deposit completed", "500000 VND credited", domain.NotifyPayment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(repo.notifications))
	}
	frames := registry.delivered["user-1"]
	if len(frames) != 1 {
		t.Fatalf("delivered %d frames, want 1", len(frames))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(frames[0], &payload); err != nil {
		t.Fatalf("frame is not json: %v", err)
	}
	if payload["title"] != "Deposit completed" {
		t.Errorf("title = %v", payload["title"])
	}
	if len(repo.sent) != 1 {
		t.Error("locally delivered notification must be marked sent")
	}
}

func TestNotifyOfflineUserStaysPending(t *testing.T) {
	repo := newFakeNotificationRepo()
	registry := newFakeRegistry() // nobody online
	uc := NewDefaultNotificationUsecase(repo, registry, NewLocalOnlyFanout(), testMetrics)

	if err := uc.Notify("user-1", "t", "m", domain.NotifySystem); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.sent) != 0 {
		t.Error("undelivered notification must not be marked sent")
	}
	for _, n := range repo.notifications {
		if n.Status != domain.NotificationPending {
			t.Errorf("status = %s, want Pending", n.Status)
		}
	}
}

func TestNotifyBroadcastsThroughKafkaFanout(t *testing.T) {
	repo := newFakeNotificationRepo()
	registry := newFakeRegistry()
	publisher := &recordingPublisher{}
	uc := NewDefaultNotificationUsecase(repo, registry, NewKafkaFanout(publisher, "notifications", "instance-a"), testMetrics)

	if err := uc.Notify("user-1", "t", "m", domain.NotifyContract); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if publisher.topic != "notifications" || len(publisher.messages) != 1 {
		t.Fatalf("published %d messages to %q", len(publisher.messages), publisher.topic)
	}
	if string(publisher.messages[0].Key) != "user-1" {
		t.Errorf("message key = %q, want user id", publisher.messages[0].Key)
	}

	var event kafka.NotificationEvent
	if err := json.Unmarshal(publisher.messages[0].Value, &event); err != nil {
		t.Fatalf("event is not json: %v", err)
	}
	if event.Origin != "instance-a" {
		t.Errorf("origin = %q, want instance-a", event.Origin)
	}
	if event.UserID != "user-1" || event.NotificationType != "contract" {
		t.Errorf("event = %+v", event)
	}
}

func TestMarkReadOwnership(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.notifications["n-1"] = &domain.Notification{ID: "n-1", UserID: "user-1", Status: domain.NotificationSent}
	uc := NewDefaultNotificationUsecase(repo, newFakeRegistry(), NewLocalOnlyFanout(), testMetrics)

	if err := uc.MarkRead("n-1", "user-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign notification: expected ErrNotFound, got %v", err)
	}
	if err := uc.MarkRead("n-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.notifications["n-1"].Status != domain.NotificationRead {
		t.Errorf("status = %s, want Read", repo.notifications["n-1"].Status)
	}
}
