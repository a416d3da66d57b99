package usecase

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
)

type NotificationUsecase interface {
	Notify(userID, title, message string, notificationType domain.NotificationType) error
	MarkRead(notificationID, userID string) error
	GetUserNotifications(userID string, page, limit int) ([]*domain.Notification, int64, error)
}

type DefaultNotificationUsecase struct {
	notificationRepo domain.NotificationRepository
	registry         domain.StreamRegistry
	fanout           Fanout
	metrics          *metrics.PaymentMetrics
}

func NewDefaultNotificationUsecase(
	notificationRepo domain.NotificationRepository,
	registry domain.StreamRegistry,
	fanout Fanout,
	paymentMetrics *metrics.PaymentMetrics,
) *DefaultNotificationUsecase {
	return &DefaultNotificationUsecase{
		notificationRepo: notificationRepo,
		registry:         registry,
		fanout:           fanout,
		metrics:          paymentMetrics,
	}
}

// Notify persists the notification, then attempts live delivery: first to a
// channel on this instance, then through the fan-out capability so other
// instances holding the actual connection can deliver too. Live delivery is
// best effort; the persisted row is the source of truth for polling clients.
func (uc *DefaultNotificationUsecase) Notify(userID, title, message string, notificationType domain.NotificationType) error {
	notification := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		Status:    domain.NotificationPending,
		CreatedAt: time.Now(),
	}

	if err := uc.notificationRepo.CreateNotification(notification); err != nil {
		return err
	}
	uc.metrics.RecordNotificationCreated(string(notificationType))

	payload, err := json.Marshal(map[string]interface{}{
		"id":      notification.ID,
		"title":   notification.Title,
		"message": notification.Message,
		"type":    notification.Type,
	})
	if err != nil {
		return err
	}

	if uc.registry.SendLocal(userID, payload) {
		uc.metrics.RecordNotificationDelivered("local")
		now := time.Now()
		if err := uc.notificationRepo.MarkSent(notification.ID, now); err != nil {
			slog.Error("failed to mark notification sent", "notification_id", notification.ID, "error", err.Error())
		}
	}

	if err := uc.fanout.Broadcast(notification); err != nil {
		slog.Error("failed to broadcast notification", "notification_id", notification.ID, "error", err.Error())
	}

	return nil
}

func (uc *DefaultNotificationUsecase) MarkRead(notificationID, userID string) error {
	notification, err := uc.notificationRepo.GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return domain.ErrNotFound
	}

	return uc.notificationRepo.UpdateNotificationStatus(notificationID, domain.NotificationRead)
}

func (uc *DefaultNotificationUsecase) GetUserNotifications(userID string, page, limit int) ([]*domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.notificationRepo.GetNotificationsByUserID(userID, page, limit)
}
