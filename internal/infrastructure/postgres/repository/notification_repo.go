package repository

import (
	"errors"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	db *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{db: db}
}

func (r *DefaultNotificationRepository) CreateNotification(n *domain.Notification) error {
	return r.db.Create(mappers.ToGORMNotification(n)).Error
}

func (r *DefaultNotificationRepository) GetNotificationByID(notificationID string) (*domain.Notification, error) {
	var model models.NotificationModel
	if err := r.db.First(&model, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainNotification(&model), nil
}

func (r *DefaultNotificationRepository) GetNotificationsByUserID(userID string, page, limit int) ([]*domain.Notification, int64, error) {
	var notificationModels []models.NotificationModel
	var total int64

	query := r.db.Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*domain.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = mappers.ToDomainNotification(&model)
	}
	return notifications, total, nil
}

func (r *DefaultNotificationRepository) UpdateNotificationStatus(notificationID string, newStatus domain.NotificationStatus) error {
	return r.db.Model(&models.NotificationModel{}).
		Where("id = ?", notificationID).
		Update("status", newStatus).Error
}

func (r *DefaultNotificationRepository) MarkSent(notificationID string, at time.Time) error {
	return r.db.Model(&models.NotificationModel{}).
		Where("id = ? AND status = ?", notificationID, domain.NotificationPending).
		Updates(map[string]interface{}{
			"status":  domain.NotificationSent,
			"sent_at": at,
		}).Error
}
