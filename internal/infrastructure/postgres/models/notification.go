package models

import (
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

type NotificationModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"type:uuid;index"`
	Title     string `gorm:"not null"`
	Message   string
	Type      domain.NotificationType   `gorm:"index"`
	Status    domain.NotificationStatus `gorm:"index;not null"`
	CreatedAt time.Time                 `gorm:"index"`
	SentAt    *time.Time                `gorm:"default:null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
