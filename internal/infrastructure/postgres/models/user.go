package models

import (
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

type UserModel struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	Role         domain.UserRole `gorm:"index"`
	FullName     string
	Email        string `gorm:"uniqueIndex"`
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}
