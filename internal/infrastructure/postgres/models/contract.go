package models

import (
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

type PackageModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	Name          string `gorm:"not null"`
	Price         float64
	SessionCount  int `gorm:"not null"`
	MaxReschedule int
	CreatedAt     time.Time
}

func (PackageModel) TableName() string {
	return "packages"
}

type ContractModel struct {
	ID              string                `gorm:"primaryKey;type:uuid"`
	ParentID        string                `gorm:"type:uuid;index"`
	TutorID         string                `gorm:"type:uuid;index"`
	PackageID       string                `gorm:"type:uuid"`
	Package         PackageModel          `gorm:"foreignKey:PackageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	DayMask         int                   `gorm:"not null"`
	StartDate       time.Time             `gorm:"not null"`
	EndDate         time.Time             `gorm:"not null"`
	StartTime       string                `gorm:"not null"`
	EndTime         string                `gorm:"not null"`
	Status          domain.ContractStatus `gorm:"index;not null"`
	RescheduleCount int                   `gorm:"default:0"`
	CreatedAt       time.Time             `gorm:"index"`
	UpdatedAt       time.Time
}

func (ContractModel) TableName() string {
	return "contracts"
}

type SessionModel struct {
	ID         string               `gorm:"primaryKey;type:uuid"`
	ContractID string               `gorm:"type:uuid;index"`
	TutorID    string               `gorm:"type:uuid;index"`
	Date       time.Time            `gorm:"index;not null"`
	StartTime  string               `gorm:"not null"`
	EndTime    string               `gorm:"not null"`
	Status     domain.SessionStatus `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SessionModel) TableName() string {
	return "sessions"
}

type RescheduleRequestModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	SessionID    string    `gorm:"type:uuid;index"`
	ContractID   string    `gorm:"type:uuid;index"`
	RequestedBy  string    `gorm:"type:uuid"`
	NewDate      time.Time `gorm:"not null"`
	NewStartTime string    `gorm:"not null"`
	NewEndTime   string    `gorm:"not null"`
	Reason       string
	Status       domain.RescheduleStatus `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RescheduleRequestModel) TableName() string {
	return "reschedule_requests"
}
