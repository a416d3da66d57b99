package repository

import (
	"errors"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSessionRepository struct {
	db *gorm.DB
}

func NewDefaultSessionRepository(db *gorm.DB) *DefaultSessionRepository {
	return &DefaultSessionRepository{db: db}
}

func (r *DefaultSessionRepository) GetSessionByID(sessionID string) (*domain.Session, error) {
	var model models.SessionModel
	if err := r.db.First(&model, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSession(&model), nil
}

func (r *DefaultSessionRepository) GetSessionsByContractID(contractID string) ([]*domain.Session, error) {
	var sessionModels []models.SessionModel
	if err := r.db.
		Where("contract_id = ?", contractID).
		Order("date ASC").
		Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = mappers.ToDomainSession(&model)
	}
	return sessions, nil
}

func (r *DefaultSessionRepository) UpdateSessionStatus(sessionID string, newStatus domain.SessionStatus) error {
	return r.db.Model(&models.SessionModel{}).
		Where("id = ?", sessionID).
		Update("status", newStatus).Error
}

func (r *DefaultSessionRepository) Reschedule(sessionID string, date time.Time, startTime, endTime string) error {
	return r.db.Model(&models.SessionModel{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"date":       date,
			"start_time": startTime,
			"end_time":   endTime,
			"status":     domain.SessionRescheduled,
		}).Error
}

func (r *DefaultSessionRepository) FindUpcoming(from, to time.Time) ([]*domain.Session, error) {
	var sessionModels []models.SessionModel
	if err := r.db.
		Where("status IN ?", []domain.SessionStatus{domain.SessionScheduled, domain.SessionRescheduled}).
		Where("date >= ? AND date < ?", from, to).
		Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = mappers.ToDomainSession(&model)
	}
	return sessions, nil
}

func (r *DefaultSessionRepository) FindElapsed(cutoff time.Time) ([]*domain.Session, error) {
	var sessionModels []models.SessionModel
	if err := r.db.
		Where("status IN ?", []domain.SessionStatus{domain.SessionScheduled, domain.SessionRescheduled}).
		Where("date < ?", cutoff).
		Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = mappers.ToDomainSession(&model)
	}
	return sessions, nil
}
