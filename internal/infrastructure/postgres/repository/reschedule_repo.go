package repository

import (
	"errors"
	"fmt"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRescheduleRepository struct {
	db *gorm.DB
}

func NewDefaultRescheduleRepository(db *gorm.DB) *DefaultRescheduleRepository {
	return &DefaultRescheduleRepository{db: db}
}

func (r *DefaultRescheduleRepository) CreateRequest(req *domain.RescheduleRequest) error {
	return r.db.Create(mappers.ToGORMReschedule(req)).Error
}

func (r *DefaultRescheduleRepository) GetRequestByID(requestID string) (*domain.RescheduleRequest, error) {
	var model models.RescheduleRequestModel
	if err := r.db.First(&model, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainReschedule(&model), nil
}

func (r *DefaultRescheduleRepository) GetRequestsByContractID(contractID string) ([]*domain.RescheduleRequest, error) {
	var requestModels []models.RescheduleRequestModel
	if err := r.db.
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.RescheduleRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = mappers.ToDomainReschedule(&model)
	}
	return requests, nil
}

func (r *DefaultRescheduleRepository) UpdateRequestStatus(requestID string, oldStatus, newStatus domain.RescheduleStatus) error {
	res := r.db.Model(&models.RescheduleRequestModel{}).
		Where("id = ? AND status = ?", requestID, oldStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reschedule request %s is not in status %s: %w", requestID, oldStatus, domain.ErrConflict)
	}
	return nil
}
