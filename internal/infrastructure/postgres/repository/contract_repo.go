package repository

import (
	"errors"
	"fmt"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultContractRepository struct {
	db *gorm.DB
}

func NewDefaultContractRepository(db *gorm.DB) *DefaultContractRepository {
	return &DefaultContractRepository{db: db}
}

func (r *DefaultContractRepository) CreateContract(contract *domain.Contract) error {
	return r.db.Create(mappers.ToGORMContract(contract)).Error
}

func (r *DefaultContractRepository) GetContractByID(contractID string) (*domain.Contract, error) {
	var model models.ContractModel
	if err := r.db.Preload("Package").First(&model, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainContract(&model), nil
}

func (r *DefaultContractRepository) GetContractsByUserID(userID string, page, limit int) ([]*domain.Contract, int64, error) {
	var contractModels []models.ContractModel
	var total int64

	query := r.db.Model(&models.ContractModel{}).
		Where("parent_id = ? OR tutor_id = ?", userID, userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Package").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&contractModels).Error; err != nil {
		return nil, 0, err
	}

	contracts := make([]*domain.Contract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = mappers.ToDomainContract(&model)
	}
	return contracts, total, nil
}

// UpdateContractStatus is a guarded transition: it only fires when the row is
// still in oldStatus, so concurrent approvals cannot double-apply.
func (r *DefaultContractRepository) UpdateContractStatus(contractID string, oldStatus, newStatus domain.ContractStatus) error {
	res := r.db.Model(&models.ContractModel{}).
		Where("id = ? AND status = ?", contractID, oldStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contract %s is not in status %s: %w", contractID, oldStatus, domain.ErrConflict)
	}
	return nil
}

func (r *DefaultContractRepository) ActivateWithSessions(contractID string, sessions []*domain.Session) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ContractModel{}).
			Where("id = ? AND status = ?", contractID, domain.ContractPending).
			Update("status", domain.ContractActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("contract %s is not pending activation: %w", contractID, domain.ErrConflict)
		}

		sessionModels := make([]*models.SessionModel, len(sessions))
		for i, session := range sessions {
			sessionModels[i] = mappers.ToGORMSession(session)
		}
		return tx.Create(&sessionModels).Error
	})
}

func (r *DefaultContractRepository) IncrementRescheduleCount(contractID string, limit int) error {
	res := r.db.Model(&models.ContractModel{}).
		Where("id = ? AND reschedule_count < ?", contractID, limit).
		Update("reschedule_count", gorm.Expr("reschedule_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRescheduleLimit
	}
	return nil
}
