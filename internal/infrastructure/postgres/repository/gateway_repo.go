package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DefaultGatewayTransactionRepository struct {
	db *gorm.DB
}

// reconciledColumns is the column set the winning webhook delivery writes onto
// the gateway row alongside the status flip.
func reconciledColumns(payload *domain.WebhookPayload) map[string]interface{} {
	return map[string]interface{}{
		"status":         domain.TxStatusCompleted,
		"raw_payload":    datatypes.JSON(payload.Raw),
		"account_number": payload.AccountNumber,
	}
}

func NewDefaultGatewayTransactionRepository(db *gorm.DB) *DefaultGatewayTransactionRepository {
	return &DefaultGatewayTransactionRepository{db: db}
}

func (r *DefaultGatewayTransactionRepository) CreateGatewayTransaction(gtx *domain.GatewayTransaction) error {
	model := mappers.ToGORMGatewayTransaction(gtx)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultGatewayTransactionRepository) GetByOrderReference(ref string) (*domain.GatewayTransaction, error) {
	var model models.GatewayTransactionModel
	if err := r.db.First(&model, "order_reference = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainGatewayTransaction(&model), nil
}

func (r *DefaultGatewayTransactionRepository) FindStalePending(olderThan time.Time) ([]*domain.GatewayTransaction, error) {
	var gtxModels []models.GatewayTransactionModel
	if err := r.db.
		Where("status = ?", domain.TxStatusPending).
		Where("created_at < ?", olderThan).
		Find(&gtxModels).Error; err != nil {
		return nil, err
	}

	gtxs := make([]*domain.GatewayTransaction, len(gtxModels))
	for i, model := range gtxModels {
		gtxs[i] = mappers.ToDomainGatewayTransaction(&model)
	}
	return gtxs, nil
}

// CompleteDeposit runs the critical section of deposit reconciliation. The
// conditional status update is the idempotency guard: when a concurrent or
// replayed delivery already flipped the row, zero rows match and the whole
// transaction unwinds with ErrAlreadyProcessed, leaving the balance untouched.
// The winning delivery's verified payload is recorded on the gateway row.
func (r *DefaultGatewayTransactionRepository) CompleteDeposit(ref string, payload *domain.WebhookPayload) (*domain.WalletTransaction, error) {
	var walletTxModel models.WalletTransactionModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.GatewayTransactionModel{}).
			Where("order_reference = ? AND status = ?", ref, domain.TxStatusPending).
			Updates(reconciledColumns(payload))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyProcessed
		}

		var gtxModel models.GatewayTransactionModel
		if err := tx.First(&gtxModel, "order_reference = ?", ref).Error; err != nil {
			return err
		}
		if gtxModel.WalletTransactionID == "" {
			return fmt.Errorf("gateway transaction %s is not linked to a wallet transaction: %w", ref, domain.ErrConflict)
		}

		res = tx.Model(&models.WalletTransactionModel{}).
			Where("id = ? AND status = ?", gtxModel.WalletTransactionID, domain.TxStatusPending).
			Update("status", domain.TxStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyProcessed
		}

		if err := tx.First(&walletTxModel, "id = ?", gtxModel.WalletTransactionID).Error; err != nil {
			return err
		}

		return tx.Model(&models.WalletModel{}).
			Where("id = ?", walletTxModel.WalletID).
			Update("balance", gorm.Expr("balance + ?", walletTxModel.Amount)).Error
	})
	if err != nil {
		return nil, err
	}

	return mappers.ToDomainWalletTransaction(&walletTxModel), nil
}

// CompleteContractPayment is the direct contract payment counterpart: the
// gateway row flips to Completed and the contract advances unpaid -> pending
// approval under the same conditional-update discipline.
func (r *DefaultGatewayTransactionRepository) CompleteContractPayment(ref string, payload *domain.WebhookPayload) (*domain.Contract, error) {
	var contractModel models.ContractModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.GatewayTransactionModel{}).
			Where("order_reference = ? AND status = ?", ref, domain.TxStatusPending).
			Updates(reconciledColumns(payload))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyProcessed
		}

		var gtxModel models.GatewayTransactionModel
		if err := tx.First(&gtxModel, "order_reference = ?", ref).Error; err != nil {
			return err
		}
		if gtxModel.ContractID == "" {
			return fmt.Errorf("gateway transaction %s is not linked to a contract: %w", ref, domain.ErrConflict)
		}

		res = tx.Model(&models.ContractModel{}).
			Where("id = ? AND status = ?", gtxModel.ContractID, domain.ContractUnpaid).
			Update("status", domain.ContractPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("contract %s is not awaiting payment: %w", gtxModel.ContractID, domain.ErrConflict)
		}

		return tx.Preload("Package").First(&contractModel, "id = ?", gtxModel.ContractID).Error
	})
	if err != nil {
		return nil, err
	}

	return mappers.ToDomainContract(&contractModel), nil
}

func (r *DefaultGatewayTransactionRepository) CancelGatewayTransaction(ref string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.GatewayTransactionModel{}).
			Where("order_reference = ? AND status = ?", ref, domain.TxStatusPending).
			Update("status", domain.TxStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already reconciled or cancelled, nothing to unwind
			return nil
		}

		var gtxModel models.GatewayTransactionModel
		if err := tx.First(&gtxModel, "order_reference = ?", ref).Error; err != nil {
			return err
		}
		if gtxModel.WalletTransactionID == "" {
			return nil
		}

		return tx.Model(&models.WalletTransactionModel{}).
			Where("id = ? AND status = ?", gtxModel.WalletTransactionID, domain.TxStatusPending).
			Update("status", domain.TxStatusCancelled).Error
	})
}
