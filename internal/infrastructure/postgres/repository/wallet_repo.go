package repository

import (
	"errors"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWalletRepository struct {
	db *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{db: db}
}

func (r *DefaultWalletRepository) CreateWallet(wallet *domain.Wallet) error {
	return r.db.Create(mappers.ToGORMWallet(wallet)).Error
}

func (r *DefaultWalletRepository) GetWalletByUserID(userID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := r.db.First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&model), nil
}

func (r *DefaultWalletRepository) CreateTransaction(transaction *domain.WalletTransaction) error {
	return r.db.Create(mappers.ToGORMWalletTransaction(transaction)).Error
}

func (r *DefaultWalletRepository) GetTransactionByID(txID string) (*domain.WalletTransaction, error) {
	var model models.WalletTransactionModel
	if err := r.db.First(&model, "id = ?", txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWalletTransaction(&model), nil
}

func (r *DefaultWalletRepository) GetTransactionsByUserID(userID string, page, limit int) ([]*domain.WalletTransaction, int64, error) {
	var txModels []models.WalletTransactionModel
	var total int64

	query := r.db.Model(&models.WalletTransactionModel{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*domain.WalletTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = mappers.ToDomainWalletTransaction(&model)
	}
	return transactions, total, nil
}

// Withdraw debits the balance with a conditional update so two concurrent
// withdrawals cannot overdraw, then records the Pending withdrawal row.
func (r *DefaultWalletRepository) Withdraw(transaction *domain.WalletTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WalletModel{}).
			Where("id = ? AND balance >= ?", transaction.WalletID, transaction.Amount).
			Update("balance", gorm.Expr("balance - ?", transaction.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientBalance
		}

		return tx.Create(mappers.ToGORMWalletTransaction(transaction)).Error
	})
}
