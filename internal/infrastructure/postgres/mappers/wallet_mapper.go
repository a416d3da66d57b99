package mappers

import (
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
)

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		ID:        model.ID,
		UserID:    model.UserID,
		Balance:   model.Balance,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMWallet(wallet *domain.Wallet) *models.WalletModel {
	return &models.WalletModel{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Balance:   wallet.Balance,
		UpdatedAt: wallet.UpdatedAt,
	}
}

func ToDomainWalletTransaction(model *models.WalletTransactionModel) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:               model.ID,
		WalletID:         model.WalletID,
		UserID:           model.UserID,
		Amount:           model.Amount,
		Type:             model.Type,
		Status:           model.Status,
		GatewayReference: model.GatewayReference,
		Description:      model.Description,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMWalletTransaction(tx *domain.WalletTransaction) *models.WalletTransactionModel {
	return &models.WalletTransactionModel{
		ID:               tx.ID,
		WalletID:         tx.WalletID,
		UserID:           tx.UserID,
		Amount:           tx.Amount,
		Type:             tx.Type,
		Status:           tx.Status,
		GatewayReference: tx.GatewayReference,
		Description:      tx.Description,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
}
