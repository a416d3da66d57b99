package models

import (
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

type WalletModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"type:uuid;uniqueIndex"`
	Balance   float64
	UpdatedAt time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}

type WalletTransactionModel struct {
	ID               string                   `gorm:"primaryKey;type:uuid"`
	WalletID         string                   `gorm:"type:uuid;index"`
	UserID           string                   `gorm:"type:uuid;index"`
	Amount           float64                  `gorm:"not null"`
	Type             domain.TransactionType   `gorm:"not null"`
	Status           domain.TransactionStatus `gorm:"index;not null"`
	GatewayReference string                   `gorm:"index"`
	Description      string
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}
