package models

import (
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"gorm.io/datatypes"
)

// GatewayTransactionModel mirrors one payment intent on an external gateway.
// OrderReference carries a unique index: it is the webhook idempotency key.
type GatewayTransactionModel struct {
	ID                  string                   `gorm:"primaryKey;type:uuid"`
	OrderReference      string                   `gorm:"uniqueIndex;not null"`
	Provider            domain.GatewayProvider   `gorm:"not null"`
	WalletTransactionID string                   `gorm:"type:uuid;index;default:null"`
	ContractID          string                   `gorm:"type:uuid;index;default:null"`
	ExpectedAmount      float64                  `gorm:"not null"`
	Status              domain.TransactionStatus `gorm:"index;not null"`
	RawPayload          datatypes.JSON
	AccountNumber       string
	TransferContent     string
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
}

func (GatewayTransactionModel) TableName() string {
	return "gateway_transactions"
}
