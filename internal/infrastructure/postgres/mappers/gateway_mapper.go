package mappers

import (
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainGatewayTransaction(model *models.GatewayTransactionModel) *domain.GatewayTransaction {
	return &domain.GatewayTransaction{
		ID:                  model.ID,
		OrderReference:      model.OrderReference,
		Provider:            model.Provider,
		WalletTransactionID: model.WalletTransactionID,
		ContractID:          model.ContractID,
		ExpectedAmount:      model.ExpectedAmount,
		Status:              model.Status,
		RawPayload:          []byte(model.RawPayload),
		AccountNumber:       model.AccountNumber,
		TransferContent:     model.TransferContent,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func ToGORMGatewayTransaction(gtx *domain.GatewayTransaction) *models.GatewayTransactionModel {
	return &models.GatewayTransactionModel{
		ID:                  gtx.ID,
		OrderReference:      gtx.OrderReference,
		Provider:            gtx.Provider,
		WalletTransactionID: gtx.WalletTransactionID,
		ContractID:          gtx.ContractID,
		ExpectedAmount:      gtx.ExpectedAmount,
		Status:              gtx.Status,
		RawPayload:          datatypes.JSON(gtx.RawPayload),
		AccountNumber:       gtx.AccountNumber,
		TransferContent:     gtx.TransferContent,
		CreatedAt:           gtx.CreatedAt,
		UpdatedAt:           gtx.UpdatedAt,
	}
}
