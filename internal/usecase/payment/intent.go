package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
)

// CreateDepositIntent opens a Pending wallet transaction and the gateway row
// keyed by a fresh order reference. Nothing is credited until the gateway
// webhook reconciles against that reference.
func (uc *DefaultPaymentUsecase) CreateDepositIntent(input *paymentdto.CreateDepositInput) (*paymentdto.PaymentIntentOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	wallet, err := uc.WalletRepo.GetWalletByUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	provider := domain.GatewayProvider(input.Provider)
	ref := uc.newOrderReference(provider)

	walletTx := &domain.WalletTransaction{
		ID:               uuid.New().String(),
		WalletID:         wallet.ID,
		UserID:           input.UserID,
		Amount:           input.Amount,
		Type:             domain.TypeDeposit,
		Status:           domain.TxStatusPending,
		GatewayReference: ref,
		Description:      fmt.Sprintf("Deposit via %s", input.Provider),
		CreatedAt:        time.Now(),
	}
	if err := uc.WalletRepo.CreateTransaction(walletTx); err != nil {
		return nil, err
	}

	gtx := &domain.GatewayTransaction{
		ID:                  uuid.New().String(),
		OrderReference:      ref,
		Provider:            provider,
		WalletTransactionID: walletTx.ID,
		ExpectedAmount:      input.Amount,
		Status:              domain.TxStatusPending,
		TransferContent:     transferContent(provider, ref),
		CreatedAt:           time.Now(),
	}
	if err := uc.GatewayRepo.CreateGatewayTransaction(gtx); err != nil {
		return nil, err
	}

	return &paymentdto.PaymentIntentOutput{
		OrderReference:  ref,
		Provider:        input.Provider,
		Amount:          input.Amount,
		TransferContent: gtx.TransferContent,
		CreatedAt:       gtx.CreatedAt,
	}, nil
}

// CreateContractPaymentIntent opens a gateway row against an unpaid contract.
// The expected amount is the package price at intent time.
func (uc *DefaultPaymentUsecase) CreateContractPaymentIntent(input *paymentdto.CreateContractPaymentInput) (*paymentdto.PaymentIntentOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	contract, err := uc.ContractRepo.GetContractByID(input.ContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractUnpaid {
		return nil, fmt.Errorf("%w: contract %s is %s, expected %s",
			domain.ErrConflict, contract.ID, contract.Status, domain.ContractUnpaid)
	}
	if contract.Package == nil {
		return nil, fmt.Errorf("%w: contract %s has no package", domain.ErrNotFound, contract.ID)
	}

	provider := domain.GatewayProvider(input.Provider)
	ref := uc.newOrderReference(provider)

	gtx := &domain.GatewayTransaction{
		ID:              uuid.New().String(),
		OrderReference:  ref,
		Provider:        provider,
		ContractID:      contract.ID,
		ExpectedAmount:  contract.Package.Price,
		Status:          domain.TxStatusPending,
		TransferContent: transferContent(provider, ref),
		CreatedAt:       time.Now(),
	}
	if err := uc.GatewayRepo.CreateGatewayTransaction(gtx); err != nil {
		return nil, err
	}

	return &paymentdto.PaymentIntentOutput{
		OrderReference:  ref,
		Provider:        input.Provider,
		Amount:          gtx.ExpectedAmount,
		TransferContent: gtx.TransferContent,
		CreatedAt:       gtx.CreatedAt,
	}, nil
}

// transferContent is what the payer is asked to put in the transfer. SePay
// matches on the reference appearing anywhere in the bank transfer content;
// PayOS carries the reference as its numeric order code.
func transferContent(provider domain.GatewayProvider, ref string) string {
	if provider == domain.ProviderPayOS {
		return ref
	}
	return fmt.Sprintf("MathBridge %s", ref)
}
