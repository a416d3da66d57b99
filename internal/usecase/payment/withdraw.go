package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
)

// RequestWithdrawal debits the wallet up front and records a Pending
// withdrawal for manual payout. The conditional debit fails the request
// outright when the balance does not cover the amount.
func (uc *DefaultPaymentUsecase) RequestWithdrawal(input *paymentdto.WithdrawInput) (*paymentdto.TransactionOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	wallet, err := uc.WalletRepo.GetWalletByUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	walletTx := &domain.WalletTransaction{
		ID:          uuid.New().String(),
		WalletID:    wallet.ID,
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        domain.TypeWithdrawal,
		Status:      domain.TxStatusPending,
		Description: "Withdrawal request",
		CreatedAt:   time.Now(),
	}
	if err := uc.WalletRepo.Withdraw(walletTx); err != nil {
		return nil, err
	}

	if err := uc.NotificationUc.Notify(input.UserID,
		"Withdrawal requested",
		fmt.Sprintf("Your withdrawal of %.0f VND is being processed.", input.Amount),
		domain.NotifyPayment); err != nil {
		slog.Error("failed to notify withdrawal", "user_id", input.UserID, "error", err.Error())
	}

	return &paymentdto.TransactionOutput{
		ID:        walletTx.ID,
		Amount:    walletTx.Amount,
		Type:      string(walletTx.Type),
		Status:    string(walletTx.Status),
		CreatedAt: walletTx.CreatedAt,
	}, nil
}
