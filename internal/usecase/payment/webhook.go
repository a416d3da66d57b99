package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
)

// amountTolerance absorbs float drift between the stored expectation and the
// amount a gateway reports. Amounts are VND, so anything under one dong is noise.
const amountTolerance = 0.5

// ProcessWebhook reconciles one gateway delivery: authenticate, resolve the
// order reference, guard idempotency, check the amount, then apply the ledger
// mutation. The returned result is always reported with HTTP 200; only the
// Success flag and Message tell the gateway operator what happened. Redelivery
// of an already-reconciled reference succeeds as a no-op.
func (uc *DefaultPaymentUsecase) ProcessWebhook(input *paymentdto.ProcessWebhookInput) (*paymentdto.WebhookResult, error) {
	started := time.Now()
	provider := domain.GatewayProvider(input.Provider)
	uc.Metrics.RecordWebhookReceived(input.Provider)

	result, err := uc.reconcile(provider, input)

	outcome := "completed"
	if err != nil {
		outcome = "rejected"
	} else if !result.Success {
		outcome = "rejected"
	}
	uc.Metrics.RecordWebhookDuration(input.Provider, outcome, time.Since(started).Seconds())

	return result, err
}

func (uc *DefaultPaymentUsecase) reconcile(provider domain.GatewayProvider, input *paymentdto.ProcessWebhookInput) (*paymentdto.WebhookResult, error) {
	verifier, ok := uc.Verifiers[provider]
	if !ok {
		uc.Metrics.RecordWebhookRejected(input.Provider, "unknown_provider")
		return &paymentdto.WebhookResult{Message: "unknown provider"},
			fmt.Errorf("%w: no verifier for provider %q", domain.ErrValidation, input.Provider)
	}

	payload, err := verifier.VerifyAndParse(input.Body, input.Headers)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, domain.ErrAuthentication) {
			reason = "signature"
		}
		uc.Metrics.RecordWebhookRejected(input.Provider, reason)
		slog.Warn("webhook rejected",
			"provider", input.Provider, "reason", reason, "error", err.Error())
		return &paymentdto.WebhookResult{Message: "verification failed"}, err
	}

	gtx, err := uc.GatewayRepo.GetByOrderReference(payload.OrderReference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.Metrics.RecordWebhookRejected(input.Provider, "unknown_reference")
			slog.Warn("webhook for unknown order reference",
				"provider", input.Provider, "order_reference", payload.OrderReference)
			return &paymentdto.WebhookResult{Message: "order reference not found"}, err
		}
		return &paymentdto.WebhookResult{Message: "internal error"}, err
	}

	if gtx.Status != domain.TxStatusPending {
		uc.Metrics.RecordWebhookDuplicate(input.Provider)
		slog.Info("duplicate webhook delivery",
			"provider", input.Provider, "order_reference", gtx.OrderReference, "status", gtx.Status)
		return &paymentdto.WebhookResult{Success: true, Message: "already processed"}, nil
	}

	if math.Abs(payload.TransferAmount-gtx.ExpectedAmount) > amountTolerance {
		uc.Metrics.RecordWebhookRejected(input.Provider, "amount_mismatch")
		slog.Warn("webhook amount mismatch",
			"provider", input.Provider,
			"order_reference", gtx.OrderReference,
			"expected", gtx.ExpectedAmount,
			"received", payload.TransferAmount)
		return &paymentdto.WebhookResult{Message: "amount mismatch"},
			fmt.Errorf("%w: expected %.2f, received %.2f",
				domain.ErrAmountMismatch, gtx.ExpectedAmount, payload.TransferAmount)
	}

	if gtx.WalletTransactionID != "" {
		return uc.applyDeposit(gtx, payload)
	}
	return uc.applyContractPayment(gtx, payload)
}

func (uc *DefaultPaymentUsecase) applyDeposit(gtx *domain.GatewayTransaction, payload *domain.WebhookPayload) (*paymentdto.WebhookResult, error) {
	walletTx, err := uc.GatewayRepo.CompleteDeposit(gtx.OrderReference, payload)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			uc.Metrics.RecordWebhookDuplicate(string(gtx.Provider))
			return &paymentdto.WebhookResult{Success: true, Message: "already processed"}, nil
		}
		return &paymentdto.WebhookResult{Message: "internal error"}, err
	}

	uc.Metrics.RecordWebhookCompleted(string(gtx.Provider), "deposit", walletTx.Amount)
	slog.Info("deposit reconciled",
		"order_reference", gtx.OrderReference,
		"user_id", walletTx.UserID,
		"amount", walletTx.Amount)

	uc.notifyAndMail(walletTx.UserID,
		"Deposit completed",
		fmt.Sprintf("Your deposit of %.0f VND has been credited.", walletTx.Amount),
		domain.NotifyPayment)

	return &paymentdto.WebhookResult{Success: true, Message: "deposit completed"}, nil
}

func (uc *DefaultPaymentUsecase) applyContractPayment(gtx *domain.GatewayTransaction, payload *domain.WebhookPayload) (*paymentdto.WebhookResult, error) {
	contract, err := uc.GatewayRepo.CompleteContractPayment(gtx.OrderReference, payload)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			uc.Metrics.RecordWebhookDuplicate(string(gtx.Provider))
			return &paymentdto.WebhookResult{Success: true, Message: "already processed"}, nil
		}
		return &paymentdto.WebhookResult{Message: "internal error"}, err
	}

	uc.Metrics.RecordWebhookCompleted(string(gtx.Provider), "contract", gtx.ExpectedAmount)
	slog.Info("contract payment reconciled",
		"order_reference", gtx.OrderReference,
		"contract_id", contract.ID,
		"amount", gtx.ExpectedAmount)

	uc.notifyAndMail(contract.ParentID,
		"Payment received",
		"Your contract payment was received and is awaiting tutor confirmation.",
		domain.NotifyPayment)
	if err := uc.NotificationUc.Notify(contract.TutorID,
		"Contract paid",
		"A contract assigned to you has been paid and needs your confirmation.",
		domain.NotifyContract); err != nil {
		slog.Error("failed to notify tutor", "contract_id", contract.ID, "error", err.Error())
	}

	return &paymentdto.WebhookResult{Success: true, Message: "contract payment completed"}, nil
}

// notifyAndMail fires the post-commit side effects. Neither can undo the
// ledger mutation, so failures are only logged.
func (uc *DefaultPaymentUsecase) notifyAndMail(userID, title, message string, notificationType domain.NotificationType) {
	if err := uc.NotificationUc.Notify(userID, title, message, notificationType); err != nil {
		slog.Error("failed to notify user", "user_id", userID, "error", err.Error())
	}

	user, err := uc.UserRepo.GetUserByID(userID)
	if err != nil {
		slog.Error("failed to load user for receipt mail", "user_id", userID, "error", err.Error())
		return
	}
	go func() {
		if err := uc.Mailer.Send(user.Email, title, message); err != nil {
			slog.Error("failed to send receipt mail", "user_id", userID, "error", err.Error())
		}
	}()
}
