package background

import (
	"context"
	"log/slog"
	"time"

	contractuc "github.com/mathbridge/mathbridge-backend/internal/usecase/contract"
	paymentuc "github.com/mathbridge/mathbridge-backend/internal/usecase/payment"
)

const (
	intentTTL           = 30 * time.Minute
	intentSweepInterval = time.Minute

	reminderLeadTime = 24 * time.Hour
	reminderInterval = 15 * time.Minute

	sessionSweepInterval = time.Hour
)

type BackgroundTasks struct {
	PaymentUsecase  paymentuc.PaymentUsecase
	ContractUsecase contractuc.ContractUsecase
}

func NewBackgroundTasks(paymentUC paymentuc.PaymentUsecase, contractUC contractuc.ContractUsecase) *BackgroundTasks {
	return &BackgroundTasks{
		PaymentUsecase:  paymentUC,
		ContractUsecase: contractUC,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startIntentExpiry(ctx)
	go bt.startSessionReminders(ctx)
	go bt.startSessionAutoComplete(ctx)
}

func (bt *BackgroundTasks) startIntentExpiry(ctx context.Context) {
	ticker := time.NewTicker(intentSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PaymentUsecase.ExpireStaleIntents(intentTTL); err != nil {
				slog.Error("intent expiry sweep failed", "error", err.Error())
			}
		}
	}
}

func (bt *BackgroundTasks) startSessionReminders(ctx context.Context) {
	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.ContractUsecase.SendSessionReminders(reminderLeadTime, reminderInterval); err != nil {
				slog.Error("session reminder sweep failed", "error", err.Error())
			}
		}
	}
}

func (bt *BackgroundTasks) startSessionAutoComplete(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.ContractUsecase.CompleteElapsedSessions(); err != nil {
				slog.Error("session auto-complete sweep failed", "error", err.Error())
			}
		}
	}
}
