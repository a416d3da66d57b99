package usecase

import (
	"log/slog"
	"time"
)

// ExpireStaleIntents cancels gateway transactions that stayed Pending past the
// TTL. The payer never transferred (or the gateway never called back); the
// intent and its dependent wallet row are closed so the reference cannot be
// reconciled later.
func (uc *DefaultPaymentUsecase) ExpireStaleIntents(ttl time.Duration) error {
	stale, err := uc.GatewayRepo.FindStalePending(time.Now().Add(-ttl))
	if err != nil {
		return err
	}

	for _, gtx := range stale {
		if err := uc.GatewayRepo.CancelGatewayTransaction(gtx.OrderReference); err != nil {
			slog.Error("failed to expire gateway transaction",
				"order_reference", gtx.OrderReference, "error", err.Error())
			continue
		}
		slog.Info("gateway transaction expired",
			"order_reference", gtx.OrderReference, "provider", gtx.Provider)
	}
	return nil
}
