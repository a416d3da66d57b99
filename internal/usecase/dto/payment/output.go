package paymentdto

import "time"

type PaymentIntentOutput struct {
	OrderReference  string    `json:"order_reference"`
	Provider        string    `json:"provider"`
	Amount          float64   `json:"amount"`
	TransferContent string    `json:"transfer_content"`
	CreatedAt       time.Time `json:"created_at"`
}

// WebhookResult is always reported with HTTP 200: gateways keep retrying
// non-2xx responses, so business failure lives in the body.
type WebhookResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TransactionOutput struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
