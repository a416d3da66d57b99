package domain

import "time"

type GatewayProvider string

const (
	ProviderSePay GatewayProvider = "sepay"
	ProviderPayOS GatewayProvider = "payos"
)

// GatewayTransaction mirrors one external payment intent. OrderReference is the
// gateway-facing business key and the idempotency key for webhook reconciliation:
// a delivery carrying an already-reconciled reference must be a no-op.
// WalletTransactionID and ContractID are mutually exclusive targets.
type GatewayTransaction struct {
	ID                  string
	OrderReference      string
	Provider            GatewayProvider
	WalletTransactionID string
	ContractID          string
	ExpectedAmount      float64
	Status              TransactionStatus
	RawPayload          []byte
	AccountNumber       string
	TransferContent     string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WebhookPayload is a gateway callback normalized by the provider adapters.
type WebhookPayload struct {
	Provider       GatewayProvider
	OrderReference string
	TransferAmount float64
	AccountNumber  string
	Content        string
	TransactionAt  time.Time
	Raw            []byte
}

type GatewayVerifier interface {
	Provider() GatewayProvider
	// VerifyAndParse authenticates the raw callback and extracts the order
	// reference. Returns ErrAuthentication on signature failure and
	// ErrValidation when no reference can be extracted.
	VerifyAndParse(body []byte, headers map[string]string) (*WebhookPayload, error)
}

type GatewayTransactionRepository interface {
	CreateGatewayTransaction(gtx *GatewayTransaction) error
	GetByOrderReference(ref string) (*GatewayTransaction, error)
	FindStalePending(olderThan time.Time) ([]*GatewayTransaction, error)

	// CompleteDeposit marks the gateway row and its wallet transaction Completed,
	// records the verified payload on the gateway row, and credits the wallet
	// balance, all in one transaction guarded by a conditional status update.
	// Returns ErrAlreadyProcessed when a concurrent or earlier delivery already
	// won the row.
	CompleteDeposit(ref string, payload *WebhookPayload) (*WalletTransaction, error)

	// CompleteContractPayment marks the gateway row Completed and advances the
	// linked contract from unpaid to pending approval, same guarantees as
	// CompleteDeposit.
	CompleteContractPayment(ref string, payload *WebhookPayload) (*Contract, error)

	// CancelGatewayTransaction cancels a still-Pending row together with its
	// dependent wallet transaction, if any. Completed rows are left untouched.
	CancelGatewayTransaction(ref string) error
}
