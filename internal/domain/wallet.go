package domain

import "time"

type TransactionType string

const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypePayment    TransactionType = "Payment"
	TypeRefund     TransactionType = "Refund"
)

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "Pending"
	TxStatusCompleted TransactionStatus = "Completed"
	TxStatusCancelled TransactionStatus = "Cancelled"
	TxStatusFailed    TransactionStatus = "Failed"
)

type Wallet struct {
	ID        string
	UserID    string
	Balance   float64
	UpdatedAt time.Time
}

// WalletTransaction is one ledger entry. Status moves Pending -> {Completed|Cancelled|Failed}
// exactly once and never back; a Completed row is immutable.
type WalletTransaction struct {
	ID               string
	WalletID         string
	UserID           string
	Amount           float64
	Type             TransactionType
	Status           TransactionStatus
	GatewayReference string
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type WalletRepository interface {
	CreateWallet(wallet *Wallet) error
	GetWalletByUserID(userID string) (*Wallet, error)
	CreateTransaction(tx *WalletTransaction) error
	GetTransactionByID(txID string) (*WalletTransaction, error)
	GetTransactionsByUserID(userID string, page, limit int) ([]*WalletTransaction, int64, error)

	// Withdraw atomically debits the wallet and creates a Pending withdrawal row.
	// Returns ErrInsufficientBalance when the conditional debit matches no row.
	Withdraw(tx *WalletTransaction) error
}
