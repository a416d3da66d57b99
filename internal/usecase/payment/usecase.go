package usecase

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jaevor/go-nanoid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
	notification "github.com/mathbridge/mathbridge-backend/internal/usecase/notification"
)

type PaymentUsecase interface {
	CreateDepositIntent(input *paymentdto.CreateDepositInput) (*paymentdto.PaymentIntentOutput, error)
	CreateContractPaymentIntent(input *paymentdto.CreateContractPaymentInput) (*paymentdto.PaymentIntentOutput, error)
	RequestWithdrawal(input *paymentdto.WithdrawInput) (*paymentdto.TransactionOutput, error)
	ProcessWebhook(input *paymentdto.ProcessWebhookInput) (*paymentdto.WebhookResult, error)
	GetWallet(userID string) (*domain.Wallet, error)
	GetUserTransactions(userID string, page, limit int) ([]*domain.WalletTransaction, int64, error)
	ExpireStaleIntents(ttl time.Duration) error
}

type DefaultPaymentUsecase struct {
	WalletRepo     domain.WalletRepository
	GatewayRepo    domain.GatewayTransactionRepository
	ContractRepo   domain.ContractRepository
	UserRepo       domain.UserRepository
	Verifiers      map[domain.GatewayProvider]domain.GatewayVerifier
	NotificationUc notification.NotificationUsecase
	Mailer         domain.MailerPort
	Metrics        *metrics.PaymentMetrics
	validate       *validator.Validate
	sepayReference func() string
	payosReference func() string
}

func NewDefaultPaymentUsecase(
	walletRepo domain.WalletRepository,
	gatewayRepo domain.GatewayTransactionRepository,
	contractRepo domain.ContractRepository,
	userRepo domain.UserRepository,
	verifiers map[domain.GatewayProvider]domain.GatewayVerifier,
	notificationUc notification.NotificationUsecase,
	mailer domain.MailerPort,
	paymentMetrics *metrics.PaymentMetrics,
) (*DefaultPaymentUsecase, error) {
	// SePay references travel inside free-text transfer content, so they use a
	// bank-safe uppercase alphabet behind the MB prefix. PayOS requires a
	// numeric order code.
	sepayGen, err := nanoid.CustomASCII("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", 12)
	if err != nil {
		return nil, fmt.Errorf("init sepay reference generator: %w", err)
	}
	payosGen, err := nanoid.CustomASCII("123456789", 12)
	if err != nil {
		return nil, fmt.Errorf("init payos reference generator: %w", err)
	}

	return &DefaultPaymentUsecase{
		WalletRepo:     walletRepo,
		GatewayRepo:    gatewayRepo,
		ContractRepo:   contractRepo,
		UserRepo:       userRepo,
		Verifiers:      verifiers,
		NotificationUc: notificationUc,
		Mailer:         mailer,
		Metrics:        paymentMetrics,
		validate:       validator.New(),
		sepayReference: func() string { return "MB" + sepayGen() },
		payosReference: payosGen,
	}, nil
}

func (uc *DefaultPaymentUsecase) GetWallet(userID string) (*domain.Wallet, error) {
	return uc.WalletRepo.GetWalletByUserID(userID)
}

func (uc *DefaultPaymentUsecase) GetUserTransactions(userID string, page, limit int) ([]*domain.WalletTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.WalletRepo.GetTransactionsByUserID(userID, page, limit)
}

func (uc *DefaultPaymentUsecase) newOrderReference(provider domain.GatewayProvider) string {
	if provider == domain.ProviderPayOS {
		return uc.payosReference()
	}
	return uc.sepayReference()
}
