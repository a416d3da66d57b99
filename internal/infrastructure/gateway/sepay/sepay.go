package sepay

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

// SePay authenticates webhooks with a shared API key in the Authorization
// header and carries the order reference inside the free-text transfer
// content, so it has to be extracted by pattern.
var referencePattern = regexp.MustCompile(`MB[0-9A-Z]{12}`)

type Verifier struct {
	apiKey string
}

func NewVerifier(apiKey string) *Verifier {
	return &Verifier{apiKey: apiKey}
}

func (v *Verifier) Provider() domain.GatewayProvider {
	return domain.ProviderSePay
}

type webhookBody struct {
	ID              int64   `json:"id"`
	Gateway         string  `json:"gateway"`
	TransactionDate string  `json:"transactionDate"`
	AccountNumber   string  `json:"accountNumber"`
	Code            string  `json:"code"`
	Content         string  `json:"content"`
	TransferType    string  `json:"transferType"`
	TransferAmount  float64 `json:"transferAmount"`
	ReferenceCode   string  `json:"referenceCode"`
}

func (v *Verifier) VerifyAndParse(body []byte, headers map[string]string) (*domain.WebhookPayload, error) {
	authorization := headers["Authorization"]
	expected := "Apikey " + v.apiKey
	if subtle.ConstantTimeCompare([]byte(authorization), []byte(expected)) != 1 {
		return nil, domain.ErrAuthentication
	}

	var payload webhookBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed sepay payload: %w", domain.ErrValidation)
	}
	if payload.TransferType != "in" {
		return nil, fmt.Errorf("unsupported transfer type %q: %w", payload.TransferType, domain.ErrValidation)
	}

	// Banks mangle transfer content, so the code field is tried first and the
	// content is scanned as fallback.
	reference := referencePattern.FindString(strings.ToUpper(payload.Code))
	if reference == "" {
		reference = referencePattern.FindString(strings.ToUpper(payload.Content))
	}
	if reference == "" {
		return nil, fmt.Errorf("no order reference in transfer content: %w", domain.ErrValidation)
	}

	transactionAt, err := time.Parse("2006-01-02 15:04:05", payload.TransactionDate)
	if err != nil {
		transactionAt = time.Now()
	}

	return &domain.WebhookPayload{
		Provider:       domain.ProviderSePay,
		OrderReference: reference,
		TransferAmount: payload.TransferAmount,
		AccountNumber:  payload.AccountNumber,
		Content:        payload.Content,
		TransactionAt:  transactionAt,
		Raw:            body,
	}, nil
}
