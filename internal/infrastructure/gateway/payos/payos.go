package payos

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

// PayOS signs the webhook data object with HMAC-SHA256 over the data fields
// serialized as key=value pairs in ascending key order.
type Verifier struct {
	checksumKey string
}

func NewVerifier(checksumKey string) *Verifier {
	return &Verifier{checksumKey: checksumKey}
}

func (v *Verifier) Provider() domain.GatewayProvider {
	return domain.ProviderPayOS
}

type webhookBody struct {
	Code      string          `json:"code"`
	Desc      string          `json:"desc"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

type webhookData struct {
	OrderCode           json.Number `json:"orderCode"`
	Amount              float64     `json:"amount"`
	Description         string      `json:"description"`
	AccountNumber       string      `json:"accountNumber"`
	TransactionDateTime string      `json:"transactionDateTime"`
}

func (v *Verifier) VerifyAndParse(body []byte, headers map[string]string) (*domain.WebhookPayload, error) {
	var payload webhookBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed payos payload: %w", domain.ErrValidation)
	}
	if payload.Signature == "" || len(payload.Data) == 0 {
		return nil, fmt.Errorf("missing signature or data: %w", domain.ErrValidation)
	}

	signed, err := signData(payload.Data, v.checksumKey)
	if err != nil {
		return nil, fmt.Errorf("malformed payos data: %w", domain.ErrValidation)
	}
	if !hmac.Equal([]byte(signed), []byte(payload.Signature)) {
		return nil, domain.ErrAuthentication
	}

	var data webhookData
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return nil, fmt.Errorf("malformed payos data: %w", domain.ErrValidation)
	}
	if data.OrderCode.String() == "" {
		return nil, fmt.Errorf("missing orderCode: %w", domain.ErrValidation)
	}

	transactionAt, err := time.Parse("2006-01-02 15:04:05", data.TransactionDateTime)
	if err != nil {
		transactionAt = time.Now()
	}

	return &domain.WebhookPayload{
		Provider:       domain.ProviderPayOS,
		OrderReference: data.OrderCode.String(),
		TransferAmount: data.Amount,
		AccountNumber:  data.AccountNumber,
		Content:        data.Description,
		TransactionAt:  transactionAt,
		Raw:            body,
	}, nil
}

// signData reproduces the gateway's canonical form: data fields sorted by key,
// rendered key=value and joined with &, then HMAC-SHA256 hex encoded.
func signData(raw json.RawMessage, key string) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+stringify(fields[k]))
	}
	canonical := strings.Join(pairs, "&")

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		if value {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
