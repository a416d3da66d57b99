package paymentdto

type CreateDepositInput struct {
	UserID   string  `validate:"required,uuid4"`
	Amount   float64 `validate:"required,gt=0"`
	Provider string  `validate:"required,oneof=sepay payos"`
}

type CreateContractPaymentInput struct {
	ContractID string `validate:"required,uuid4"`
	Provider   string `validate:"required,oneof=sepay payos"`
}

type WithdrawInput struct {
	UserID string  `validate:"required,uuid4"`
	Amount float64 `validate:"required,gt=0"`
}

type ProcessWebhookInput struct {
	Provider string
	Body     []byte
	Headers  map[string]string
}
