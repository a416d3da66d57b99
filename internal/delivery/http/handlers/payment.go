package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/middlewares"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
	paymentuc "github.com/mathbridge/mathbridge-backend/internal/usecase/payment"
)

type PaymentHandler struct {
	paymentUc paymentuc.PaymentUsecase
}

func NewPaymentHandler(paymentUc paymentuc.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUc: paymentUc}
}

type createDepositBody struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Provider string  `json:"provider" binding:"required"`
}

func (h *PaymentHandler) CreateDeposit(c *gin.Context) {
	var body createDepositBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.paymentUc.CreateDepositIntent(&paymentdto.CreateDepositInput{
		UserID:   middlewares.Subject(c),
		Amount:   body.Amount,
		Provider: body.Provider,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type createContractPaymentBody struct {
	Provider string `json:"provider" binding:"required"`
}

func (h *PaymentHandler) CreateContractPayment(c *gin.Context) {
	var body createContractPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.paymentUc.CreateContractPaymentIntent(&paymentdto.CreateContractPaymentInput{
		ContractID: c.Param("id"),
		Provider:   body.Provider,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type withdrawBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *PaymentHandler) CreateWithdrawal(c *gin.Context) {
	var body withdrawBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.paymentUc.RequestWithdrawal(&paymentdto.WithdrawInput{
		UserID: middlewares.Subject(c),
		Amount: body.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) GetWallet(c *gin.Context) {
	wallet, err := h.paymentUc.GetWallet(middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet_id": wallet.ID,
		"balance":   wallet.Balance,
	})
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	txs, total, err := h.paymentUc.GetUserTransactions(middlewares.Subject(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]paymentdto.TransactionOutput, 0, len(txs))
	for _, tx := range txs {
		out = append(out, paymentdto.TransactionOutput{
			ID:        tx.ID,
			Amount:    tx.Amount,
			Type:      string(tx.Type),
			Status:    string(tx.Status),
			CreatedAt: tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out, "total": total})
}
