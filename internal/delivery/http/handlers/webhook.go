package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
	paymentuc "github.com/mathbridge/mathbridge-backend/internal/usecase/payment"
)

// WebhookHandler receives gateway callbacks. Responses are always HTTP 200:
// gateways retry non-2xx indefinitely, and a rejected delivery (bad signature,
// unknown reference, amount mismatch) will not get better on retry. The body
// carries the actual outcome.
type WebhookHandler struct {
	paymentUc paymentuc.PaymentUsecase
}

func NewWebhookHandler(paymentUc paymentuc.PaymentUsecase) *WebhookHandler {
	return &WebhookHandler{paymentUc: paymentUc}
}

func (h *WebhookHandler) HandleSePay(c *gin.Context) {
	h.handle(c, "sepay")
}

func (h *WebhookHandler) HandlePayOS(c *gin.Context) {
	h.handle(c, "payos")
}

func (h *WebhookHandler) handle(c *gin.Context, provider string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, paymentdto.WebhookResult{Message: "unreadable body"})
		return
	}

	headers := make(map[string]string, len(c.Request.Header))
	for k := range c.Request.Header {
		headers[k] = c.GetHeader(k)
	}

	result, _ := h.paymentUc.ProcessWebhook(&paymentdto.ProcessWebhookInput{
		Provider: provider,
		Body:     body,
		Headers:  headers,
	})
	c.JSON(http.StatusOK, result)
}
