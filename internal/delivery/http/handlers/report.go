package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reportuc "github.com/mathbridge/mathbridge-backend/internal/usecase/report"
)

type ReportHandler struct {
	reportUc reportuc.ReportUsecase
}

func NewReportHandler(reportUc reportuc.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUc: reportUc}
}

func (h *ReportHandler) TutorEarnings(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	earnings, err := h.reportUc.TutorEarnings(c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tutor_id":           earnings.TutorID,
		"completed_sessions": earnings.CompletedSessions,
		"cancelled_sessions": earnings.CancelledSessions,
		"active_contracts":   earnings.ActiveContracts,
		"earned_amount":      earnings.EarnedAmount,
	})
}

func (h *ReportHandler) PlatformSummary(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	summary, err := h.reportUc.PlatformSummary(from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deposits_completed":    summary.DepositsCompleted,
		"deposit_amount":        summary.DepositAmount,
		"withdrawals_completed": summary.WithdrawalsCompleted,
		"withdrawal_amount":     summary.WithdrawalAmount,
		"contracts_active":      summary.ContractsActive,
		"contracts_completed":   summary.ContractsCompleted,
		"sessions_completed":    summary.SessionsCompleted,
	})
}

// dateRange parses from/to query params, defaulting to the last 30 days.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}
