package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/middlewares"
	rescheduledto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/reschedule"
	rescheduleuc "github.com/mathbridge/mathbridge-backend/internal/usecase/reschedule"
)

type RescheduleHandler struct {
	rescheduleUc rescheduleuc.RescheduleUsecase
}

func NewRescheduleHandler(rescheduleUc rescheduleuc.RescheduleUsecase) *RescheduleHandler {
	return &RescheduleHandler{rescheduleUc: rescheduleUc}
}

type createRescheduleBody struct {
	SessionID    string `json:"session_id" binding:"required"`
	NewDate      string `json:"new_date" binding:"required"` // 2006-01-02
	NewStartTime string `json:"new_start_time" binding:"required"`
	NewEndTime   string `json:"new_end_time" binding:"required"`
	Reason       string `json:"reason"`
}

func (h *RescheduleHandler) Create(c *gin.Context) {
	var body createRescheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newDate, err := time.Parse("2006-01-02", body.NewDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid new_date"})
		return
	}

	req, err := h.rescheduleUc.RequestReschedule(&rescheduledto.CreateRescheduleInput{
		SessionID:    body.SessionID,
		RequestedBy:  middlewares.Subject(c),
		NewDate:      newDate,
		NewStartTime: body.NewStartTime,
		NewEndTime:   body.NewEndTime,
		Reason:       body.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":     req.ID,
		"status": string(req.Status),
	})
}

func (h *RescheduleHandler) Approve(c *gin.Context) {
	if err := h.rescheduleUc.ApproveReschedule(c.Param("id"), middlewares.Subject(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (h *RescheduleHandler) Reject(c *gin.Context) {
	if err := h.rescheduleUc.RejectReschedule(c.Param("id"), middlewares.Subject(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}
