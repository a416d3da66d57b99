package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/middlewares"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	contractuc "github.com/mathbridge/mathbridge-backend/internal/usecase/contract"
	contractdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/contract"
)

type ContractHandler struct {
	contractUc contractuc.ContractUsecase
}

func NewContractHandler(contractUc contractuc.ContractUsecase) *ContractHandler {
	return &ContractHandler{contractUc: contractUc}
}

type createContractBody struct {
	TutorID   string `json:"tutor_id" binding:"required"`
	PackageID string `json:"package_id" binding:"required"`
	DayMask   int    `json:"day_mask" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // 2006-01-02
	EndDate   string `json:"end_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // 15:04
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *ContractHandler) Create(c *gin.Context) {
	var body createContractBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	contract, err := h.contractUc.CreateContract(&contractdto.CreateContractInput{
		ParentID:  middlewares.Subject(c),
		TutorID:   body.TutorID,
		PackageID: body.PackageID,
		DayMask:   body.DayMask,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contractResponse(contract))
}

func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractUc.GetContract(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	userID := middlewares.Subject(c)
	if contract.ParentID != userID && contract.TutorID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}
	c.JSON(http.StatusOK, contractResponse(contract))
}

func (h *ContractHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	contracts, total, err := h.contractUc.GetUserContracts(middlewares.Subject(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(contracts))
	for _, contract := range contracts {
		out = append(out, contractResponse(contract))
	}
	c.JSON(http.StatusOK, gin.H{"contracts": out, "total": total})
}

func (h *ContractHandler) Activate(c *gin.Context) {
	contract, err := h.contractUc.ActivateContract(c.Param("id"), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractResponse(contract))
}

func (h *ContractHandler) Cancel(c *gin.Context) {
	if err := h.contractUc.CancelContract(c.Param("id"), middlewares.Subject(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.ContractCancelled)})
}

func (h *ContractHandler) ListSessions(c *gin.Context) {
	contract, err := h.contractUc.GetContract(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	userID := middlewares.Subject(c)
	if contract.ParentID != userID && contract.TutorID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}

	sessions, err := h.contractUc.GetContractSessions(contract.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, gin.H{
			"id":         s.ID,
			"date":       s.Date.Format("2006-01-02"),
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
			"status":     string(s.Status),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (h *ContractHandler) ListPackages(c *gin.Context) {
	packages, err := h.contractUc.ListPackages()
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, gin.H{
			"id":             pkg.ID,
			"name":           pkg.Name,
			"price":          pkg.Price,
			"session_count":  pkg.SessionCount,
			"max_reschedule": pkg.MaxReschedule,
		})
	}
	c.JSON(http.StatusOK, gin.H{"packages": out})
}

func contractResponse(contract *domain.Contract) gin.H {
	return gin.H{
		"id":               contract.ID,
		"parent_id":        contract.ParentID,
		"tutor_id":         contract.TutorID,
		"package_id":       contract.PackageID,
		"day_mask":         contract.DayMask,
		"start_date":       contract.StartDate.Format("2006-01-02"),
		"end_date":         contract.EndDate.Format("2006-01-02"),
		"start_time":       contract.StartTime,
		"end_time":         contract.EndTime,
		"status":           string(contract.Status),
		"reschedule_count": contract.RescheduleCount,
	}
}
