package handlers

import (
	"net/http"

	adjustmentrequest "github.com/clockvault/timeclock-service/internal/delivery/http/dto/adjustment"
	"github.com/clockvault/timeclock-service/internal/delivery/http/middleware"
	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/usecase/adjustment"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
	"github.com/gin-gonic/gin"
)

// Caller identity arrives in X-User-ID; authentication and role checks
// happen upstream of this service.
const userHeader = "X-User-ID"

type AdjustmentHandler struct {
	uc adjustment.AdjustmentUsecase
}

func NewAdjustmentHandler(uc adjustment.AdjustmentUsecase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

func (h *AdjustmentHandler) RequestAdjustment(c *gin.Context) {
	var req adjustmentrequest.RequestAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}
	input := &adjustmentdto.RequestAdjustmentInput{
		TenantID:         middleware.TenantID(c),
		OriginalRecordID: req.OriginalRecordID,
		NewRecordedAt:    req.NewRecordedAt,
		Reason:           req.Reason,
		RequestedBy:      c.GetHeader(userHeader),
	}
	if req.NewType != nil {
		newType := domain.RecordType(*req.NewType)
		input.NewType = &newType
	}

	output, err := h.uc.RequestAdjustment(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adjustmentrequest.ToAdjustmentResponse(output))
}

func (h *AdjustmentHandler) ApproveAdjustment(c *gin.Context) {
	output, err := h.uc.ApproveAdjustment(c.Request.Context(), &adjustmentdto.ApproveAdjustmentInput{
		TenantID:     middleware.TenantID(c),
		AdjustmentID: c.Param("id"),
		ApprovedBy:   c.GetHeader(userHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentrequest.ToAdjustmentResponse(output))
}

func (h *AdjustmentHandler) RejectAdjustment(c *gin.Context) {
	var req adjustmentrequest.RejectAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}
	output, err := h.uc.RejectAdjustment(c.Request.Context(), &adjustmentdto.RejectAdjustmentInput{
		TenantID:        middleware.TenantID(c),
		AdjustmentID:    c.Param("id"),
		RejectedBy:      c.GetHeader(userHeader),
		RejectionReason: req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentrequest.ToAdjustmentResponse(output))
}

func (h *AdjustmentHandler) GetAdjustment(c *gin.Context) {
	output, err := h.uc.GetAdjustment(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentrequest.ToAdjustmentResponse(output))
}

func (h *AdjustmentHandler) ListAdjustments(c *gin.Context) {
	input := &adjustmentdto.ListAdjustmentsInput{
		TenantID: middleware.TenantID(c),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.AdjustmentStatus(raw)
		input.Status = &status
	}
	if raw := c.Query("original_record_id"); raw != "" {
		input.OriginalRecordID = &raw
	}
	if raw := c.Query("requested_by"); raw != "" {
		input.RequestedBy = &raw
	}

	output, err := h.uc.ListAdjustments(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentrequest.ToListAdjustmentsResponse(output))
}
