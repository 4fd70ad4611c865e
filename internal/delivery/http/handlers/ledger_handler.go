package handlers

import (
	"net/http"
	"strconv"
	"time"

	ledgerrequest "github.com/clockvault/timeclock-service/internal/delivery/http/dto/ledger"
	"github.com/clockvault/timeclock-service/internal/delivery/http/middleware"
	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/usecase/ledger"
	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	uc ledger.LedgerUsecase
}

func NewLedgerHandler(uc ledger.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func (h *LedgerHandler) AppendClockEvent(c *gin.Context) {
	var req ledgerrequest.AppendClockEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}

	input := &ledgerdto.AppendClockEventInput{
		TenantID:  middleware.TenantID(c),
		UserID:    req.UserID,
		Type:      domain.RecordType(req.Type),
		DeviceID:  req.DeviceID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Notes:     req.Notes,
	}
	if req.Latitude != nil && req.Longitude != nil {
		input.Location = &domain.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	output, err := h.uc.AppendClockEvent(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ledgerrequest.ToTimeRecordResponse(output))
}

func (h *LedgerHandler) GetRecord(c *gin.Context) {
	output, err := h.uc.GetRecord(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.ToTimeRecordResponse(output))
}

func (h *LedgerHandler) GetLastRecord(c *gin.Context) {
	output, err := h.uc.GetLastRecord(c.Request.Context(), middleware.TenantID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.ToTimeRecordResponse(output))
}

func (h *LedgerHandler) ListUserRecords(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}
	output, err := h.uc.ListUserRecords(c.Request.Context(), &ledgerdto.ListUserRecordsInput{
		TenantID: middleware.TenantID(c),
		UserID:   c.Param("userId"),
		From:     from,
		To:       to,
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.ToListRecordsResponse(output))
}

func (h *LedgerHandler) ListTenantRecords(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}
	output, err := h.uc.ListTenantRecords(c.Request.Context(), &ledgerdto.ListTenantRecordsInput{
		TenantID: middleware.TenantID(c),
		From:     from,
		To:       to,
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.ToListRecordsResponse(output))
}

func (h *LedgerHandler) ListPendingRecords(c *gin.Context) {
	output, err := h.uc.ListPendingRecords(c.Request.Context(), middleware.TenantID(c),
		queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.ToListRecordsResponse(output))
}

func (h *LedgerHandler) SetRecordStatus(c *gin.Context) {
	var req ledgerrequest.SetRecordStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}
	err := h.uc.SetRecordStatus(c.Request.Context(), middleware.TenantID(c), c.Param("id"), domain.RecordStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) AddRecordNote(c *gin.Context) {
	var req ledgerrequest.AddRecordNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}
	err := h.uc.AddRecordNote(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) VerifyRecord(c *gin.Context) {
	recordID := c.Param("id")
	valid, err := h.uc.VerifyRecordIntegrity(c.Request.Context(), middleware.TenantID(c), recordID, c.Query("national_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerrequest.VerifyRecordResponse{RecordID: recordID, Valid: valid})
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, domain.NewValidationError("invalid_from", "from must be RFC3339")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, domain.NewValidationError("invalid_to", "to must be RFC3339")
		}
		to = parsed
	}
	return from, to, nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
