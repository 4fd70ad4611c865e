package adjustment

import (
	"time"

	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
)

type AdjustmentResponse struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenant_id"`
	OriginalRecordID   string     `json:"original_record_id"`
	NewRecordedAt      time.Time  `json:"new_recorded_at"`
	NewType            *string    `json:"new_type,omitempty"`
	Reason             string     `json:"reason"`
	Status             string     `json:"status"`
	RequestedBy        string     `json:"requested_by"`
	RequestedAt        time.Time  `json:"requested_at"`
	DecidedBy          string     `json:"decided_by,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	AdjustmentRecordID string     `json:"adjustment_record_id,omitempty"`
}

func ToAdjustmentResponse(output *adjustmentdto.AdjustmentOutput) *AdjustmentResponse {
	response := &AdjustmentResponse{
		ID:                 output.ID,
		TenantID:           output.TenantID,
		OriginalRecordID:   output.OriginalRecordID,
		NewRecordedAt:      output.NewRecordedAt,
		Reason:             output.Reason,
		Status:             string(output.Status),
		RequestedBy:        output.RequestedBy,
		RequestedAt:        output.RequestedAt,
		DecidedBy:          output.DecidedBy,
		DecidedAt:          output.DecidedAt,
		RejectionReason:    output.RejectionReason,
		AdjustmentRecordID: output.AdjustmentRecordID,
	}
	if output.NewType != nil {
		value := string(*output.NewType)
		response.NewType = &value
	}
	return response
}

type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
}

type ListAdjustmentsResponse struct {
	Adjustments []*AdjustmentResponse `json:"adjustments"`
	Pagination  PaginationResponse    `json:"pagination"`
}

func ToListAdjustmentsResponse(output *adjustmentdto.ListAdjustmentsOutput) *ListAdjustmentsResponse {
	adjustments := make([]*AdjustmentResponse, len(output.Adjustments))
	for i, adj := range output.Adjustments {
		adjustments[i] = ToAdjustmentResponse(adj)
	}
	return &ListAdjustmentsResponse{
		Adjustments: adjustments,
		Pagination: PaginationResponse{
			CurrentPage: output.Pagination.CurrentPage,
			TotalPages:  output.Pagination.TotalPages,
			TotalItems:  output.Pagination.TotalItems,
		},
	}
}
