package ledger

import (
	"time"

	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
)

type TimeRecordResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	UserID           string    `json:"user_id"`
	NSR              int64     `json:"nsr"`
	RecordedAt       time.Time `json:"recorded_at"`
	Type             string    `json:"type"`
	SignatureHash    string    `json:"signature_hash"`
	IsAdjustment     bool      `json:"is_adjustment"`
	OriginalRecordID string    `json:"original_record_id,omitempty"`
	Status           string    `json:"status"`
	Notes            []string  `json:"notes,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	DeviceID         string    `json:"device_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToTimeRecordResponse(output *ledgerdto.TimeRecordOutput) *TimeRecordResponse {
	response := &TimeRecordResponse{
		ID:               output.ID,
		TenantID:         output.TenantID,
		UserID:           output.UserID,
		NSR:              output.NSR,
		RecordedAt:       output.RecordedAt,
		Type:             string(output.Type),
		SignatureHash:    output.SignatureHash,
		IsAdjustment:     output.IsAdjustment,
		OriginalRecordID: output.OriginalRecordID,
		Status:           string(output.Status),
		Notes:            output.Notes,
		DeviceID:         output.DeviceID,
		CreatedAt:        output.CreatedAt,
	}
	if output.Location != nil {
		lat, lon := output.Location.Latitude, output.Location.Longitude
		response.Latitude = &lat
		response.Longitude = &lon
	}
	return response
}

type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
}

type ListRecordsResponse struct {
	Records    []*TimeRecordResponse `json:"records"`
	Pagination PaginationResponse    `json:"pagination"`
}

func ToListRecordsResponse(output *ledgerdto.ListRecordsOutput) *ListRecordsResponse {
	records := make([]*TimeRecordResponse, len(output.Records))
	for i, record := range output.Records {
		records[i] = ToTimeRecordResponse(record)
	}
	return &ListRecordsResponse{
		Records: records,
		Pagination: PaginationResponse{
			CurrentPage: output.Pagination.CurrentPage,
			TotalPages:  output.Pagination.TotalPages,
			TotalItems:  output.Pagination.TotalItems,
		},
	}
}

type VerifyRecordResponse struct {
	RecordID string `json:"record_id"`
	Valid    bool   `json:"valid"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
