package adjustment

import "time"

type RequestAdjustmentRequest struct {
	OriginalRecordID string    `json:"original_record_id" binding:"required"`
	NewRecordedAt    time.Time `json:"new_recorded_at" binding:"required"`
	NewType          *string   `json:"new_type"`
	Reason           string    `json:"reason" binding:"required"`
}

type RejectAdjustmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
