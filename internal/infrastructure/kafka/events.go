package kafka

import "time"

type LedgerEvent struct {
	RecordID         string    `json:"record_id"`
	TenantID         string    `json:"tenant_id"`
	UserID           string    `json:"user_id"`
	NSR              int64     `json:"nsr"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	IsAdjustment     bool      `json:"is_adjustment"`
	OriginalRecordID string    `json:"original_record_id,omitempty"`
	RecordedAt       time.Time `json:"recorded_at"`
}

type AdjustmentEvent struct {
	AdjustmentID       string `json:"adjustment_id"`
	TenantID           string `json:"tenant_id"`
	OriginalRecordID   string `json:"original_record_id"`
	Status             string `json:"status"`
	Reason             string `json:"reason"`
	RequestedBy        string `json:"requested_by"`
	DecidedBy          string `json:"decided_by,omitempty"`
	AdjustmentRecordID string `json:"adjustment_record_id,omitempty"`
}
