package models

import (
	"time"
)

// The partial unique index on (original_record_id) WHERE status='PENDING'
// lives in migrations; gorm tags cannot express it.
type TimeRecordAdjustmentModel struct {
	ID                 string    `gorm:"primaryKey"`
	TenantID           string    `gorm:"type:uuid;not null;index:idx_adj_tenant_status"`
	OriginalRecordID   string    `gorm:"type:uuid;not null;index"`
	NewRecordedAt      time.Time `gorm:"not null"`
	NewType            *string
	Reason             string `gorm:"not null"`
	Status             string `gorm:"not null;index:idx_adj_tenant_status"`
	RequestedBy        string `gorm:"type:uuid;not null"`
	RequestedAt        time.Time
	DecidedBy          *string `gorm:"type:uuid"`
	DecidedAt          *time.Time
	RejectionReason    string
	AdjustmentRecordID *string `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (TimeRecordAdjustmentModel) TableName() string {
	return "time_record_adjustments"
}
