package models

import (
	"time"
)

type TimeRecordModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	TenantID         string `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_nsr;index:idx_tenant_user_recorded;index:idx_tenant_status"`
	UserID           string `gorm:"type:uuid;not null;index:idx_tenant_user_recorded"`
	NSR              int64  `gorm:"column:nsr;not null;uniqueIndex:idx_tenant_nsr"`
	RecordedAt       time.Time `gorm:"not null;index:idx_tenant_user_recorded"`
	Type             string    `gorm:"not null"`
	SignatureHash    string    `gorm:"not null"`
	IsAdjustment     bool      `gorm:"not null;default:false"`
	OriginalRecordID *string   `gorm:"type:uuid;index"`
	Status           string    `gorm:"not null;index:idx_tenant_status"`
	Notes            string
	Latitude         *float64
	Longitude        *float64
	IPAddress        string
	UserAgent        string
	DeviceID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (TimeRecordModel) TableName() string {
	return "time_records"
}
