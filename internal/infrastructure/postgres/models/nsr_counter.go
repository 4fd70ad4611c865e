package models

import "time"

type TenantNSRCounterModel struct {
	TenantID   string `gorm:"primaryKey;type:uuid"`
	CurrentNSR int64  `gorm:"not null"`
	UpdatedAt  time.Time
}

func (TenantNSRCounterModel) TableName() string {
	return "tenant_nsr_counters"
}
