package ledgerdto

import (
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

type AppendClockEventInput struct {
	TenantID  string
	UserID    string
	Type      domain.RecordType
	DeviceID  string
	Location  *domain.Location
	IPAddress string
	UserAgent string
	Notes     []string
}

type ListUserRecordsInput struct {
	TenantID string
	UserID   string
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}

type ListTenantRecordsInput struct {
	TenantID string
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}
