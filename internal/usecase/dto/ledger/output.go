package ledgerdto

import (
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

type TimeRecordOutput struct {
	ID               string
	TenantID         string
	UserID           string
	NSR              int64
	RecordedAt       time.Time
	Type             domain.RecordType
	SignatureHash    string
	IsAdjustment     bool
	OriginalRecordID string
	Status           domain.RecordStatus
	Notes            []string
	Location         *domain.Location
	IPAddress        string
	UserAgent        string
	DeviceID         string
	CreatedAt        time.Time
}

func FromDomainRecord(record *domain.TimeRecord) *TimeRecordOutput {
	provenance := record.Provenance()
	return &TimeRecordOutput{
		ID:               record.ID(),
		TenantID:         record.TenantID(),
		UserID:           record.UserID(),
		NSR:              record.NSR(),
		RecordedAt:       record.RecordedAt(),
		Type:             record.Type(),
		SignatureHash:    record.SignatureHash(),
		IsAdjustment:     record.IsAdjustment(),
		OriginalRecordID: record.OriginalRecordID(),
		Status:           record.Status(),
		Notes:            record.Notes(),
		Location:         provenance.Location,
		IPAddress:        provenance.IPAddress,
		UserAgent:        provenance.UserAgent,
		DeviceID:         provenance.DeviceID,
		CreatedAt:        record.CreatedAt(),
	}
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type ListRecordsOutput struct {
	Records    []*TimeRecordOutput
	Pagination Pagination
}
