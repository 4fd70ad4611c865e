package adjustmentdto

import (
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

type AdjustmentOutput struct {
	ID                 string
	TenantID           string
	OriginalRecordID   string
	NewRecordedAt      time.Time
	NewType            *domain.RecordType
	Reason             string
	Status             domain.AdjustmentStatus
	RequestedBy        string
	RequestedAt        time.Time
	DecidedBy          string
	DecidedAt          *time.Time
	RejectionReason    string
	AdjustmentRecordID string
}

func FromDomainAdjustment(adjustment *domain.TimeRecordAdjustment) *AdjustmentOutput {
	return &AdjustmentOutput{
		ID:                 adjustment.ID(),
		TenantID:           adjustment.TenantID(),
		OriginalRecordID:   adjustment.OriginalRecordID(),
		NewRecordedAt:      adjustment.NewRecordedAt(),
		NewType:            adjustment.NewType(),
		Reason:             adjustment.Reason(),
		Status:             adjustment.Status(),
		RequestedBy:        adjustment.RequestedBy(),
		RequestedAt:        adjustment.RequestedAt(),
		DecidedBy:          adjustment.DecidedBy(),
		DecidedAt:          adjustment.DecidedAt(),
		RejectionReason:    adjustment.RejectionReason(),
		AdjustmentRecordID: adjustment.AdjustmentRecordID(),
	}
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type ListAdjustmentsOutput struct {
	Adjustments []*AdjustmentOutput
	Pagination  Pagination
}
