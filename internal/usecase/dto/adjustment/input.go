package adjustmentdto

import (
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

type RequestAdjustmentInput struct {
	TenantID         string
	OriginalRecordID string
	NewRecordedAt    time.Time
	NewType          *domain.RecordType
	Reason           string
	RequestedBy      string
}

type ApproveAdjustmentInput struct {
	TenantID     string
	AdjustmentID string
	ApprovedBy   string
}

type RejectAdjustmentInput struct {
	TenantID        string
	AdjustmentID    string
	RejectedBy      string
	RejectionReason string
}

type ListAdjustmentsInput struct {
	TenantID         string
	Status           *domain.AdjustmentStatus
	OriginalRecordID *string
	RequestedBy      *string
	Page             int
	Limit            int
}
