package domain

import (
	"context"
	"strings"
	"time"
)

type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "PENDING"
	AdjustmentApproved AdjustmentStatus = "APPROVED"
	AdjustmentRejected AdjustmentStatus = "REJECTED"
)

// MinAdjustmentReasonLength is the floor for correction reasons; tenants
// may configure a stricter minimum, never a looser one.
const MinAdjustmentReasonLength = 10

// TimeRecordAdjustment is a reviewed correction request. Pending is the
// only non-terminal state; a decided adjustment never transitions again.
type TimeRecordAdjustment struct {
	id                 string
	tenantID           string
	originalRecordID   string
	newRecordedAt      time.Time
	newType            *RecordType
	reason             string
	status             AdjustmentStatus
	requestedBy        string
	requestedAt        time.Time
	decidedBy          string
	decidedAt          *time.Time
	rejectionReason    string
	adjustmentRecordID string
}

type AdjustmentParams struct {
	ID                 string
	TenantID           string
	OriginalRecordID   string
	NewRecordedAt      time.Time
	NewType            *RecordType
	Reason             string
	Status             AdjustmentStatus
	RequestedBy        string
	RequestedAt        time.Time
	DecidedBy          string
	DecidedAt          *time.Time
	RejectionReason    string
	AdjustmentRecordID string
}

func NewTimeRecordAdjustment(p AdjustmentParams) (*TimeRecordAdjustment, error) {
	switch {
	case p.ID == "":
		return nil, NewValidationError("adjustment_id_required", "adjustment id is required")
	case p.TenantID == "":
		return nil, NewValidationError("tenant_required", "tenant id is required")
	case p.OriginalRecordID == "":
		return nil, NewValidationError("original_record_required", "original record id is required")
	case p.RequestedBy == "":
		return nil, NewValidationError("requester_required", "requester id is required")
	case p.NewRecordedAt.IsZero():
		return nil, NewValidationError("new_recorded_at_required", "corrected timestamp is required")
	}
	if len(strings.TrimSpace(p.Reason)) < MinAdjustmentReasonLength {
		return nil, NewValidationError("reason_too_short", "reason too short")
	}
	if p.NewType != nil && !p.NewType.Valid() {
		return nil, NewValidationError("record_type_invalid", "record type must be CLOCK_IN or CLOCK_OUT")
	}
	requestedAt := p.RequestedAt
	if requestedAt.IsZero() {
		requestedAt = time.Now().UTC()
	}
	if p.NewRecordedAt.After(requestedAt) {
		return nil, NewValidationError("new_recorded_at_future", "corrected timestamp must not be in the future")
	}
	return &TimeRecordAdjustment{
		id:               p.ID,
		tenantID:         p.TenantID,
		originalRecordID: p.OriginalRecordID,
		newRecordedAt:    p.NewRecordedAt.UTC(),
		newType:          p.NewType,
		reason:           strings.TrimSpace(p.Reason),
		status:           AdjustmentPending,
		requestedBy:      p.RequestedBy,
		requestedAt:      requestedAt.UTC(),
	}, nil
}

// RestoreTimeRecordAdjustment rehydrates a persisted adjustment without
// re-running creation validation.
func RestoreTimeRecordAdjustment(p AdjustmentParams) *TimeRecordAdjustment {
	return &TimeRecordAdjustment{
		id:                 p.ID,
		tenantID:           p.TenantID,
		originalRecordID:   p.OriginalRecordID,
		newRecordedAt:      p.NewRecordedAt.UTC(),
		newType:            p.NewType,
		reason:             p.Reason,
		status:             p.Status,
		requestedBy:        p.RequestedBy,
		requestedAt:        p.RequestedAt.UTC(),
		decidedBy:          p.DecidedBy,
		decidedAt:          p.DecidedAt,
		rejectionReason:    p.RejectionReason,
		adjustmentRecordID: p.AdjustmentRecordID,
	}
}

func (a *TimeRecordAdjustment) ID() string                 { return a.id }
func (a *TimeRecordAdjustment) TenantID() string           { return a.tenantID }
func (a *TimeRecordAdjustment) OriginalRecordID() string   { return a.originalRecordID }
func (a *TimeRecordAdjustment) NewRecordedAt() time.Time   { return a.newRecordedAt }
func (a *TimeRecordAdjustment) Reason() string             { return a.reason }
func (a *TimeRecordAdjustment) Status() AdjustmentStatus   { return a.status }
func (a *TimeRecordAdjustment) RequestedBy() string        { return a.requestedBy }
func (a *TimeRecordAdjustment) RequestedAt() time.Time     { return a.requestedAt }
func (a *TimeRecordAdjustment) DecidedBy() string          { return a.decidedBy }
func (a *TimeRecordAdjustment) DecidedAt() *time.Time      { return a.decidedAt }
func (a *TimeRecordAdjustment) RejectionReason() string    { return a.rejectionReason }
func (a *TimeRecordAdjustment) AdjustmentRecordID() string { return a.adjustmentRecordID }

func (a *TimeRecordAdjustment) NewType() *RecordType {
	if a.newType == nil {
		return nil
	}
	t := *a.newType
	return &t
}

// Approve transitions Pending -> Approved. The adjustment record id is
// attached separately once the replacement record has been minted.
func (a *TimeRecordAdjustment) Approve(decidedBy string, at time.Time) error {
	if decidedBy == "" {
		return NewValidationError("approver_required", "approver identity is required")
	}
	if a.status != AdjustmentPending {
		return NewBusinessError("adjustment_not_pending", "adjustment is already decided")
	}
	if decidedBy == a.requestedBy {
		return NewBusinessError("self_approval_forbidden", "cannot approve own adjustment")
	}
	at = at.UTC()
	a.status = AdjustmentApproved
	a.decidedBy = decidedBy
	a.decidedAt = &at
	return nil
}

// Reject transitions Pending -> Rejected with a mandatory reason.
func (a *TimeRecordAdjustment) Reject(decidedBy string, at time.Time, reason string) error {
	if decidedBy == "" {
		return NewValidationError("approver_required", "reviewer identity is required")
	}
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("rejection_reason_required", "rejection reason must not be empty")
	}
	if a.status != AdjustmentPending {
		return NewBusinessError("adjustment_not_pending", "adjustment is already decided")
	}
	if decidedBy == a.requestedBy {
		return NewBusinessError("self_approval_forbidden", "cannot reject own adjustment")
	}
	at = at.UTC()
	a.status = AdjustmentRejected
	a.decidedBy = decidedBy
	a.decidedAt = &at
	a.rejectionReason = strings.TrimSpace(reason)
	return nil
}

// AttachAdjustmentRecord links the minted replacement record. Only valid
// once, on an approved adjustment.
func (a *TimeRecordAdjustment) AttachAdjustmentRecord(recordID string) error {
	if a.status != AdjustmentApproved {
		return NewBusinessError("adjustment_not_approved", "only approved adjustments carry a replacement record")
	}
	if a.adjustmentRecordID != "" {
		return NewBusinessError("adjustment_record_set", "replacement record already attached")
	}
	if recordID == "" {
		return NewValidationError("record_id_required", "record id is required")
	}
	a.adjustmentRecordID = recordID
	return nil
}

type AdjustmentFilter struct {
	Status           *AdjustmentStatus
	OriginalRecordID *string
	RequestedBy      *string
	Page             int
	Limit            int
}

type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *TimeRecordAdjustment) error
	GetByID(ctx context.Context, tenantID, adjustmentID string) (*TimeRecordAdjustment, error)
	HasPendingForRecord(ctx context.Context, tenantID, originalRecordID string) (bool, error)
	List(ctx context.Context, tenantID string, filter AdjustmentFilter) ([]*TimeRecordAdjustment, int64, error)
	// MarkApproved persists the Pending -> Approved transition and mints
	// the replacement record in the same transaction. The transition is
	// guarded on the stored status, so a concurrent decision loses.
	MarkApproved(ctx context.Context, adjustment *TimeRecordAdjustment, draft *TimeRecordDraft, sign SignFunc) (*TimeRecord, error)
	MarkRejected(ctx context.Context, adjustment *TimeRecordAdjustment) error
	CountPendingByTenant(ctx context.Context) (map[string]int64, error)
}
