package adjustment

import (
	"context"

	"github.com/clockvault/timeclock-service/internal/domain"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
	"github.com/google/uuid"
)

// ApproveAdjustment mints a brand-new ledger record carrying the corrected
// values and linked to the original; the original record itself is never
// touched. Role checks on the approver belong to the caller; this path
// only refuses to run without an approver identity or with the requester
// approving themselves.
func (uc *DefaultAdjustmentUsecase) ApproveAdjustment(ctx context.Context, input *adjustmentdto.ApproveAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	switch {
	case input.TenantID == "":
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	case input.AdjustmentID == "":
		return nil, domain.NewValidationError("adjustment_id_required", "adjustment id is required")
	case input.ApprovedBy == "":
		return nil, domain.NewValidationError("approver_required", "approver identity is required")
	}

	adjustment, err := uc.adjustmentRepo.GetByID(ctx, input.TenantID, input.AdjustmentID)
	if err != nil {
		return nil, err
	}
	original, err := uc.recordRepo.GetByID(ctx, input.TenantID, adjustment.OriginalRecordID())
	if err != nil {
		return nil, err
	}
	if err := adjustment.Approve(input.ApprovedBy, uc.now()); err != nil {
		return nil, err
	}

	// The signature covers the employee whose time is being corrected,
	// not the approver.
	owner, err := uc.directory.GetUser(ctx, input.TenantID, original.UserID())
	if err != nil {
		return nil, err
	}

	recordType := original.Type()
	if newType := adjustment.NewType(); newType != nil {
		recordType = *newType
	}
	recordedAt := adjustment.NewRecordedAt()

	draft := &domain.TimeRecordDraft{
		ID:               uuid.NewString(),
		TenantID:         input.TenantID,
		UserID:           original.UserID(),
		RecordedAt:       recordedAt,
		Type:             recordType,
		IsAdjustment:     true,
		OriginalRecordID: original.ID(),
		// Corrections land at arbitrary past instants, so the
		// alternation and interval guards do not apply.
		EnforceSequence: false,
	}
	sign := func(nsr int64) (string, error) {
		return uc.signer.Hash(nsr, input.TenantID, original.UserID(), owner.NationalID, recordedAt, recordType)
	}

	record, err := uc.adjustmentRepo.MarkApproved(ctx, adjustment, draft, sign)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordsCreatedTotal.WithLabelValues(input.TenantID, string(record.Type()), "true").Inc()
	}
	uc.countDecision(input.TenantID, domain.AdjustmentApproved)
	uc.publishAdjustmentEvent(adjustment)

	return adjustmentdto.FromDomainAdjustment(adjustment), nil
}
