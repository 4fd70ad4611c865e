package adjustment

import (
	"context"
	"strings"

	"github.com/clockvault/timeclock-service/internal/domain"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
)

// RequestAdjustment opens a Pending correction for a record owned by the
// requester. The original record is read-only input here; nothing about
// it changes until a reviewer approves.
func (uc *DefaultAdjustmentUsecase) RequestAdjustment(ctx context.Context, input *adjustmentdto.RequestAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	switch {
	case input.TenantID == "":
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	case input.OriginalRecordID == "":
		return nil, domain.NewValidationError("original_record_required", "original record id is required")
	case input.RequestedBy == "":
		return nil, domain.NewValidationError("requester_required", "requester id is required")
	case input.NewRecordedAt.IsZero():
		return nil, domain.NewValidationError("new_recorded_at_required", "corrected timestamp is required")
	}
	if len(strings.TrimSpace(input.Reason)) < uc.cfg.MinReasonLength {
		return nil, domain.NewValidationError("reason_too_short", "reason too short")
	}
	if input.NewType != nil && !input.NewType.Valid() {
		return nil, domain.NewValidationError("record_type_invalid", "record type must be CLOCK_IN or CLOCK_OUT")
	}
	now := uc.now()
	if input.NewRecordedAt.After(now) {
		return nil, domain.NewValidationError("new_recorded_at_future", "corrected timestamp must not be in the future")
	}

	original, err := uc.recordRepo.GetByID(ctx, input.TenantID, input.OriginalRecordID)
	if err != nil {
		return nil, err
	}
	if original.UserID() != input.RequestedBy {
		return nil, domain.NewBusinessError("not_record_owner", "only the record owner may request an adjustment")
	}

	pending, err := uc.adjustmentRepo.HasPendingForRecord(ctx, input.TenantID, input.OriginalRecordID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.NewBusinessError("pending_adjustment_exists", "a pending adjustment already exists for this record")
	}

	adjustment, err := domain.NewTimeRecordAdjustment(domain.AdjustmentParams{
		ID:               uc.newID(),
		TenantID:         input.TenantID,
		OriginalRecordID: input.OriginalRecordID,
		NewRecordedAt:    input.NewRecordedAt,
		NewType:          input.NewType,
		Reason:           input.Reason,
		RequestedBy:      input.RequestedBy,
		RequestedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	// The repository's partial unique index settles the race two
	// concurrent requests can win past the check above.
	if err := uc.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AdjustmentsRequestedTotal.WithLabelValues(input.TenantID).Inc()
	}
	uc.publishAdjustmentEvent(adjustment)

	return adjustmentdto.FromDomainAdjustment(adjustment), nil
}
