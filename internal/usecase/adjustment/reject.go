package adjustment

import (
	"context"

	"github.com/clockvault/timeclock-service/internal/domain"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
)

// RejectAdjustment records the terminal Rejected decision with its reason.
// No ledger record is minted.
func (uc *DefaultAdjustmentUsecase) RejectAdjustment(ctx context.Context, input *adjustmentdto.RejectAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	switch {
	case input.TenantID == "":
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	case input.AdjustmentID == "":
		return nil, domain.NewValidationError("adjustment_id_required", "adjustment id is required")
	case input.RejectedBy == "":
		return nil, domain.NewValidationError("approver_required", "reviewer identity is required")
	}

	adjustment, err := uc.adjustmentRepo.GetByID(ctx, input.TenantID, input.AdjustmentID)
	if err != nil {
		return nil, err
	}
	if err := adjustment.Reject(input.RejectedBy, uc.now(), input.RejectionReason); err != nil {
		return nil, err
	}
	if err := uc.adjustmentRepo.MarkRejected(ctx, adjustment); err != nil {
		return nil, err
	}

	uc.countDecision(input.TenantID, domain.AdjustmentRejected)
	uc.publishAdjustmentEvent(adjustment)

	return adjustmentdto.FromDomainAdjustment(adjustment), nil
}
