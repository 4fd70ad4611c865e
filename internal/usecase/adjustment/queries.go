package adjustment

import (
	"context"

	"github.com/clockvault/timeclock-service/internal/domain"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
)

func (uc *DefaultAdjustmentUsecase) GetAdjustment(ctx context.Context, tenantID, adjustmentID string) (*adjustmentdto.AdjustmentOutput, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	adjustment, err := uc.adjustmentRepo.GetByID(ctx, tenantID, adjustmentID)
	if err != nil {
		return nil, err
	}
	return adjustmentdto.FromDomainAdjustment(adjustment), nil
}

func (uc *DefaultAdjustmentUsecase) ListAdjustments(ctx context.Context, input *adjustmentdto.ListAdjustmentsInput) (*adjustmentdto.ListAdjustmentsOutput, error) {
	if input.TenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	page := input.Page
	limit := input.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > uc.cfg.MaxPageSize {
		limit = uc.cfg.MaxPageSize
	}
	adjustments, total, err := uc.adjustmentRepo.List(ctx, input.TenantID, domain.AdjustmentFilter{
		Status:           input.Status,
		OriginalRecordID: input.OriginalRecordID,
		RequestedBy:      input.RequestedBy,
		Page:             page,
		Limit:            limit,
	})
	if err != nil {
		return nil, err
	}

	outputs := make([]*adjustmentdto.AdjustmentOutput, len(adjustments))
	for i, adj := range adjustments {
		outputs[i] = adjustmentdto.FromDomainAdjustment(adj)
	}
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &adjustmentdto.ListAdjustmentsOutput{
		Adjustments: outputs,
		Pagination: adjustmentdto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
		},
	}, nil
}
