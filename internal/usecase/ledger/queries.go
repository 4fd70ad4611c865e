package ledger

import (
	"context"

	"github.com/clockvault/timeclock-service/internal/domain"
	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
)

func (uc *DefaultLedgerUsecase) GetRecord(ctx context.Context, tenantID, recordID string) (*ledgerdto.TimeRecordOutput, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	record, err := uc.recordRepo.GetByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	return ledgerdto.FromDomainRecord(record), nil
}

func (uc *DefaultLedgerUsecase) GetLastRecord(ctx context.Context, tenantID, userID string) (*ledgerdto.TimeRecordOutput, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	record, err := uc.recordRepo.LastByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.NewNotFoundError("record_not_found", "user has no records")
	}
	return ledgerdto.FromDomainRecord(record), nil
}

func (uc *DefaultLedgerUsecase) ListUserRecords(ctx context.Context, input *ledgerdto.ListUserRecordsInput) (*ledgerdto.ListRecordsOutput, error) {
	if input.TenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	if input.UserID == "" {
		return nil, domain.NewValidationError("user_required", "user id is required")
	}
	page, limit := uc.clampPage(input.Page, input.Limit)
	records, total, err := uc.recordRepo.ListByUser(ctx, input.TenantID, input.UserID, domain.TimeRecordFilter{
		From:  input.From,
		To:    input.To,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	return buildListOutput(records, total, page, limit), nil
}

func (uc *DefaultLedgerUsecase) ListTenantRecords(ctx context.Context, input *ledgerdto.ListTenantRecordsInput) (*ledgerdto.ListRecordsOutput, error) {
	if input.TenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	page, limit := uc.clampPage(input.Page, input.Limit)
	records, total, err := uc.recordRepo.ListByTenant(ctx, input.TenantID, domain.TimeRecordFilter{
		From:  input.From,
		To:    input.To,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	return buildListOutput(records, total, page, limit), nil
}

func (uc *DefaultLedgerUsecase) ListPendingRecords(ctx context.Context, tenantID string, page, limit int) (*ledgerdto.ListRecordsOutput, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	page, limit = uc.clampPage(page, limit)
	records, total, err := uc.recordRepo.ListPending(ctx, tenantID, page, limit)
	if err != nil {
		return nil, err
	}
	return buildListOutput(records, total, page, limit), nil
}

func buildListOutput(records []*domain.TimeRecord, total int64, page, limit int) *ledgerdto.ListRecordsOutput {
	outputs := make([]*ledgerdto.TimeRecordOutput, len(records))
	for i, record := range records {
		outputs[i] = ledgerdto.FromDomainRecord(record)
	}
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &ledgerdto.ListRecordsOutput{
		Records: outputs,
		Pagination: ledgerdto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
		},
	}
}
