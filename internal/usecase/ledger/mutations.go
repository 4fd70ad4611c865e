package ledger

import (
	"context"
	"strings"

	"github.com/clockvault/timeclock-service/internal/domain"
)

// SetRecordStatus and AddRecordNote are the entire post-creation mutation
// surface of a ledger record.
func (uc *DefaultLedgerUsecase) SetRecordStatus(ctx context.Context, tenantID, recordID string, status domain.RecordStatus) error {
	if tenantID == "" {
		return domain.NewValidationError("tenant_required", "tenant id is required")
	}
	if !status.Valid() {
		return domain.NewValidationError("record_status_invalid", "unknown record status")
	}
	return uc.recordRepo.UpdateStatus(ctx, tenantID, recordID, status)
}

func (uc *DefaultLedgerUsecase) AddRecordNote(ctx context.Context, tenantID, recordID, note string) error {
	if tenantID == "" {
		return domain.NewValidationError("tenant_required", "tenant id is required")
	}
	if strings.TrimSpace(note) == "" {
		return domain.NewValidationError("note_required", "note must not be empty")
	}
	return uc.recordRepo.AppendNote(ctx, tenantID, recordID, note)
}
