package ledger

import (
	"context"

	"github.com/clockvault/timeclock-service/internal/domain"
)

// VerifyRecordIntegrity recomputes the record's signature. The national id
// is never stored on the record; when the caller does not supply one it is
// fetched from the user directory.
func (uc *DefaultLedgerUsecase) VerifyRecordIntegrity(ctx context.Context, tenantID, recordID, nationalID string) (bool, error) {
	if tenantID == "" {
		return false, domain.NewValidationError("tenant_required", "tenant id is required")
	}
	record, err := uc.recordRepo.GetByID(ctx, tenantID, recordID)
	if err != nil {
		return false, err
	}
	if nationalID == "" {
		user, err := uc.directory.GetUser(ctx, tenantID, record.UserID())
		if err != nil {
			return false, err
		}
		nationalID = user.NationalID
	}
	valid, err := uc.signer.Validate(record, nationalID)
	if err != nil {
		return false, err
	}
	if uc.metrics != nil {
		result := "invalid"
		if valid {
			result = "valid"
		}
		uc.metrics.IntegrityChecksTotal.WithLabelValues(tenantID, result).Inc()
	}
	return valid, nil
}
