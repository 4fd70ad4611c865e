package repository

import (
	"context"
	"fmt"

	"github.com/clockvault/timeclock-service/internal/domain"
	"gorm.io/gorm"
)

var _ domain.NSRAllocator = (*DefaultNSRCounterRepository)(nil)

// DefaultNSRCounterRepository is the per-tenant sequence allocator. The
// upsert-and-increment runs as one statement, so concurrent callers for
// the same tenant serialize on the counter row and different tenants
// never contend.
type DefaultNSRCounterRepository struct {
	db *gorm.DB
}

func NewDefaultNSRCounterRepository(db *gorm.DB) *DefaultNSRCounterRepository {
	return &DefaultNSRCounterRepository{db: db}
}

func (r *DefaultNSRCounterRepository) AllocateNext(ctx context.Context, tenantID string) (int64, error) {
	return allocateNextNSR(r.db.WithContext(ctx), tenantID)
}

// allocateNextNSR is shared with the append transaction so the NSR and
// the ledger insert commit or roll back together. An NSR burned by a
// rolled-back append stays unused; gaps from aborted transactions are
// tolerable, duplicates are not.
func allocateNextNSR(tx *gorm.DB, tenantID string) (int64, error) {
	var nsr int64
	err := tx.Raw(`
		INSERT INTO tenant_nsr_counters (tenant_id, current_nsr, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (tenant_id)
		DO UPDATE SET current_nsr = tenant_nsr_counters.current_nsr + 1, updated_at = NOW()
		RETURNING current_nsr`, tenantID).Scan(&nsr).Error
	if err != nil {
		return 0, fmt.Errorf("allocating nsr for tenant %s: %w", tenantID, err)
	}
	if nsr < 1 {
		return 0, fmt.Errorf("allocator returned invalid nsr %d for tenant %s", nsr, tenantID)
	}
	return nsr, nil
}
