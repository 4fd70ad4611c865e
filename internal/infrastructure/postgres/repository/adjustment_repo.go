package repository

import (
	"context"
	"errors"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/mappers"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAdjustmentRepository struct {
	db *gorm.DB
}

func NewDefaultAdjustmentRepository(db *gorm.DB) *DefaultAdjustmentRepository {
	return &DefaultAdjustmentRepository{db: db}
}

func (r *DefaultAdjustmentRepository) Create(ctx context.Context, adjustment *domain.TimeRecordAdjustment) error {
	model := mappers.ToGORMAdjustment(adjustment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// The partial unique index on pending adjustments backs the
		// single-pending-per-record invariant under concurrent requests.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewBusinessError("pending_adjustment_exists", "a pending adjustment already exists for this record")
		}
		return domain.NewInfrastructureError("adjustment_insert_failed", "failed to persist adjustment", err)
	}
	return nil
}

func (r *DefaultAdjustmentRepository) GetByID(ctx context.Context, tenantID, adjustmentID string) (*domain.TimeRecordAdjustment, error) {
	var model models.TimeRecordAdjustmentModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, adjustmentID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("adjustment_not_found", "adjustment not found")
		}
		return nil, domain.NewInfrastructureError("adjustment_query_failed", "failed to load adjustment", err)
	}
	return mappers.ToDomainAdjustment(&model), nil
}

func (r *DefaultAdjustmentRepository) HasPendingForRecord(ctx context.Context, tenantID, originalRecordID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TimeRecordAdjustmentModel{}).
		Where("tenant_id = ? AND original_record_id = ? AND status = ?", tenantID, originalRecordID, string(domain.AdjustmentPending)).
		Count(&count).Error
	if err != nil {
		return false, domain.NewInfrastructureError("adjustment_query_failed", "failed to check pending adjustments", err)
	}
	return count > 0, nil
}

func (r *DefaultAdjustmentRepository) List(ctx context.Context, tenantID string, filter domain.AdjustmentFilter) ([]*domain.TimeRecordAdjustment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeRecordAdjustmentModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.OriginalRecordID != nil {
		query = query.Where("original_record_id = ?", *filter.OriginalRecordID)
	}
	if filter.RequestedBy != nil {
		query = query.Where("requested_by = ?", *filter.RequestedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInfrastructureError("adjustment_query_failed", "failed to count adjustments", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	var adjustmentModels []models.TimeRecordAdjustmentModel
	err := query.
		Order("requested_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&adjustmentModels).Error
	if err != nil {
		return nil, 0, domain.NewInfrastructureError("adjustment_query_failed", "failed to list adjustments", err)
	}

	adjustments := make([]*domain.TimeRecordAdjustment, len(adjustmentModels))
	for i := range adjustmentModels {
		adjustments[i] = mappers.ToDomainAdjustment(&adjustmentModels[i])
	}
	return adjustments, total, nil
}

// MarkApproved persists the Pending -> Approved transition and mints the
// replacement record in the same transaction. The UPDATE is guarded on
// status = PENDING, so of two concurrent reviewers exactly one wins; the
// loser's transaction rolls back and its allocated NSR (if any) stays
// unused.
func (r *DefaultAdjustmentRepository) MarkApproved(ctx context.Context, adjustment *domain.TimeRecordAdjustment, draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	var minted *domain.TimeRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var decidedBy *string
		if v := adjustment.DecidedBy(); v != "" {
			decidedBy = &v
		}
		result := tx.Model(&models.TimeRecordAdjustmentModel{}).
			Where("tenant_id = ? AND id = ? AND status = ?", adjustment.TenantID(), adjustment.ID(), string(domain.AdjustmentPending)).
			Updates(map[string]interface{}{
				"status":     string(domain.AdjustmentApproved),
				"decided_by": decidedBy,
				"decided_at": adjustment.DecidedAt(),
			})
		if result.Error != nil {
			return domain.NewInfrastructureError("adjustment_update_failed", "failed to approve adjustment", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewBusinessError("adjustment_not_pending", "adjustment is already decided")
		}

		record, err := appendInTx(tx, draft, sign)
		if err != nil {
			return err
		}
		if err := adjustment.AttachAdjustmentRecord(record.ID()); err != nil {
			return err
		}
		result = tx.Model(&models.TimeRecordAdjustmentModel{}).
			Where("tenant_id = ? AND id = ?", adjustment.TenantID(), adjustment.ID()).
			Update("adjustment_record_id", record.ID())
		if result.Error != nil {
			return domain.NewInfrastructureError("adjustment_update_failed", "failed to link replacement record", result.Error)
		}
		minted = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

func (r *DefaultAdjustmentRepository) MarkRejected(ctx context.Context, adjustment *domain.TimeRecordAdjustment) error {
	var decidedBy *string
	if v := adjustment.DecidedBy(); v != "" {
		decidedBy = &v
	}
	result := r.db.WithContext(ctx).Model(&models.TimeRecordAdjustmentModel{}).
		Where("tenant_id = ? AND id = ? AND status = ?", adjustment.TenantID(), adjustment.ID(), string(domain.AdjustmentPending)).
		Updates(map[string]interface{}{
			"status":           string(domain.AdjustmentRejected),
			"decided_by":       decidedBy,
			"decided_at":       adjustment.DecidedAt(),
			"rejection_reason": adjustment.RejectionReason(),
		})
	if result.Error != nil {
		return domain.NewInfrastructureError("adjustment_update_failed", "failed to reject adjustment", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewBusinessError("adjustment_not_pending", "adjustment is already decided")
	}
	return nil
}

func (r *DefaultAdjustmentRepository) CountPendingByTenant(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TenantID string
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.TimeRecordAdjustmentModel{}).
		Select("tenant_id, COUNT(*) AS total").
		Where("status = ?", string(domain.AdjustmentPending)).
		Group("tenant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("adjustment_query_failed", "failed to count pending adjustments", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.TenantID] = r.Total
	}
	return counts, nil
}
