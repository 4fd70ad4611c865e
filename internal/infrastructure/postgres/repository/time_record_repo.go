package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/mappers"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTimeRecordRepository struct {
	db *gorm.DB
}

func NewDefaultTimeRecordRepository(db *gorm.DB) *DefaultTimeRecordRepository {
	return &DefaultTimeRecordRepository{db: db}
}

// Append allocates the NSR, computes the signature and inserts the record
// in one transaction. With EnforceSequence set it first takes a
// transaction-scoped advisory lock keyed on (tenant, user) and re-checks
// the alternation and minimum-interval guards under that lock, which
// closes the duplicate-tap race between the usecase's read and the insert.
func (r *DefaultTimeRecordRepository) Append(ctx context.Context, draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	var created *domain.TimeRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if draft.EnforceSequence {
			if err := lockUserSequence(tx, draft.TenantID, draft.UserID); err != nil {
				return err
			}
			last, err := lastByUser(tx, draft.TenantID, draft.UserID)
			if err != nil {
				return err
			}
			if err := checkSequenceGuards(last, draft); err != nil {
				return err
			}
		}
		record, err := appendInTx(tx, draft, sign)
		if err != nil {
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func lockUserSequence(tx *gorm.DB, tenantID, userID string) error {
	key := tenantID + ":" + userID
	if err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtextextended(?, 0))`, key).Error; err != nil {
		return fmt.Errorf("acquiring user sequence lock: %w", err)
	}
	return nil
}

func checkSequenceGuards(last *domain.TimeRecord, draft *domain.TimeRecordDraft) error {
	if last == nil {
		return nil
	}
	if last.Type() == draft.Type {
		switch draft.Type {
		case domain.ClockIn:
			return domain.NewBusinessError("already_clocked_in", "already clocked in")
		default:
			return domain.NewBusinessError("already_clocked_out", "already clocked out")
		}
	}
	if draft.MinInterval > 0 && draft.RecordedAt.Sub(last.RecordedAt()) < draft.MinInterval {
		return domain.NewBusinessError("min_interval_not_elapsed", "minimum interval since last record not elapsed")
	}
	return nil
}

func appendInTx(tx *gorm.DB, draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	nsr, err := allocateNextNSR(tx, draft.TenantID)
	if err != nil {
		return nil, domain.NewInfrastructureError("nsr_allocation_failed", "failed to allocate nsr", err)
	}
	hash, err := sign(nsr)
	if err != nil {
		return nil, err
	}
	record, err := domain.NewTimeRecord(domain.TimeRecordParams{
		ID:               draft.ID,
		TenantID:         draft.TenantID,
		UserID:           draft.UserID,
		NSR:              nsr,
		RecordedAt:       draft.RecordedAt,
		Type:             draft.Type,
		SignatureHash:    hash,
		IsAdjustment:     draft.IsAdjustment,
		OriginalRecordID: draft.OriginalRecordID,
		Status:           domain.RecordValid,
		Notes:            draft.Notes,
		Provenance:       draft.Provenance,
	})
	if err != nil {
		return nil, err
	}
	model := mappers.ToGORMTimeRecord(record)
	if err := tx.Create(model).Error; err != nil {
		return nil, domain.NewInfrastructureError("record_insert_failed", "failed to persist time record", err)
	}
	return record, nil
}

func (r *DefaultTimeRecordRepository) GetByID(ctx context.Context, tenantID, recordID string) (*domain.TimeRecord, error) {
	var model models.TimeRecordModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, recordID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("record_not_found", "time record not found")
		}
		return nil, domain.NewInfrastructureError("record_query_failed", "failed to load time record", err)
	}
	return mappers.ToDomainTimeRecord(&model), nil
}

func (r *DefaultTimeRecordRepository) LastByUser(ctx context.Context, tenantID, userID string) (*domain.TimeRecord, error) {
	return lastByUser(r.db.WithContext(ctx), tenantID, userID)
}

func lastByUser(tx *gorm.DB, tenantID, userID string) (*domain.TimeRecord, error) {
	var model models.TimeRecordModel
	err := tx.
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("recorded_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewInfrastructureError("record_query_failed", "failed to load last record", err)
	}
	return mappers.ToDomainTimeRecord(&model), nil
}

func (r *DefaultTimeRecordRepository) ListByUser(ctx context.Context, tenantID, userID string, filter domain.TimeRecordFilter) ([]*domain.TimeRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeRecordModel{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	return listRecords(query, filter)
}

func (r *DefaultTimeRecordRepository) ListByTenant(ctx context.Context, tenantID string, filter domain.TimeRecordFilter) ([]*domain.TimeRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeRecordModel{}).
		Where("tenant_id = ?", tenantID)
	return listRecords(query, filter)
}

func listRecords(query *gorm.DB, filter domain.TimeRecordFilter) ([]*domain.TimeRecord, int64, error) {
	if !filter.From.IsZero() {
		query = query.Where("recorded_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("recorded_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInfrastructureError("record_query_failed", "failed to count records", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	var recordModels []models.TimeRecordModel
	err := query.
		Order("recorded_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&recordModels).Error
	if err != nil {
		return nil, 0, domain.NewInfrastructureError("record_query_failed", "failed to list records", err)
	}

	records := make([]*domain.TimeRecord, len(recordModels))
	for i := range recordModels {
		records[i] = mappers.ToDomainTimeRecord(&recordModels[i])
	}
	return records, total, nil
}

func (r *DefaultTimeRecordRepository) ListPending(ctx context.Context, tenantID string, page, limit int) ([]*domain.TimeRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeRecordModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, string(domain.RecordPending))
	return listRecords(query, domain.TimeRecordFilter{Page: page, Limit: limit})
}

// UpdateStatus and AppendNote are the only UPDATE statements this
// repository issues against time_records.
func (r *DefaultTimeRecordRepository) UpdateStatus(ctx context.Context, tenantID, recordID string, status domain.RecordStatus) error {
	result := r.db.WithContext(ctx).Model(&models.TimeRecordModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, recordID).
		Update("status", string(status))
	if result.Error != nil {
		return domain.NewInfrastructureError("record_update_failed", "failed to update record status", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("record_not_found", "time record not found")
	}
	return nil
}

func (r *DefaultTimeRecordRepository) AppendNote(ctx context.Context, tenantID, recordID, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return domain.NewValidationError("note_required", "note must not be empty")
	}
	result := r.db.WithContext(ctx).Model(&models.TimeRecordModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, recordID).
		Update("notes", gorm.Expr(`CASE WHEN notes = '' THEN ? ELSE notes || E'\n' || ? END`, note, note))
	if result.Error != nil {
		return domain.NewInfrastructureError("record_update_failed", "failed to append note", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("record_not_found", "time record not found")
	}
	return nil
}
