package mappers

import (
	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/models"
)

func ToGORMAdjustment(adjustment *domain.TimeRecordAdjustment) *models.TimeRecordAdjustmentModel {
	model := &models.TimeRecordAdjustmentModel{
		ID:               adjustment.ID(),
		TenantID:         adjustment.TenantID(),
		OriginalRecordID: adjustment.OriginalRecordID(),
		NewRecordedAt:    adjustment.NewRecordedAt(),
		Reason:           adjustment.Reason(),
		Status:           string(adjustment.Status()),
		RequestedBy:      adjustment.RequestedBy(),
		RequestedAt:      adjustment.RequestedAt(),
		RejectionReason:  adjustment.RejectionReason(),
		DecidedAt:        adjustment.DecidedAt(),
	}
	if newType := adjustment.NewType(); newType != nil {
		value := string(*newType)
		model.NewType = &value
	}
	if decidedBy := adjustment.DecidedBy(); decidedBy != "" {
		model.DecidedBy = &decidedBy
	}
	if recordID := adjustment.AdjustmentRecordID(); recordID != "" {
		model.AdjustmentRecordID = &recordID
	}
	return model
}

func ToDomainAdjustment(model *models.TimeRecordAdjustmentModel) *domain.TimeRecordAdjustment {
	params := domain.AdjustmentParams{
		ID:               model.ID,
		TenantID:         model.TenantID,
		OriginalRecordID: model.OriginalRecordID,
		NewRecordedAt:    model.NewRecordedAt,
		Reason:           model.Reason,
		Status:           domain.AdjustmentStatus(model.Status),
		RequestedBy:      model.RequestedBy,
		RequestedAt:      model.RequestedAt,
		DecidedAt:        model.DecidedAt,
		RejectionReason:  model.RejectionReason,
	}
	if model.NewType != nil {
		newType := domain.RecordType(*model.NewType)
		params.NewType = &newType
	}
	if model.DecidedBy != nil {
		params.DecidedBy = *model.DecidedBy
	}
	if model.AdjustmentRecordID != nil {
		params.AdjustmentRecordID = *model.AdjustmentRecordID
	}
	return domain.RestoreTimeRecordAdjustment(params)
}
