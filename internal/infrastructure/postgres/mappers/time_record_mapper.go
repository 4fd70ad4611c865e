package mappers

import (
	"strings"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/models"
)

const noteSeparator = "\n"

func ToGORMTimeRecord(record *domain.TimeRecord) *models.TimeRecordModel {
	model := &models.TimeRecordModel{
		ID:            record.ID(),
		TenantID:      record.TenantID(),
		UserID:        record.UserID(),
		NSR:           record.NSR(),
		RecordedAt:    record.RecordedAt(),
		Type:          string(record.Type()),
		SignatureHash: record.SignatureHash(),
		IsAdjustment:  record.IsAdjustment(),
		Status:        string(record.Status()),
		Notes:         strings.Join(record.Notes(), noteSeparator),
		IPAddress:     record.Provenance().IPAddress,
		UserAgent:     record.Provenance().UserAgent,
		DeviceID:      record.Provenance().DeviceID,
		CreatedAt:     record.CreatedAt(),
	}
	if original := record.OriginalRecordID(); original != "" {
		model.OriginalRecordID = &original
	}
	if loc := record.Provenance().Location; loc != nil {
		lat, lon := loc.Latitude, loc.Longitude
		model.Latitude = &lat
		model.Longitude = &lon
	}
	return model
}

func ToDomainTimeRecord(model *models.TimeRecordModel) *domain.TimeRecord {
	provenance := domain.Provenance{
		IPAddress: model.IPAddress,
		UserAgent: model.UserAgent,
		DeviceID:  model.DeviceID,
	}
	if model.Latitude != nil && model.Longitude != nil {
		provenance.Location = &domain.Location{
			Latitude:  *model.Latitude,
			Longitude: *model.Longitude,
		}
	}
	var originalRecordID string
	if model.OriginalRecordID != nil {
		originalRecordID = *model.OriginalRecordID
	}
	var notes []string
	if model.Notes != "" {
		notes = strings.Split(model.Notes, noteSeparator)
	}
	return domain.RestoreTimeRecord(domain.TimeRecordParams{
		ID:               model.ID,
		TenantID:         model.TenantID,
		UserID:           model.UserID,
		NSR:              model.NSR,
		RecordedAt:       model.RecordedAt,
		Type:             domain.RecordType(model.Type),
		SignatureHash:    model.SignatureHash,
		IsAdjustment:     model.IsAdjustment,
		OriginalRecordID: originalRecordID,
		Status:           domain.RecordStatus(model.Status),
		Notes:            notes,
		Provenance:       provenance,
		CreatedAt:        model.CreatedAt,
	})
}
