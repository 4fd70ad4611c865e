package ledger

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/kafka"
	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
	"github.com/google/uuid"
)

// AppendClockEvent runs the full clock-in/out path: directory checks,
// sequence guards, then the atomic allocate-sign-insert in the repository.
// The fast checks here give early rejections; the repository re-checks the
// sequence guards under the per-user lock, which is the authoritative word.
func (uc *DefaultLedgerUsecase) AppendClockEvent(ctx context.Context, input *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error) {
	switch {
	case input.TenantID == "":
		return nil, domain.NewValidationError("tenant_required", "tenant id is required")
	case input.UserID == "":
		return nil, domain.NewValidationError("user_required", "user id is required")
	case !input.Type.Valid():
		return nil, domain.NewValidationError("record_type_invalid", "record type must be CLOCK_IN or CLOCK_OUT")
	}

	start := uc.now()

	user, err := uc.directory.GetUser(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		uc.countRejection(input.TenantID, "user_inactive")
		return nil, domain.NewBusinessError("user_inactive", "user is not active")
	}

	if input.DeviceID != "" {
		authorized, err := uc.directory.IsDeviceAuthorized(ctx, input.TenantID, input.UserID, input.DeviceID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			uc.countRejection(input.TenantID, "device_not_authorized")
			return nil, domain.NewBusinessError("device_not_authorized", "device is not authorized for this user")
		}
	}

	recordedAt := uc.now()

	last, err := uc.recordRepo.LastByUser(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		if last.Type() == input.Type {
			code := "already_clocked_out"
			message := "already clocked out"
			if input.Type == domain.ClockIn {
				code, message = "already_clocked_in", "already clocked in"
			}
			uc.countRejection(input.TenantID, code)
			return nil, domain.NewBusinessError(code, message)
		}
		if uc.cfg.MinInterval > 0 && recordedAt.Sub(last.RecordedAt()) < uc.cfg.MinInterval {
			uc.countRejection(input.TenantID, "min_interval_not_elapsed")
			return nil, domain.NewBusinessError("min_interval_not_elapsed", "minimum interval since last record not elapsed")
		}
	}

	draft := &domain.TimeRecordDraft{
		ID:         uuid.NewString(),
		TenantID:   input.TenantID,
		UserID:     input.UserID,
		RecordedAt: recordedAt,
		Type:       input.Type,
		Provenance: domain.Provenance{
			Location:  input.Location,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
			DeviceID:  input.DeviceID,
		},
		Notes:           input.Notes,
		EnforceSequence: true,
		MinInterval:     uc.cfg.MinInterval,
	}

	record, err := uc.recordRepo.Append(ctx, draft, uc.signFunc(input.TenantID, input.UserID, user.NationalID, recordedAt, input.Type))
	if err != nil {
		if domain.KindOf(err) == domain.KindBusiness {
			uc.countRejection(input.TenantID, domain.CodeOf(err))
		}
		return nil, err
	}

	uc.observeAppend(record, start)
	uc.publishRecordEvent(record)

	return ledgerdto.FromDomainRecord(record), nil
}

func (uc *DefaultLedgerUsecase) signFunc(tenantID, userID, nationalID string, recordedAt time.Time, recordType domain.RecordType) domain.SignFunc {
	return func(nsr int64) (string, error) {
		return uc.signer.Hash(nsr, tenantID, userID, nationalID, recordedAt, recordType)
	}
}

func (uc *DefaultLedgerUsecase) countRejection(tenantID, reason string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordsRejectedTotal.WithLabelValues(tenantID, reason).Inc()
}

func (uc *DefaultLedgerUsecase) observeAppend(record *domain.TimeRecord, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordsCreatedTotal.WithLabelValues(
		record.TenantID(),
		string(record.Type()),
		strconv.FormatBool(record.IsAdjustment()),
	).Inc()
	uc.metrics.AppendDuration.WithLabelValues(record.TenantID()).Observe(uc.now().Sub(start).Seconds())
}

// publishRecordEvent is non-critical: the record is already durable, so a
// broker hiccup is logged and never surfaced to the caller.
func (uc *DefaultLedgerUsecase) publishRecordEvent(record *domain.TimeRecord) {
	if uc.publisher == nil {
		return
	}
	event := kafka.LedgerEvent{
		RecordID:         record.ID(),
		TenantID:         record.TenantID(),
		UserID:           record.UserID(),
		NSR:              record.NSR(),
		Type:             string(record.Type()),
		Status:           string(record.Status()),
		IsAdjustment:     record.IsAdjustment(),
		OriginalRecordID: record.OriginalRecordID(),
		RecordedAt:       record.RecordedAt(),
	}
	go func(event kafka.LedgerEvent) {
		if err := uc.publisher.PublishLedgerEvent(event); err != nil {
			slog.Error("failed to publish ledger event", "record_id", event.RecordID, "error", err.Error())
		}
	}(event)
}
