package adjustment

import (
	"context"
	"log/slog"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/kafka"
	"github.com/clockvault/timeclock-service/internal/infrastructure/metrics"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
	"github.com/jaevor/go-nanoid"
)

type AdjustmentUsecase interface {
	RequestAdjustment(ctx context.Context, input *adjustmentdto.RequestAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error)
	ApproveAdjustment(ctx context.Context, input *adjustmentdto.ApproveAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error)
	RejectAdjustment(ctx context.Context, input *adjustmentdto.RejectAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error)
	GetAdjustment(ctx context.Context, tenantID, adjustmentID string) (*adjustmentdto.AdjustmentOutput, error)
	ListAdjustments(ctx context.Context, input *adjustmentdto.ListAdjustmentsInput) (*adjustmentdto.ListAdjustmentsOutput, error)
}

type Config struct {
	MinReasonLength int
	MaxPageSize     int
}

type DefaultAdjustmentUsecase struct {
	adjustmentRepo domain.AdjustmentRepository
	recordRepo     domain.TimeRecordRepository
	signer         domain.SignatureGenerator
	directory      domain.UserDirectory
	publisher      kafka.Publisher
	metrics        *metrics.LedgerMetrics
	cfg            Config

	newID func() string
	now   func() time.Time
}

func NewDefaultAdjustmentUsecase(
	adjustmentRepo domain.AdjustmentRepository,
	recordRepo domain.TimeRecordRepository,
	signer domain.SignatureGenerator,
	directory domain.UserDirectory,
	publisher kafka.Publisher,
	ledgerMetrics *metrics.LedgerMetrics,
	cfg Config,
) (*DefaultAdjustmentUsecase, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	if cfg.MinReasonLength < domain.MinAdjustmentReasonLength {
		cfg.MinReasonLength = domain.MinAdjustmentReasonLength
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &DefaultAdjustmentUsecase{
		adjustmentRepo: adjustmentRepo,
		recordRepo:     recordRepo,
		signer:         signer,
		directory:      directory,
		publisher:      publisher,
		metrics:        ledgerMetrics,
		cfg:            cfg,
		newID:          idGenerator,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// publishAdjustmentEvent is non-critical, same policy as ledger events.
func (uc *DefaultAdjustmentUsecase) publishAdjustmentEvent(adjustment *domain.TimeRecordAdjustment) {
	if uc.publisher == nil {
		return
	}
	event := kafka.AdjustmentEvent{
		AdjustmentID:       adjustment.ID(),
		TenantID:           adjustment.TenantID(),
		OriginalRecordID:   adjustment.OriginalRecordID(),
		Status:             string(adjustment.Status()),
		Reason:             adjustment.Reason(),
		RequestedBy:        adjustment.RequestedBy(),
		DecidedBy:          adjustment.DecidedBy(),
		AdjustmentRecordID: adjustment.AdjustmentRecordID(),
	}
	go func(event kafka.AdjustmentEvent) {
		if err := uc.publisher.PublishAdjustmentEvent(event); err != nil {
			slog.Error("failed to publish adjustment event", "adjustment_id", event.AdjustmentID, "error", err.Error())
		}
	}(event)
}

func (uc *DefaultAdjustmentUsecase) countDecision(tenantID string, status domain.AdjustmentStatus) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.AdjustmentsDecidedTotal.WithLabelValues(tenantID, string(status)).Inc()
}
