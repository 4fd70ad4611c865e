package ledger

import (
	"context"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/kafka"
	"github.com/clockvault/timeclock-service/internal/infrastructure/metrics"
	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
)

type LedgerUsecase interface {
	AppendClockEvent(ctx context.Context, input *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error)
	GetRecord(ctx context.Context, tenantID, recordID string) (*ledgerdto.TimeRecordOutput, error)
	GetLastRecord(ctx context.Context, tenantID, userID string) (*ledgerdto.TimeRecordOutput, error)
	ListUserRecords(ctx context.Context, input *ledgerdto.ListUserRecordsInput) (*ledgerdto.ListRecordsOutput, error)
	ListTenantRecords(ctx context.Context, input *ledgerdto.ListTenantRecordsInput) (*ledgerdto.ListRecordsOutput, error)
	ListPendingRecords(ctx context.Context, tenantID string, page, limit int) (*ledgerdto.ListRecordsOutput, error)
	SetRecordStatus(ctx context.Context, tenantID, recordID string, status domain.RecordStatus) error
	AddRecordNote(ctx context.Context, tenantID, recordID, note string) error
	VerifyRecordIntegrity(ctx context.Context, tenantID, recordID, nationalID string) (bool, error)
}

type Config struct {
	MinInterval time.Duration
	MaxPageSize int
}

type DefaultLedgerUsecase struct {
	recordRepo domain.TimeRecordRepository
	signer     domain.SignatureGenerator
	directory  domain.UserDirectory
	publisher  kafka.Publisher
	metrics    *metrics.LedgerMetrics
	cfg        Config

	now func() time.Time
}

func NewDefaultLedgerUsecase(
	recordRepo domain.TimeRecordRepository,
	signer domain.SignatureGenerator,
	directory domain.UserDirectory,
	publisher kafka.Publisher,
	ledgerMetrics *metrics.LedgerMetrics,
	cfg Config,
) *DefaultLedgerUsecase {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &DefaultLedgerUsecase{
		recordRepo: recordRepo,
		signer:     signer,
		directory:  directory,
		publisher:  publisher,
		metrics:    ledgerMetrics,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (uc *DefaultLedgerUsecase) clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > uc.cfg.MaxPageSize {
		limit = uc.cfg.MaxPageSize
	}
	return page, limit
}
