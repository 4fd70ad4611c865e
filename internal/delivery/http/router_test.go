package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clockvault/timeclock-service/internal/delivery/http/handlers"
	"github.com/clockvault/timeclock-service/internal/domain"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
	ledgerdto "github.com/clockvault/timeclock-service/internal/usecase/dto/ledger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedgerUsecase struct {
	appendFn func(ctx context.Context, input *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error)
	getFn    func(ctx context.Context, tenantID, recordID string) (*ledgerdto.TimeRecordOutput, error)
	verifyFn func(ctx context.Context, tenantID, recordID, nationalID string) (bool, error)
}

func (s *stubLedgerUsecase) AppendClockEvent(ctx context.Context, input *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error) {
	return s.appendFn(ctx, input)
}

func (s *stubLedgerUsecase) GetRecord(ctx context.Context, tenantID, recordID string) (*ledgerdto.TimeRecordOutput, error) {
	return s.getFn(ctx, tenantID, recordID)
}

func (s *stubLedgerUsecase) GetLastRecord(context.Context, string, string) (*ledgerdto.TimeRecordOutput, error) {
	return nil, domain.NewNotFoundError("record_not_found", "user has no records")
}

func (s *stubLedgerUsecase) ListUserRecords(context.Context, *ledgerdto.ListUserRecordsInput) (*ledgerdto.ListRecordsOutput, error) {
	return &ledgerdto.ListRecordsOutput{}, nil
}

func (s *stubLedgerUsecase) ListTenantRecords(context.Context, *ledgerdto.ListTenantRecordsInput) (*ledgerdto.ListRecordsOutput, error) {
	return &ledgerdto.ListRecordsOutput{}, nil
}

func (s *stubLedgerUsecase) ListPendingRecords(context.Context, string, int, int) (*ledgerdto.ListRecordsOutput, error) {
	return &ledgerdto.ListRecordsOutput{}, nil
}

func (s *stubLedgerUsecase) SetRecordStatus(context.Context, string, string, domain.RecordStatus) error {
	return nil
}

func (s *stubLedgerUsecase) AddRecordNote(context.Context, string, string, string) error {
	return nil
}

func (s *stubLedgerUsecase) VerifyRecordIntegrity(ctx context.Context, tenantID, recordID, nationalID string) (bool, error) {
	return s.verifyFn(ctx, tenantID, recordID, nationalID)
}

type stubAdjustmentUsecase struct{}

func (s *stubAdjustmentUsecase) RequestAdjustment(context.Context, *adjustmentdto.RequestAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	return &adjustmentdto.AdjustmentOutput{}, nil
}

func (s *stubAdjustmentUsecase) ApproveAdjustment(context.Context, *adjustmentdto.ApproveAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	return &adjustmentdto.AdjustmentOutput{}, nil
}

func (s *stubAdjustmentUsecase) RejectAdjustment(context.Context, *adjustmentdto.RejectAdjustmentInput) (*adjustmentdto.AdjustmentOutput, error) {
	return &adjustmentdto.AdjustmentOutput{}, nil
}

func (s *stubAdjustmentUsecase) GetAdjustment(context.Context, string, string) (*adjustmentdto.AdjustmentOutput, error) {
	return nil, domain.NewNotFoundError("adjustment_not_found", "adjustment not found")
}

func (s *stubAdjustmentUsecase) ListAdjustments(context.Context, *adjustmentdto.ListAdjustmentsInput) (*adjustmentdto.ListAdjustmentsOutput, error) {
	return &adjustmentdto.ListAdjustmentsOutput{}, nil
}

func newTestRouter(stub *stubLedgerUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(handlers.NewLedgerHandler(stub), handlers.NewAdjustmentHandler(&stubAdjustmentUsecase{}))
}

func TestTenantHeaderRequired(t *testing.T) {
	router := newTestRouter(&stubLedgerUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/v1/clock-events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant_required")
}

func TestAppendClockEventEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubLedgerUsecase{
			appendFn: func(_ context.Context, input *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error) {
				assert.Equal(t, "acme", input.TenantID)
				assert.Equal(t, "emp-1", input.UserID)
				return &ledgerdto.TimeRecordOutput{
					ID:         "rec-1",
					TenantID:   input.TenantID,
					UserID:     input.UserID,
					NSR:        7,
					RecordedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
					Type:       input.Type,
					Status:     domain.RecordValid,
				}, nil
			},
		}
		router := newTestRouter(stub)

		body := `{"user_id":"emp-1","type":"CLOCK_IN"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/clock-events", strings.NewReader(body))
		req.Header.Set("X-Tenant-ID", "acme")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var response map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "rec-1", response["id"])
		assert.Equal(t, float64(7), response["nsr"])
	})

	t.Run("business rejection maps to 422", func(t *testing.T) {
		stub := &stubLedgerUsecase{
			appendFn: func(context.Context, *ledgerdto.AppendClockEventInput) (*ledgerdto.TimeRecordOutput, error) {
				return nil, domain.NewBusinessError("already_clocked_in", "already clocked in")
			},
		}
		router := newTestRouter(stub)

		req := httptest.NewRequest(http.MethodPost, "/v1/clock-events", strings.NewReader(`{"user_id":"emp-1","type":"CLOCK_IN"}`))
		req.Header.Set("X-Tenant-ID", "acme")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "already_clocked_in")
	})

	t.Run("missing body fields map to 400", func(t *testing.T) {
		router := newTestRouter(&stubLedgerUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/v1/clock-events", strings.NewReader(`{"user_id":"emp-1"}`))
		req.Header.Set("X-Tenant-ID", "acme")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecordEndpoints(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		stub := &stubLedgerUsecase{
			getFn: func(context.Context, string, string) (*ledgerdto.TimeRecordOutput, error) {
				return nil, domain.NewNotFoundError("record_not_found", "record not found")
			},
		}
		router := newTestRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/v1/records/missing", nil)
		req.Header.Set("X-Tenant-ID", "acme")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("verify", func(t *testing.T) {
		stub := &stubLedgerUsecase{
			verifyFn: func(_ context.Context, tenantID, recordID, nationalID string) (bool, error) {
				assert.Equal(t, "acme", tenantID)
				assert.Equal(t, "12345678900", nationalID)
				return true, nil
			},
		}
		router := newTestRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/v1/records/rec-1/verify?national_id=12345678900", nil)
		req.Header.Set("X-Tenant-ID", "acme")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var response map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, true, response["valid"])
		assert.Equal(t, "rec-1", response["record_id"])
	})
}
