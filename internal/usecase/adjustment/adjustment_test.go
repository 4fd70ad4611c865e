package adjustment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/clockvault/timeclock-service/internal/infrastructure/signature"
	adjustmentdto "github.com/clockvault/timeclock-service/internal/usecase/dto/adjustment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerStore backs both fake repositories so approval minting draws NSRs
// from the same per-tenant sequence as ordinary appends.
type ledgerStore struct {
	mu       sync.Mutex
	counters map[string]int64
	records  []*domain.TimeRecord
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{counters: make(map[string]int64)}
}

func (s *ledgerStore) mint(draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nsr := s.counters[draft.TenantID] + 1
	s.counters[draft.TenantID] = nsr
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
		Notes:            draft.Notes,
		Provenance:       draft.Provenance,
	})
	if err != nil {
		return nil, err
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *ledgerStore) get(tenantID, recordID string) *domain.TimeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.TenantID() == tenantID && record.ID() == recordID {
			return record
		}
	}
	return nil
}

func (s *ledgerStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeRecordRepo struct {
	store *ledgerStore
}

func (r *fakeRecordRepo) Append(_ context.Context, draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	return r.store.mint(draft, sign)
}

func (r *fakeRecordRepo) GetByID(_ context.Context, tenantID, recordID string) (*domain.TimeRecord, error) {
	if record := r.store.get(tenantID, recordID); record != nil {
		return record, nil
	}
	return nil, domain.NewNotFoundError("record_not_found", "record not found")
}

func (r *fakeRecordRepo) LastByUser(context.Context, string, string) (*domain.TimeRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) ListByUser(context.Context, string, string, domain.TimeRecordFilter) ([]*domain.TimeRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) ListByTenant(context.Context, string, domain.TimeRecordFilter) ([]*domain.TimeRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) ListPending(context.Context, string, int, int) ([]*domain.TimeRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) UpdateStatus(context.Context, string, string, domain.RecordStatus) error {
	return nil
}

func (r *fakeRecordRepo) AppendNote(context.Context, string, string, string) error {
	return nil
}

// fakeAdjustmentRepo stores snapshots and rehydrates copies on read, the
// way the postgres repository does, so decision guards run against the
// stored status rather than the caller's in-memory entity.
type fakeAdjustmentRepo struct {
	mu          sync.Mutex
	store       *ledgerStore
	adjustments map[string]domain.AdjustmentParams
}

func newFakeAdjustmentRepo(store *ledgerStore) *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{store: store, adjustments: make(map[string]domain.AdjustmentParams)}
}

func snapshot(a *domain.TimeRecordAdjustment) domain.AdjustmentParams {
	return domain.AdjustmentParams{
		ID:                 a.ID(),
		TenantID:           a.TenantID(),
		OriginalRecordID:   a.OriginalRecordID(),
		NewRecordedAt:      a.NewRecordedAt(),
		NewType:            a.NewType(),
		Reason:             a.Reason(),
		Status:             a.Status(),
		RequestedBy:        a.RequestedBy(),
		RequestedAt:        a.RequestedAt(),
		DecidedBy:          a.DecidedBy(),
		DecidedAt:          a.DecidedAt(),
		RejectionReason:    a.RejectionReason(),
		AdjustmentRecordID: a.AdjustmentRecordID(),
	}
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, adjustment *domain.TimeRecordAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.adjustments {
		if existing.TenantID == adjustment.TenantID() &&
			existing.OriginalRecordID == adjustment.OriginalRecordID() &&
			existing.Status == domain.AdjustmentPending {
			return domain.NewBusinessError("pending_adjustment_exists", "a pending adjustment already exists for this record")
		}
	}
	r.adjustments[adjustment.TenantID()+"/"+adjustment.ID()] = snapshot(adjustment)
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(_ context.Context, tenantID, adjustmentID string) (*domain.TimeRecordAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	params, ok := r.adjustments[tenantID+"/"+adjustmentID]
	if !ok {
		return nil, domain.NewNotFoundError("adjustment_not_found", "adjustment not found")
	}
	return domain.RestoreTimeRecordAdjustment(params), nil
}

func (r *fakeAdjustmentRepo) HasPendingForRecord(_ context.Context, tenantID, originalRecordID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.adjustments {
		if existing.TenantID == tenantID &&
			existing.OriginalRecordID == originalRecordID &&
			existing.Status == domain.AdjustmentPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdjustmentRepo) List(_ context.Context, tenantID string, filter domain.AdjustmentFilter) ([]*domain.TimeRecordAdjustment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.TimeRecordAdjustment
	for _, params := range r.adjustments {
		if params.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && params.Status != *filter.Status {
			continue
		}
		if filter.OriginalRecordID != nil && params.OriginalRecordID != *filter.OriginalRecordID {
			continue
		}
		if filter.RequestedBy != nil && params.RequestedBy != *filter.RequestedBy {
			continue
		}
		matched = append(matched, domain.RestoreTimeRecordAdjustment(params))
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeAdjustmentRepo) MarkApproved(_ context.Context, adjustment *domain.TimeRecordAdjustment, draft *domain.TimeRecordDraft, sign domain.SignFunc) (*domain.TimeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := adjustment.TenantID() + "/" + adjustment.ID()
	stored, ok := r.adjustments[key]
	if !ok {
		return nil, domain.NewNotFoundError("adjustment_not_found", "adjustment not found")
	}
	if stored.Status != domain.AdjustmentPending {
		return nil, domain.NewBusinessError("adjustment_not_pending", "adjustment is already decided")
	}
	record, err := r.store.mint(draft, sign)
	if err != nil {
		return nil, err
	}
	if err := adjustment.AttachAdjustmentRecord(record.ID()); err != nil {
		return nil, err
	}
	r.adjustments[key] = snapshot(adjustment)
	return record, nil
}

func (r *fakeAdjustmentRepo) MarkRejected(_ context.Context, adjustment *domain.TimeRecordAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := adjustment.TenantID() + "/" + adjustment.ID()
	stored, ok := r.adjustments[key]
	if !ok {
		return domain.NewNotFoundError("adjustment_not_found", "adjustment not found")
	}
	if stored.Status != domain.AdjustmentPending {
		return domain.NewBusinessError("adjustment_not_pending", "adjustment is already decided")
	}
	r.adjustments[key] = snapshot(adjustment)
	return nil
}

func (r *fakeAdjustmentRepo) CountPendingByTenant(context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, params := range r.adjustments {
		if params.Status == domain.AdjustmentPending {
			counts[params.TenantID]++
		}
	}
	return counts, nil
}

type fakeDirectory struct {
	users map[string]*domain.UserProfile
}

func (d *fakeDirectory) GetUser(_ context.Context, tenantID, userID string) (*domain.UserProfile, error) {
	user, ok := d.users[tenantID+"/"+userID]
	if !ok {
		return nil, domain.NewNotFoundError("user_not_found", "user not found")
	}
	return user, nil
}

func (d *fakeDirectory) IsDeviceAuthorized(context.Context, string, string, string) (bool, error) {
	return true, nil
}

type fixture struct {
	uc       *DefaultAdjustmentUsecase
	store    *ledgerStore
	adjRepo  *fakeAdjustmentRepo
	signer   domain.SignatureGenerator
	original *domain.TimeRecord
}

const ownerNationalID = "12345678900"

// newFixture seeds one valid clock-in for emp-1 in tenant acme, recorded
// well before the fixed decision clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newLedgerStore()
	adjRepo := newFakeAdjustmentRepo(store)
	signer := signature.NewSHA256Generator()
	directory := &fakeDirectory{users: map[string]*domain.UserProfile{
		"acme/emp-1": {ID: "emp-1", TenantID: "acme", Active: true, NationalID: ownerNationalID},
	}}

	uc, err := NewDefaultAdjustmentUsecase(adjRepo, &fakeRecordRepo{store: store}, signer, directory, nil, nil, Config{
		MinReasonLength: 10,
		MaxPageSize:     50,
	})
	require.NoError(t, err)
	uc.now = func() time.Time { return time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC) }

	recordedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	original, err := store.mint(&domain.TimeRecordDraft{
		ID:         uuid.NewString(),
		TenantID:   "acme",
		UserID:     "emp-1",
		RecordedAt: recordedAt,
		Type:       domain.ClockIn,
	}, func(nsr int64) (string, error) {
		return signer.Hash(nsr, "acme", "emp-1", ownerNationalID, recordedAt, domain.ClockIn)
	})
	require.NoError(t, err)

	return &fixture{uc: uc, store: store, adjRepo: adjRepo, signer: signer, original: original}
}

func (f *fixture) request(t *testing.T) *adjustmentdto.AdjustmentOutput {
	t.Helper()
	out, err := f.uc.RequestAdjustment(context.Background(), &adjustmentdto.RequestAdjustmentInput{
		TenantID:         "acme",
		OriginalRecordID: f.original.ID(),
		NewRecordedAt:    time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
		Reason:           "badge reader was offline, arrived half an hour earlier",
		RequestedBy:      "emp-1",
	})
	require.NoError(t, err)
	return out
}

func TestRequestAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("opens pending", func(t *testing.T) {
		f := newFixture(t)
		out := f.request(t)
		assert.NotEmpty(t, out.ID)
		assert.Equal(t, domain.AdjustmentPending, out.Status)
		assert.Equal(t, f.original.ID(), out.OriginalRecordID)
		assert.Empty(t, out.AdjustmentRecordID)
		assert.Equal(t, 1, f.store.count(), "requesting must not touch the ledger")
	})

	t.Run("one pending per record", func(t *testing.T) {
		f := newFixture(t)
		f.request(t)
		_, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: f.original.ID(),
			NewRecordedAt:    time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
			Reason:           "actually arrived even earlier than claimed",
			RequestedBy:      "emp-1",
		})
		assert.Equal(t, "pending_adjustment_exists", domain.CodeOf(err))
	})

	t.Run("only the owner may request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: f.original.ID(),
			NewRecordedAt:    time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
			Reason:           "correcting a colleague's clock-in time",
			RequestedBy:      "emp-2",
		})
		assert.Equal(t, "not_record_owner", domain.CodeOf(err))
	})

	t.Run("reason too short", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: f.original.ID(),
			NewRecordedAt:    time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
			Reason:           "typo",
			RequestedBy:      "emp-1",
		})
		assert.Equal(t, "reason_too_short", domain.CodeOf(err))
	})

	t.Run("future corrected timestamp", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: f.original.ID(),
			NewRecordedAt:    time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC),
			Reason:           "clock drift made me clock in tomorrow",
			RequestedBy:      "emp-1",
		})
		assert.Equal(t, "new_recorded_at_future", domain.CodeOf(err))
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: "missing",
			NewRecordedAt:    time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
			Reason:           "reference to a record that never was",
			RequestedBy:      "emp-1",
		})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestApproveAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a linked replacement record", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		out, err := f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID:     "acme",
			AdjustmentID: requested.ID,
			ApprovedBy:   "manager-1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AdjustmentApproved, out.Status)
		assert.Equal(t, "manager-1", out.DecidedBy)
		require.NotEmpty(t, out.AdjustmentRecordID)

		minted := f.store.get("acme", out.AdjustmentRecordID)
		require.NotNil(t, minted)
		assert.True(t, minted.IsAdjustment())
		assert.Equal(t, f.original.ID(), minted.OriginalRecordID())
		assert.Equal(t, int64(2), minted.NSR(), "replacement takes the next NSR, never reuses one")
		assert.Equal(t, time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC), minted.RecordedAt())
		assert.Equal(t, f.original.Type(), minted.Type(), "type unchanged when the request does not override it")

		valid, err := f.signer.Validate(minted, ownerNationalID)
		require.NoError(t, err)
		assert.True(t, valid, "replacement carries its own signature over the corrected values")

		// The original is untouched apart from the link living on the
		// adjustment side.
		untouched := f.store.get("acme", f.original.ID())
		assert.Equal(t, f.original.SignatureHash(), untouched.SignatureHash())
		assert.Equal(t, domain.RecordValid, untouched.Status())
	})

	t.Run("type override", func(t *testing.T) {
		f := newFixture(t)
		newType := domain.ClockOut
		requested, err := f.uc.RequestAdjustment(ctx, &adjustmentdto.RequestAdjustmentInput{
			TenantID:         "acme",
			OriginalRecordID: f.original.ID(),
			NewRecordedAt:    time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC),
			NewType:          &newType,
			Reason:           "pressed clock-in when leaving the site",
			RequestedBy:      "emp-1",
		})
		require.NoError(t, err)

		out, err := f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID:     "acme",
			AdjustmentID: requested.ID,
			ApprovedBy:   "manager-1",
		})
		require.NoError(t, err)
		minted := f.store.get("acme", out.AdjustmentRecordID)
		require.NotNil(t, minted)
		assert.Equal(t, domain.ClockOut, minted.Type())
	})

	t.Run("self approval forbidden", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		_, err := f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID:     "acme",
			AdjustmentID: requested.ID,
			ApprovedBy:   "emp-1",
		})
		assert.Equal(t, "self_approval_forbidden", domain.CodeOf(err))

		stored, err := f.uc.GetAdjustment(ctx, "acme", requested.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AdjustmentPending, stored.Status)
		assert.Equal(t, 1, f.store.count())
	})

	t.Run("already decided", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		_, err := f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID: "acme", AdjustmentID: requested.ID, ApprovedBy: "manager-1",
		})
		require.NoError(t, err)

		_, err = f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID: "acme", AdjustmentID: requested.ID, ApprovedBy: "manager-2",
		})
		assert.Equal(t, "adjustment_not_pending", domain.CodeOf(err))
		assert.Equal(t, 2, f.store.count(), "a decided adjustment never mints twice")
	})
}

func TestRejectAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("terminal, no record minted", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		out, err := f.uc.RejectAdjustment(ctx, &adjustmentdto.RejectAdjustmentInput{
			TenantID:        "acme",
			AdjustmentID:    requested.ID,
			RejectedBy:      "manager-1",
			RejectionReason: "gate logs show arrival at the recorded time",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AdjustmentRejected, out.Status)
		assert.Equal(t, "gate logs show arrival at the recorded time", out.RejectionReason)
		assert.Empty(t, out.AdjustmentRecordID)
		assert.Equal(t, 1, f.store.count())

		_, err = f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
			TenantID: "acme", AdjustmentID: requested.ID, ApprovedBy: "manager-2",
		})
		assert.Equal(t, "adjustment_not_pending", domain.CodeOf(err))
	})

	t.Run("reason required", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		_, err := f.uc.RejectAdjustment(ctx, &adjustmentdto.RejectAdjustmentInput{
			TenantID:     "acme",
			AdjustmentID: requested.ID,
			RejectedBy:   "manager-1",
		})
		assert.Equal(t, "rejection_reason_required", domain.CodeOf(err))
	})

	t.Run("rejection frees the record for a new request", func(t *testing.T) {
		f := newFixture(t)
		requested := f.request(t)

		_, err := f.uc.RejectAdjustment(ctx, &adjustmentdto.RejectAdjustmentInput{
			TenantID:        "acme",
			AdjustmentID:    requested.ID,
			RejectedBy:      "manager-1",
			RejectionReason: "insufficient detail, resubmit with the gate number",
		})
		require.NoError(t, err)

		second := f.request(t)
		assert.NotEqual(t, requested.ID, second.ID)
		assert.Equal(t, domain.AdjustmentPending, second.Status)
	})
}

func TestListAdjustments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	requested := f.request(t)
	_, err := f.uc.ApproveAdjustment(ctx, &adjustmentdto.ApproveAdjustmentInput{
		TenantID: "acme", AdjustmentID: requested.ID, ApprovedBy: "manager-1",
	})
	require.NoError(t, err)

	approved := domain.AdjustmentApproved
	list, err := f.uc.ListAdjustments(ctx, &adjustmentdto.ListAdjustmentsInput{
		TenantID: "acme",
		Status:   &approved,
	})
	require.NoError(t, err)
	require.Len(t, list.Adjustments, 1)
	assert.Equal(t, requested.ID, list.Adjustments[0].ID)
	assert.Equal(t, int64(1), list.Pagination.TotalItems)

	pending := domain.AdjustmentPending
	list, err = f.uc.ListAdjustments(ctx, &adjustmentdto.ListAdjustmentsInput{
		TenantID: "acme",
		Status:   &pending,
	})
	require.NoError(t, err)
	assert.Empty(t, list.Adjustments)

	counts, err := f.adjRepo.CountPendingByTenant(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts["acme"])
}
