package domain

import (
	"context"
	"strings"
	"time"
)

type RecordType string

const (
	ClockIn  RecordType = "CLOCK_IN"
	ClockOut RecordType = "CLOCK_OUT"
)

func (t RecordType) Valid() bool {
	return t == ClockIn || t == ClockOut
}

type RecordStatus string

const (
	RecordValid    RecordStatus = "VALID"
	RecordPending  RecordStatus = "PENDING"
	RecordRejected RecordStatus = "REJECTED"
)

func (s RecordStatus) Valid() bool {
	return s == RecordValid || s == RecordPending || s == RecordRejected
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// Provenance is optional capture metadata attached at clock time.
type Provenance struct {
	Location  *Location
	IPAddress string
	UserAgent string
	DeviceID  string
}

// TimeRecord is one immutable clock event. Every field except status and
// the append-only notes is fixed at construction; the type intentionally
// exposes no setters for nsr, recordedAt, type or signatureHash.
type TimeRecord struct {
	id               string
	tenantID         string
	userID           string
	nsr              int64
	recordedAt       time.Time
	recordType       RecordType
	signatureHash    string
	isAdjustment     bool
	originalRecordID string
	status           RecordStatus
	notes            []string
	provenance       Provenance
	createdAt        time.Time
}

type TimeRecordParams struct {
	ID               string
	TenantID         string
	UserID           string
	NSR              int64
	RecordedAt       time.Time
	Type             RecordType
	SignatureHash    string
	IsAdjustment     bool
	OriginalRecordID string
	Status           RecordStatus
	Notes            []string
	Provenance       Provenance
	CreatedAt        time.Time
}

func NewTimeRecord(p TimeRecordParams) (*TimeRecord, error) {
	switch {
	case p.ID == "":
		return nil, NewValidationError("record_id_required", "record id is required")
	case p.TenantID == "":
		return nil, NewValidationError("tenant_required", "tenant id is required")
	case p.UserID == "":
		return nil, NewValidationError("user_required", "user id is required")
	case p.NSR < 1:
		return nil, NewValidationError("nsr_invalid", "nsr must be >= 1")
	case !p.Type.Valid():
		return nil, NewValidationError("record_type_invalid", "record type must be CLOCK_IN or CLOCK_OUT")
	case p.SignatureHash == "":
		return nil, NewValidationError("signature_required", "signature hash is required")
	case p.RecordedAt.IsZero():
		return nil, NewValidationError("recorded_at_required", "recordedAt is required")
	case p.IsAdjustment && p.OriginalRecordID == "":
		return nil, NewValidationError("original_record_required", "adjustment records must reference the original record")
	case !p.IsAdjustment && p.OriginalRecordID != "":
		return nil, NewValidationError("original_record_forbidden", "only adjustment records may reference an original record")
	}
	status := p.Status
	if status == "" {
		status = RecordValid
	}
	if !status.Valid() {
		return nil, NewValidationError("record_status_invalid", "unknown record status")
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &TimeRecord{
		id:               p.ID,
		tenantID:         p.TenantID,
		userID:           p.UserID,
		nsr:              p.NSR,
		recordedAt:       p.RecordedAt.UTC(),
		recordType:       p.Type,
		signatureHash:    p.SignatureHash,
		isAdjustment:     p.IsAdjustment,
		originalRecordID: p.OriginalRecordID,
		status:           status,
		notes:            append([]string(nil), p.Notes...),
		provenance:       p.Provenance,
		createdAt:        createdAt.UTC(),
	}, nil
}

// RestoreTimeRecord rehydrates a persisted record. It trusts storage and
// performs no validation; it is not a second creation path.
func RestoreTimeRecord(p TimeRecordParams) *TimeRecord {
	return &TimeRecord{
		id:               p.ID,
		tenantID:         p.TenantID,
		userID:           p.UserID,
		nsr:              p.NSR,
		recordedAt:       p.RecordedAt.UTC(),
		recordType:       p.Type,
		signatureHash:    p.SignatureHash,
		isAdjustment:     p.IsAdjustment,
		originalRecordID: p.OriginalRecordID,
		status:           p.Status,
		notes:            append([]string(nil), p.Notes...),
		provenance:       p.Provenance,
		createdAt:        p.CreatedAt.UTC(),
	}
}

func (r *TimeRecord) ID() string                { return r.id }
func (r *TimeRecord) TenantID() string          { return r.tenantID }
func (r *TimeRecord) UserID() string            { return r.userID }
func (r *TimeRecord) NSR() int64                { return r.nsr }
func (r *TimeRecord) RecordedAt() time.Time     { return r.recordedAt }
func (r *TimeRecord) Type() RecordType          { return r.recordType }
func (r *TimeRecord) SignatureHash() string     { return r.signatureHash }
func (r *TimeRecord) IsAdjustment() bool        { return r.isAdjustment }
func (r *TimeRecord) OriginalRecordID() string  { return r.originalRecordID }
func (r *TimeRecord) Status() RecordStatus      { return r.status }
func (r *TimeRecord) Provenance() Provenance    { return r.provenance }
func (r *TimeRecord) CreatedAt() time.Time      { return r.createdAt }

func (r *TimeRecord) Notes() []string {
	return append([]string(nil), r.notes...)
}

// SetStatus is one of the two sanctioned mutations on a persisted record.
func (r *TimeRecord) SetStatus(status RecordStatus) error {
	if !status.Valid() {
		return NewValidationError("record_status_invalid", "unknown record status")
	}
	r.status = status
	return nil
}

// AppendNote adds to the note trail. Existing notes are never replaced.
func (r *TimeRecord) AppendNote(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return NewValidationError("note_required", "note must not be empty")
	}
	r.notes = append(r.notes, note)
	return nil
}

// TimeRecordDraft is the pre-NSR shape of a record handed to the repository,
// which allocates the NSR, invokes sign and persists in one transaction.
type TimeRecordDraft struct {
	ID               string
	TenantID         string
	UserID           string
	RecordedAt       time.Time
	Type             RecordType
	IsAdjustment     bool
	OriginalRecordID string
	Provenance       Provenance
	Notes            []string

	// EnforceSequence re-checks the alternation and minimum-interval
	// guards under the per-user lock inside the append transaction.
	// Natural clock events set it; adjustment minting does not.
	EnforceSequence bool
	MinInterval     time.Duration
}

// SignFunc computes the signature hash once the NSR is known.
type SignFunc func(nsr int64) (string, error)

type TimeRecordFilter struct {
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}

type TimeRecordRepository interface {
	Append(ctx context.Context, draft *TimeRecordDraft, sign SignFunc) (*TimeRecord, error)
	GetByID(ctx context.Context, tenantID, recordID string) (*TimeRecord, error)
	// LastByUser returns nil, nil when the user has no records yet.
	LastByUser(ctx context.Context, tenantID, userID string) (*TimeRecord, error)
	ListByUser(ctx context.Context, tenantID, userID string, filter TimeRecordFilter) ([]*TimeRecord, int64, error)
	ListByTenant(ctx context.Context, tenantID string, filter TimeRecordFilter) ([]*TimeRecord, int64, error)
	ListPending(ctx context.Context, tenantID string, page, limit int) ([]*TimeRecord, int64, error)
	UpdateStatus(ctx context.Context, tenantID, recordID string, status RecordStatus) error
	AppendNote(ctx context.Context, tenantID, recordID, note string) error
}
