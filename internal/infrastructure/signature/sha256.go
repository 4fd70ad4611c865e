package signature

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

// timestampLayout is the canonical yyyyMMddHHmmss rendering of the
// recorded-at instant. It must never change: stored digests are only
// re-derivable as long as every verifier builds the same byte string.
const timestampLayout = "20060102150405"

const fieldDelimiter = "|"

type SHA256Generator struct{}

func NewSHA256Generator() *SHA256Generator {
	return &SHA256Generator{}
}

func (g *SHA256Generator) Hash(nsr int64, tenantID, userID, nationalID string, recordedAt time.Time, recordType domain.RecordType) (string, error) {
	switch {
	case nsr < 1:
		return "", domain.NewValidationError("nsr_invalid", "nsr must be >= 1")
	case tenantID == "":
		return "", domain.NewValidationError("tenant_required", "tenant id is required")
	case userID == "":
		return "", domain.NewValidationError("user_required", "user id is required")
	case nationalID == "":
		return "", domain.NewValidationError("national_id_required", "national id is required")
	case recordedAt.IsZero():
		return "", domain.NewValidationError("recorded_at_required", "recordedAt is required")
	case !recordType.Valid():
		return "", domain.NewValidationError("record_type_invalid", "record type must be CLOCK_IN or CLOCK_OUT")
	}

	payload := strings.Join([]string{
		strconv.FormatInt(nsr, 10),
		tenantID,
		userID,
		nationalID,
		recordedAt.UTC().Format(timestampLayout),
		string(recordType),
	}, fieldDelimiter)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:]), nil
}

func (g *SHA256Generator) Validate(record *domain.TimeRecord, nationalID string) (bool, error) {
	if record == nil {
		return false, domain.NewValidationError("record_required", "record is required")
	}
	expected, err := g.Hash(record.NSR(), record.TenantID(), record.UserID(), nationalID, record.RecordedAt(), record.Type())
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(record.SignatureHash())) == 1, nil
}
