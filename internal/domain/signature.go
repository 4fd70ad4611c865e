package domain

import "time"

// SignatureGenerator computes and re-verifies the integrity digest of a
// time record. The national id is deliberately not part of the stored
// record; callers fetch it from the user directory at validation time.
type SignatureGenerator interface {
	Hash(nsr int64, tenantID, userID, nationalID string, recordedAt time.Time, recordType RecordType) (string, error)
	Validate(record *TimeRecord, nationalID string) (bool, error)
}
