package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecordParams() TimeRecordParams {
	return TimeRecordParams{
		ID:            "rec-1",
		TenantID:      "tenant-a",
		UserID:        "user-1",
		NSR:           1,
		RecordedAt:    time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Type:          ClockIn,
		SignatureHash: "abc123",
	}
}

func TestNewTimeRecordValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TimeRecordParams)
		code   string
	}{
		{"missing id", func(p *TimeRecordParams) { p.ID = "" }, "record_id_required"},
		{"missing tenant", func(p *TimeRecordParams) { p.TenantID = "" }, "tenant_required"},
		{"missing user", func(p *TimeRecordParams) { p.UserID = "" }, "user_required"},
		{"zero nsr", func(p *TimeRecordParams) { p.NSR = 0 }, "nsr_invalid"},
		{"bad type", func(p *TimeRecordParams) { p.Type = "BREAK" }, "record_type_invalid"},
		{"missing hash", func(p *TimeRecordParams) { p.SignatureHash = "" }, "signature_required"},
		{"adjustment without original", func(p *TimeRecordParams) { p.IsAdjustment = true }, "original_record_required"},
		{"original on natural record", func(p *TimeRecordParams) { p.OriginalRecordID = "rec-0" }, "original_record_forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validRecordParams()
			tt.mutate(&params)
			_, err := NewTimeRecord(params)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}
}

func TestNewTimeRecordDefaults(t *testing.T) {
	record, err := NewTimeRecord(validRecordParams())
	require.NoError(t, err)
	assert.Equal(t, RecordValid, record.Status())
	assert.False(t, record.CreatedAt().IsZero())
	assert.Equal(t, time.UTC, record.RecordedAt().Location())
}

func TestSetStatus(t *testing.T) {
	record, err := NewTimeRecord(validRecordParams())
	require.NoError(t, err)

	require.NoError(t, record.SetStatus(RecordPending))
	assert.Equal(t, RecordPending, record.Status())

	err = record.SetStatus("BOGUS")
	require.Error(t, err)
	assert.Equal(t, RecordPending, record.Status())
}

func TestAppendNote(t *testing.T) {
	record, err := NewTimeRecord(validRecordParams())
	require.NoError(t, err)

	require.NoError(t, record.AppendNote("first note"))
	require.NoError(t, record.AppendNote("second note"))
	assert.Equal(t, []string{"first note", "second note"}, record.Notes())

	err = record.AppendNote("   ")
	assert.Equal(t, KindValidation, KindOf(err))

	// Notes() hands out a copy; mutating it must not touch the record.
	notes := record.Notes()
	notes[0] = "tampered"
	assert.Equal(t, "first note", record.Notes()[0])
}

func TestRestoreRoundTrip(t *testing.T) {
	params := validRecordParams()
	params.IsAdjustment = false
	params.Notes = []string{"migrated"}
	params.Status = RecordPending
	params.CreatedAt = time.Date(2025, 3, 14, 9, 1, 0, 0, time.UTC)

	record := RestoreTimeRecord(params)
	assert.Equal(t, params.ID, record.ID())
	assert.Equal(t, params.NSR, record.NSR())
	assert.Equal(t, RecordPending, record.Status())
	assert.Equal(t, []string{"migrated"}, record.Notes())
}
