package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRepairRecord(t *testing.T) {
	now := time.Now().UTC()
	valid := func() *RepairRecord {
		return &RepairRecord{
			Id:         IDFromContent(`{"a":1`),
			Stage:      "lexical",
			Raw:        `{"a":1`,
			Repaired:   `{"a":1}`,
			InsertedAt: now,
		}
	}

	tests := []struct {
		name    string
		record  *RepairRecord
		wantErr error
	}{
		{"valid record", valid(), nil},
		{"nil record", nil, ErrInvalidRepairRecord},
		{"unassigned id", func() *RepairRecord { r := valid(); r.Id = 0; return r }(), nil},
		{"empty raw", &RepairRecord{Stage: "empty", Repaired: "{}"}, nil},
		{"empty stage", func() *RepairRecord { r := valid(); r.Stage = ""; return r }(), ErrEmptyStage},
		{"empty repaired", func() *RepairRecord { r := valid(); r.Repaired = ""; return r }(), ErrEmptyRepaired},
		{"foreign id", func() *RepairRecord { r := valid(); r.Id = 42; return r }(), ErrIDMismatch},
		{"future timestamp", func() *RepairRecord {
			r := valid()
			r.InsertedAt = now.Add(time.Hour)
			return r
		}(), ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepairRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidRepairRecord)
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	now := time.Now()

	assert.True(t, IsValidTimestamp(now.Add(-time.Hour)))
	assert.True(t, IsValidTimestamp(time.Time{}))
	assert.False(t, IsValidTimestamp(now.Add(time.Hour)))
}
