// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"time"
)

// ValidateRepairRecord validates a RepairRecord according to domain rules.
//
// Validation rules:
//   - Stage must not be empty
//   - Repaired must not be empty
//   - Id must be 0 (assigned on save) or IDFromContent(Raw)
//   - InsertedAt must not be in the future
//
// Raw may be empty: the engine maps empty input to "{}".
func ValidateRepairRecord(record *RepairRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRepairRecord)
	}

	if record.Stage == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRepairRecord, ErrEmptyStage)
	}

	if record.Repaired == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRepairRecord, ErrEmptyRepaired)
	}

	if record.Id != 0 && record.Id != IDFromContent(record.Raw) {
		return fmt.Errorf("%w: %w: %d", ErrInvalidRepairRecord, ErrIDMismatch, record.Id)
	}

	if !IsValidTimestamp(record.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRepairRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
