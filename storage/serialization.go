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


package storage

import (
	"fmt"

	"github.com/poiesic/compass/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalRepairRecord serializes a RepairRecord to bytes.
func MarshalRepairRecord(record *core.RepairRecord) []byte {
	buf := make([]byte, core.RepairRecordMUS.Size(*record))
	core.RepairRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRepairRecord deserializes a RepairRecord from bytes.
func UnmarshalRepairRecord(data []byte) (*core.RepairRecord, error) {
	record, _, err := core.RepairRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: repair record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
