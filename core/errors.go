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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRepairRecord indicates a RepairRecord failed validation.
	ErrInvalidRepairRecord = errors.New("invalid repair record")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyStage indicates the Stage field is empty.
	ErrEmptyStage = errors.New("stage cannot be empty")

	// ErrEmptyRepaired indicates the Repaired field is empty.
	ErrEmptyRepaired = errors.New("repaired document cannot be empty")

	// ErrIDMismatch indicates the record ID is not derived from its raw text.
	ErrIDMismatch = errors.New("id does not match raw content")
)
