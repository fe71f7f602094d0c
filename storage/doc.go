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


// Package storage provides the storage abstraction layer for compass.
//
// This package defines repository interfaces that decouple the repair journal
// from its storage engine. Records are serialized with the MUS format
// (see core.RepairRecordMUS) and keyed by the content hash of the raw model
// output, so journaling the same text twice updates one record.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces:
//
//	repo, err := badger.NewRepairRepository(backend)  // returns storage.RepairRepository
//
// Internal helpers in the implementation package may return concrete types.
//
// # Usage
//
// Create a journal backed by a directory:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewRepairRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
