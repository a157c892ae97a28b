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


// Package storage defines the persistence layer of hemeroteca.
//
// Repositories decouple the pipeline from the storage engine. The
// badger subpackage implements them on an embedded BadgerDB; the
// tabular subpackage reads and writes feedback corpora as CSV and
// Parquet files.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	items := badger.NewItemRepository(backend)
//	inserted, err := items.PutItems(ctx, fetched...)
//
// Use in tests with in-memory storage:
//
//	items, feedback, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Encoding
//
// Values are stored as JSON documents. IDs are stored big-endian so
// keys sort by ID.
package storage
