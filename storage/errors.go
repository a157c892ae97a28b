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

import "errors"

// Repositories return these wrapped; match them with errors.Is.
var (
	// ErrNotFound is returned when no item or feedback record is stored
	// under the requested key.
	ErrNotFound = errors.New("not found in store")

	// ErrStorageClosed is returned by every operation after Close.
	ErrStorageClosed = errors.New("store is closed")

	// ErrCodec wraps JSON encoding and decoding failures of stored values.
	ErrCodec = errors.New("value codec")

	ErrShortValue = errors.New("stored value too short")
)
