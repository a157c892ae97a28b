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


package badger

import "github.com/poiesic/hemeroteca/storage"

// NewMemoryRepositories opens a throwaway in-memory store and returns its
// item, feedback and checkpoint repositories. Close the backend when done.
func NewMemoryRepositories() (storage.ItemRepository, storage.FeedbackRepository, storage.CheckpointRepository, *Backend, error) {
	backend, err := OpenBackend("")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return NewItemRepository(backend), NewFeedbackRepository(backend), NewCheckpointRepository(backend), backend, nil
}
