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
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidFeedbackRecord indicates a FeedbackRecord failed validation.
	ErrInvalidFeedbackRecord = errors.New("invalid feedback record")

	// ErrMissingEmbedding indicates a feedback record has no embedding.
	ErrMissingEmbedding = errors.New("embedding cannot be empty")

	// ErrInvalidOperator indicates an unknown opt-in operator name.
	ErrInvalidOperator = errors.New("invalid operator: must be one of and, or")

	// ErrInvalidPipelineError indicates text that is not a canonical pipeline error.
	ErrInvalidPipelineError = errors.New("invalid pipeline error")
)
