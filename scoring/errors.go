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


package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBatchFailed is returned when more units fail than the batch tolerates.
	ErrBatchFailed = errors.New("scoring batch failed")

	// ErrUnitPanicked wraps a value recovered from a panicking unit.
	ErrUnitPanicked = errors.New("scoring unit panicked")

	// ErrScorerRequired is returned when no scorer is provided.
	ErrScorerRequired = errors.New("scorer required")

	// ErrVocabularyRequired is returned when no vocabulary is provided.
	ErrVocabularyRequired = errors.New("vocabulary required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrFeedbackScorerRequired is returned when no feedback scorer is provided.
	ErrFeedbackScorerRequired = errors.New("feedback scorer required")
)

// UnitError is the failure of the unit that scored one item.
type UnitError struct {
	Seq  int    // Position of the item in the input
	Link string // Link of the item
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Seq, e.Link, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the unit failures of a failed batch.
// It matches ErrBatchFailed and every underlying unit error with errors.Is.
type BatchError struct {
	Total    int
	Failures []*UnitError
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d of %d units failed", ErrBatchFailed, len(e.Failures), e.Total)
	if len(e.Failures) > 0 {
		fmt.Fprintf(&b, "; first: %v", e.Failures[0])
	}
	return b.String()
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	errs = append(errs, ErrBatchFailed)
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
