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
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
// It is safe for concurrent use and caches struct metadata.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Link must not be empty
//   - Description must not be empty
//
// NOT validated (populated by later stages):
//   - CleanContent, Relevance, Breakdown, Summary
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if err := Validator().Struct(item); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("%w: missing %s", ErrInvalidItem, strings.Join(missing, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	return nil
}

// ValidateFeedbackRecord validates a FeedbackRecord.
//
// Validation rules:
//   - The rated item must be valid
//   - Both embeddings must be present and share one dimensionality
func ValidateFeedbackRecord(record *FeedbackRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFeedbackRecord)
	}

	if err := ValidateItem(&record.Item); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackRecord, err)
	}

	if len(record.TitleEmbedding) == 0 || len(record.BowEmbedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackRecord, ErrMissingEmbedding)
	}

	if len(record.TitleEmbedding) != len(record.BowEmbedding) {
		return fmt.Errorf("%w: title embedding has %d dimensions, bag of words has %d",
			ErrInvalidFeedbackRecord, len(record.TitleEmbedding), len(record.BowEmbedding))
	}
	return nil
}
