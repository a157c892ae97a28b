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


// Package vocab decides whether a word is topically close to a curated
// set of root words.
//
// Closeness is the Sørensen–Dice coefficient over character bigrams; a
// word is relevant when its coefficient against any root reaches the
// threshold. The matcher never folds case, so "presidente" and
// "Presidente" are different words.
//
// A Vocabulary is immutable once built and may be shared by any number
// of goroutines:
//
//	v, err := vocab.Load("words.yaml")
//	if err != nil {
//		return err
//	}
//	if v.IsRelevant("Presidente") {
//		// ...
//	}
package vocab
