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


// Package tabular writes and reads feedback corpora as flat files.
//
// Both formats carry one row per FeedbackRecord with the item fields,
// the feedback date, the rating and both embeddings. CSV stores each
// embedding as comma-joined numbers in one column. Parquet files are
// written through an in-memory DuckDB: every embedding is a fixed-size
// FLOAT array column, everything else is VARCHAR, and pages are
// snappy-compressed.
package tabular
