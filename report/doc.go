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


// Package report renders scored items as Markdown documents.
//
// Three documents are produced: a relevance report with per-channel
// statistics and the ranked list of items, a dossier with a table of
// contents followed by the full data and clean content of each item,
// and an items log that records the intermediate state of a dossier run.
// Rendering is pure; Append writes a rendered document to disk.
package report
