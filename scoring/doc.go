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


// Package scoring fans scoring work out over a shared worker pool and
// fans the results back in.
//
// An Orchestrator dispatches one unit of work per item, all at once,
// onto an ants pool. Each unit owns its item: it receives the item by
// value and hands back the scored copy, tagged with the position the
// item had in the input. Results therefore never depend on completion
// order.
//
// ScoreAll waits for every unit. With the default policy any failed unit,
// whether it returned an error or panicked, fails the whole batch with a
// *BatchError and no partial ranking is returned. WithFailureTolerance
// keeps the batch alive while at most n units fail; their items come back
// unscored so they rank last. ScoreEach exposes the raw per-unit outcomes.
//
// Two scorers are provided: LexicalScorer (vocabulary matches only) and
// CompositeScorer (lexical breakdown plus feedback similarity).
//
// ScoreAll must not be called from a task running on the pool it
// dispatches to; with every worker waiting on its own batch the pool
// would never drain.
package scoring
