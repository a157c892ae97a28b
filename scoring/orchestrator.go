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
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/semaphore"

	"github.com/poiesic/hemeroteca/core"
)

// Outcome is the tagged result of one unit of work.
type Outcome struct {
	Seq  int       // Position of the item in the input
	Item core.Item // The scored item, or the input item if the unit failed
	Err  error
}

// Failed reports whether the unit failed.
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// Orchestrator dispatches scoring units onto a worker pool.
// It is safe for concurrent use.
type Orchestrator struct {
	pool      *ants.Pool
	ownsPool  bool
	inFlight  *semaphore.Weighted
	tolerance int
	monitor   Monitor
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPool runs units on a shared pool. The orchestrator does not
// release a pool it did not create.
func WithPool(pool *ants.Pool) Option {
	return func(o *Orchestrator) error {
		if pool == nil {
			return nil
		}
		o.releaseOwned()
		o.pool = pool
		o.ownsPool = false
		return nil
	}
}

// WithPoolSize runs units on a private pool of size workers.
// Default is a private pool of runtime.NumCPU() workers.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.releaseOwned()
		o.pool = pool
		o.ownsPool = true
		return nil
	}
}

// WithMaxInFlight bounds the number of units submitted but not finished.
// Default is unbounded: every unit is handed to the pool at once.
func WithMaxInFlight(n int64) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			o.inFlight = nil
			return nil
		}
		o.inFlight = semaphore.NewWeighted(n)
		return nil
	}
}

// WithFailureTolerance lets a batch succeed while at most n units fail.
// Failed items are returned unscored. Default is 0: any failure fails
// the batch.
func WithFailureTolerance(n int) Option {
	return func(o *Orchestrator) error {
		o.tolerance = max(n, 0)
		return nil
	}
}

// WithMonitor sets a batch observer.
func WithMonitor(m Monitor) Option {
	return func(o *Orchestrator) error {
		if m == nil {
			m = &noopMonitor{}
		}
		o.monitor = m
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			o.Release()
			return nil, err
		}
	}

	if o.pool == nil {
		pool, err := ants.NewPool(runtime.NumCPU())
		if err != nil {
			return nil, err
		}
		o.pool = pool
		o.ownsPool = true
	}
	o.logger = o.logger.With("component", "scoring")
	return o, nil
}

// ScoreEach scores every item and returns one outcome per item, in input
// order. Unit failures are reported in the outcomes, not as an error. The
// error is non-nil only when units could not be dispatched; units already
// dispatched are still awaited.
func (o *Orchestrator) ScoreEach(ctx context.Context, items []core.Item, scorer Scorer) ([]Outcome, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	started := time.Now()
	o.monitor.BatchStarted(len(items))
	o.logger.Debug("scoring batch", "items", len(items))

	results := make(chan Outcome, len(items))
	dispatched := 0
	var dispatchErr error
	for seq, item := range items {
		if o.inFlight != nil {
			if err := o.inFlight.Acquire(ctx, 1); err != nil {
				dispatchErr = err
				break
			}
		}
		err := o.pool.Submit(func() {
			results <- o.run(ctx, seq, item, scorer)
		})
		if err != nil {
			if o.inFlight != nil {
				o.inFlight.Release(1)
			}
			dispatchErr = fmt.Errorf("failed to submit scoring unit: %w", err)
			break
		}
		dispatched++
	}

	outcomes := make([]Outcome, dispatched)
	failed := 0
	for range dispatched {
		out := <-results
		if out.Failed() {
			failed++
		}
		outcomes[out.Seq] = out
	}

	o.monitor.BatchFinished(dispatched-failed, failed, time.Since(started))
	o.logger.Debug("scoring batch finished", "items", dispatched, "failed", failed, "elapsed", time.Since(started))

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	return outcomes, nil
}

// run executes one unit. A panic becomes the unit's error.
func (o *Orchestrator) run(ctx context.Context, seq int, item core.Item, scorer Scorer) (out Outcome) {
	start := time.Now()
	out = Outcome{Seq: seq, Item: item}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Seq: seq, Item: item, Err: fmt.Errorf("%w: %v", ErrUnitPanicked, r)}
		}
		if o.inFlight != nil {
			o.inFlight.Release(1)
		}
		o.unitFinished(&out.Item, time.Since(start), out.Err)
	}()

	scored, err := scorer.Score(ctx, item)
	if err != nil {
		out.Err = err
		return out
	}
	out.Item = scored
	return out
}

// unitFinished reports to the monitor. A panicking monitor is logged and
// never changes the unit's outcome.
func (o *Orchestrator) unitFinished(item *core.Item, elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("scoring monitor panicked", "link", item.Link, "panic", r)
		}
	}()
	o.monitor.UnitFinished(item, elapsed, err)
}

// ScoreAll scores every item and returns the scored items in input
// order. When more units fail than the tolerance allows it returns a
// *BatchError and no items.
func (o *Orchestrator) ScoreAll(ctx context.Context, items []core.Item, scorer Scorer) ([]core.Item, error) {
	outcomes, err := o.ScoreEach(ctx, items, scorer)
	if err != nil {
		return nil, err
	}

	scored := make([]core.Item, 0, len(outcomes))
	var failures []*UnitError
	for i := range outcomes {
		out := &outcomes[i]
		if out.Failed() {
			failures = append(failures, &UnitError{Seq: out.Seq, Link: out.Item.Link, Err: out.Err})
			item := out.Item
			item.Relevance = nil
			item.Breakdown = nil
			scored = append(scored, item)
			continue
		}
		scored = append(scored, out.Item)
	}

	if len(failures) > o.tolerance {
		o.logger.Error("scoring batch failed", "failed", len(failures), "total", len(items), "err", failures[0])
		return nil, &BatchError{Total: len(items), Failures: failures}
	}
	for _, f := range failures {
		o.logger.Warn("item left unscored", "link", f.Link, "err", f.Err)
	}
	return scored, nil
}

// Release releases the pool if the orchestrator created it.
func (o *Orchestrator) Release() {
	o.releaseOwned()
}

func (o *Orchestrator) releaseOwned() {
	if o.ownsPool && o.pool != nil {
		o.pool.Release()
		o.pool = nil
		o.ownsPool = false
	}
}
