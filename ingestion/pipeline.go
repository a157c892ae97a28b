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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/core"
)

// Pipeline fetches feeds and article contents on a worker pool.
// It is safe for concurrent use.
type Pipeline struct {
	client   *FeedClient
	cleaner  *Cleaner
	pool     *ants.Pool
	ownsPool bool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPool runs fetches on a shared pool. The pipeline does not release
// a pool it did not create.
func WithPool(pool *ants.Pool) Option {
	return func(p *Pipeline) error {
		if pool == nil {
			return nil
		}
		p.releaseOwned()
		p.pool = pool
		p.ownsPool = false
		return nil
	}
}

// WithPoolSize runs fetches on a private pool of size workers.
// Default is a private pool of runtime.NumCPU() workers.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.releaseOwned()
		p.pool = pool
		p.ownsPool = true
		return nil
	}
}

// WithFeedClient sets the HTTP side of the pipeline.
func WithFeedClient(client *FeedClient) Option {
	return func(p *Pipeline) error {
		if client == nil {
			return ErrFeedClientRequired
		}
		p.client = client
		return nil
	}
}

// WithCleaner sets the content cleaner.
func WithCleaner(cleaner *Cleaner) Option {
	return func(p *Pipeline) error {
		if cleaner == nil {
			return ErrCleanerRequired
		}
		p.cleaner = cleaner
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	if p.pool == nil {
		pool, err := ants.NewPool(runtime.NumCPU())
		if err != nil {
			return nil, err
		}
		p.pool = pool
		p.ownsPool = true
	}
	if p.client == nil {
		p.client = NewFeedClient(WithClientLogger(p.logger))
	}
	if p.cleaner == nil {
		p.cleaner = NewCleaner(p.logger)
	}
	p.logger = p.logger.With("component", "ingestion")
	return p, nil
}

type feedResult struct {
	seq   int
	items []core.Item
	err   error
}

// FetchOptedIn reads every feed, keeps the items accepted by filter and
// returns them shuffled. Feeds that cannot be read are logged and skipped.
// A nil filter keeps every item. ErrNoItems is returned when no feed
// could be read at all.
func (p *Pipeline) FetchOptedIn(ctx context.Context, urls []string, filter *Filter) ([]core.Item, error) {
	if filter == nil {
		filter = NewFilter(nil, core.OperatorOr)
	}

	results := make(chan feedResult, len(urls))
	dispatched := 0
	var dispatchErr error
	for seq, url := range urls {
		err := p.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					results <- feedResult{seq: seq, err: fmt.Errorf("%w: %v", ErrUnitPanicked, r)}
				}
			}()
			items, err := p.client.Fetch(ctx, url)
			results <- feedResult{seq: seq, items: items, err: err}
		})
		if err != nil {
			dispatchErr = fmt.Errorf("failed to submit feed fetch: %w", err)
			break
		}
		dispatched++
	}

	perFeed := make([][]core.Item, len(urls))
	read := 0
	for range dispatched {
		res := <-results
		if res.err != nil {
			p.logger.Error("could not read feed", "feed", urls[res.seq], "err", res.err)
			continue
		}
		perFeed[res.seq] = res.items
		read++
	}

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	if read == 0 {
		return nil, ErrNoItems
	}

	var all []core.Item
	for _, items := range perFeed {
		all = append(all, items...)
	}

	kept := filter.Apply(all)
	if filter.Empty() {
		filter.Shuffle(kept)
	}
	p.logger.Info("fetched feeds", "feeds", read, "failed", dispatched-read, "items", len(all), "kept", len(kept))
	return kept, nil
}

type itemResult struct {
	seq  int
	item core.Item
}

// FillContents downloads and cleans the article of every item. Failures
// are recorded on the item, never returned. Items that already carry an
// error are passed through untouched. Items come back in input order.
func (p *Pipeline) FillContents(ctx context.Context, items []core.Item) ([]core.Item, error) {
	return p.each(ctx, items, func(item core.Item) core.Item {
		if item.HasError() {
			return item
		}
		return p.fillContent(ctx, item)
	})
}

// Summarize asks summarizer for a summary of every item with content.
// A failed summary is logged and leaves the item without one.
func (p *Pipeline) Summarize(ctx context.Context, items []core.Item, summarizer ai.Summarizer) ([]core.Item, error) {
	return p.each(ctx, items, func(item core.Item) core.Item {
		if item.HasError() || item.CleanContent == "" {
			return item
		}
		summary, err := summarizer.Summarize(ctx, item.CleanContent)
		if err != nil {
			p.logger.Warn("could not summarize item", "link", item.Link, "err", err)
			return item
		}
		item.Summary = summary
		return item
	})
}

// each runs fn for every item on the pool and restores input order.
func (p *Pipeline) each(ctx context.Context, items []core.Item, fn func(core.Item) core.Item) ([]core.Item, error) {
	results := make(chan itemResult, len(items))
	dispatched := 0
	var dispatchErr error
	for seq, item := range items {
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		err := p.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("item task panicked", "link", item.Link, "panic", r)
					item.Error = core.NewUnknown()
					results <- itemResult{seq: seq, item: item}
				}
			}()
			results <- itemResult{seq: seq, item: fn(item)}
		})
		if err != nil {
			dispatchErr = fmt.Errorf("failed to submit item: %w", err)
			break
		}
		dispatched++
	}

	out := make([]core.Item, len(items))
	for range dispatched {
		res := <-results
		out[res.seq] = res.item
	}

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	return out, nil
}

func (p *Pipeline) fillContent(ctx context.Context, item core.Item) core.Item {
	resp, err := p.client.Get(ctx, item.Link)
	if err != nil {
		p.logger.Error("could not get content", "link", item.Link, "err", err)
		item.Error = core.NewNetworkFailure(err.Error())
		return item
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("could not read content", "link", item.Link, "err", err)
		item.Error = core.NewParseFailure(err.Error())
		return item
	}

	text, perr := p.cleaner.Clean(item.Channel, string(body))
	switch {
	case perr != nil:
		p.logger.Error("could not clean content", "link", item.Link, "err", perr)
		item.Error = perr
	case text == "":
		p.logger.Error("could not clean content", "link", item.Link, "err", "empty content")
		item.Error = core.NewNoContent()
	default:
		item.CleanContent = text
	}
	return item
}

// Release releases the pool if the pipeline created it.
func (p *Pipeline) Release() {
	p.releaseOwned()
}

func (p *Pipeline) releaseOwned() {
	if p.ownsPool && p.pool != nil {
		p.pool.Release()
		p.pool = nil
		p.ownsPool = false
	}
}
