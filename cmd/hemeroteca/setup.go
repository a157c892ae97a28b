package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/poiesic/hemeroteca"
	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
	"github.com/poiesic/hemeroteca/ingestion"
	"github.com/poiesic/hemeroteca/scoring"
	"github.com/poiesic/hemeroteca/storage/tabular"
	"github.com/poiesic/hemeroteca/vocab"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func (e *env) open(extra ...hemeroteca.Option) (*hemeroteca.Hemeroteca, error) {
	opts := []hemeroteca.Option{
		hemeroteca.WithAIConfig(e.cfg.ToAI()),
		hemeroteca.WithLogger(slog.Default()),
	}
	if e.cfg.Threads > 0 {
		opts = append(opts, hemeroteca.WithPoolSize(e.cfg.Threads))
	}
	if e.cfg.Database.Path == "" {
		opts = append(opts, hemeroteca.WithInMemory())
	}
	h, err := hemeroteca.Open(e.cfg.Database.Path, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return h, nil
}

func (e *env) pipeline(h *hemeroteca.Hemeroteca) (*ingestion.Pipeline, error) {
	client := ingestion.NewFeedClient(
		ingestion.WithHTTPClient(&http.Client{Timeout: e.cfg.Fetch.Timeout}),
		ingestion.WithRateLimit(e.cfg.Fetch.RateLimit, e.cfg.Fetch.Burst),
		ingestion.WithUserAgent(e.cfg.Fetch.UserAgent),
	)
	return h.NewPipeline(ingestion.WithFeedClient(client))
}

func (e *env) orchestrator(h *hemeroteca.Hemeroteca) (*scoring.Orchestrator, error) {
	opts := []scoring.Option{
		scoring.WithFailureTolerance(e.cfg.Scoring.FailureTolerance),
		scoring.WithMonitor(e.monitor()),
	}
	if e.cfg.Scoring.MaxInFlight > 0 {
		opts = append(opts, scoring.WithMaxInFlight(e.cfg.Scoring.MaxInFlight))
	}
	return h.NewOrchestrator(opts...)
}

// monitor registers the scoring metrics once per process.
func (e *env) monitor() scoring.Monitor {
	if e.metrics == nil {
		e.metrics = scoring.NewMetricsMonitor(e.registry)
	}
	return e.metrics
}

// fetch reads the feeds file and fetches every feed, keeping items
// accepted by filter.
func (e *env) fetch(ctx context.Context, p *ingestion.Pipeline, filter *ingestion.Filter) ([]core.Item, error) {
	urls, err := ingestion.ReadURLs(e.cfg.FeedsFile)
	if err != nil {
		return nil, err
	}
	slog.Info("feed urls to read", "count", len(urls))
	return p.FetchOptedIn(ctx, urls, filter)
}

func (e *env) vocabulary() (*vocab.Vocabulary, error) {
	v, err := vocab.Load(e.cfg.Vocabulary)
	if err != nil {
		return nil, err
	}
	slog.Debug("vocabulary loaded", "terms", v.Len())
	return v, nil
}

// readFeedbackFile reads a Parquet or CSV feedback file, chosen by extension.
func readFeedbackFile(ctx context.Context, path string) ([]*core.FeedbackRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return tabular.ReadCSVFile(path)
	case ".parquet":
		return tabular.ReadParquet(ctx, path)
	}
	return nil, fmt.Errorf("unsupported feedback file %s: expected .parquet or .csv", path)
}

// feedbackScorer builds a composite scorer from the given feedback file,
// or from the stored corpus when path is empty.
func (e *env) feedbackScorer(ctx context.Context, h *hemeroteca.Hemeroteca, v *vocab.Vocabulary, path string) (scoring.Scorer, error) {
	var corpus *feedback.Corpus
	if path == "" {
		c, err := h.FeedbackCorpus(ctx)
		if err != nil {
			return nil, err
		}
		corpus = c
	} else {
		records, err := readFeedbackFile(ctx, path)
		if err != nil {
			return nil, err
		}
		c, err := feedback.NewCorpusFromRefs(records)
		if err != nil {
			return nil, err
		}
		corpus = c
	}
	slog.Info("feedback corpus loaded", "records", corpus.Len(), "dims", corpus.Dims())

	fb, err := feedback.NewScorer(corpus,
		feedback.WithThreshold(e.cfg.Scoring.Threshold),
		feedback.WithCompareMode(e.cfg.CompareMode()),
	)
	if err != nil {
		return nil, err
	}
	return scoring.NewCompositeScorer(v, h.Provider().Embedder(), fb)
}

func newLexical(v *vocab.Vocabulary) (scoring.Scorer, error) {
	s, err := scoring.NewLexicalScorer(v)
	if err != nil {
		return nil, err
	}
	return s, nil
}
