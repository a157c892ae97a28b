package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/hemeroteca/ingestion"
	"github.com/poiesic/hemeroteca/ranking"
	"github.com/poiesic/hemeroteca/report"
)

func dossierCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "dossier",
		Usage:  "Fetch opted-in items, score them and write a dossier of the best",
		Action: e.dossier,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Report name",
				Value:   "dossier",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Write the intermediate items log next to the dossier",
			},
			&cli.BoolFlag{
				Name:  "store",
				Usage: "Store the cleaned items in the database",
			},
			&cli.BoolFlag{
				Name:  "feedback",
				Usage: "Re-score with the feedback corpus",
			},
			&cli.StringFlag{
				Name:  "feedback-file",
				Usage: "Parquet or CSV feedback corpus (implies --feedback; the stored corpus is used otherwise)",
			},
			&cli.BoolFlag{
				Name:  "summarize",
				Usage: "Add a model-generated summary to every dossier item",
			},
		},
	}
}

func (e *env) dossier(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()
	start := e.now()
	name := c.String("name")
	slog.Info("generating dossier", "name", name)

	v, err := e.vocabulary()
	if err != nil {
		return err
	}

	h, err := e.open()
	if err != nil {
		return err
	}
	defer h.Close()

	pipeline, err := e.pipeline(h)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	orch, err := e.orchestrator(h)
	if err != nil {
		return err
	}
	defer orch.Release()

	lexical, err := newLexical(v)
	if err != nil {
		return err
	}

	items, err := e.fetch(ctx, pipeline, ingestion.NewFilter(e.cfg.Filter.OptIn, e.cfg.Operator()))
	if err != nil {
		return err
	}
	slog.Info("items read from the feeds", "count", len(items))

	scored, err := orch.ScoreAll(ctx, items, lexical)
	if err != nil {
		return fmt.Errorf("lexical scoring failed: %w", err)
	}
	candidates, err := pipeline.FillContents(ctx, ranking.TopK(scored, e.cfg.Scoring.TopK))
	if err != nil {
		return err
	}
	slog.Info("clean news items", "count", len(candidates))

	folder := report.Folder(e.cfg.Root, name, start)

	if c.Bool("log") {
		path := filepath.Join(folder, report.FileName("", name, start, "md"))
		slog.Info("logging to the report log file", "path", path)
		if err := report.Append(path, report.ItemsLog(candidates)); err != nil {
			return err
		}
	}

	if c.Bool("store") {
		inserted, err := h.ItemRepository().PutItems(ctx, candidates...)
		if err != nil {
			return fmt.Errorf("failed to store items: %w", err)
		}
		slog.Info("unique inserted items", "count", inserted)
	}

	// Clean content is now present, so the body counts.
	rescorer := lexical
	if c.Bool("feedback") || c.IsSet("feedback-file") {
		rescorer, err = e.feedbackScorer(ctx, h, v, c.String("feedback-file"))
		if err != nil {
			return err
		}
	}
	rescored, err := orch.ScoreAll(ctx, candidates, rescorer)
	if err != nil {
		return fmt.Errorf("re-scoring failed: %w", err)
	}
	top := ranking.TopK(rescored, e.cfg.Scoring.DossierSize)

	if c.Bool("summarize") {
		top, err = pipeline.Summarize(ctx, top, h.Provider().Summarizer())
		if err != nil {
			return err
		}
	}

	path := filepath.Join(folder, report.FileName("dossier-", name, start, "md"))
	slog.Info("generating dossier", "path", path, "items", len(top))
	if err := report.Append(path, report.Dossier(top, report.NewMeta(start))); err != nil {
		return err
	}

	slog.Info("time elapsed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func relevanceCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "relevance",
		Usage:  "Score every fetched item and write a relevance report",
		Action: e.relevance,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Report name",
				Value:   "relevance",
			},
		},
	}
}

func (e *env) relevance(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()
	start := e.now()
	name := c.String("name")
	slog.Info("generating relevance report", "name", name)

	v, err := e.vocabulary()
	if err != nil {
		return err
	}

	h, err := e.open()
	if err != nil {
		return err
	}
	defer h.Close()

	pipeline, err := e.pipeline(h)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	orch, err := e.orchestrator(h)
	if err != nil {
		return err
	}
	defer orch.Release()

	lexical, err := newLexical(v)
	if err != nil {
		return err
	}

	items, err := e.fetch(ctx, pipeline, nil)
	if err != nil {
		return err
	}
	slog.Info("items read from the feeds", "count", len(items))

	scored, err := orch.ScoreAll(ctx, items, lexical)
	if err != nil {
		return fmt.Errorf("lexical scoring failed: %w", err)
	}

	path := filepath.Join(report.Folder(e.cfg.Root, name, start), report.FileName("relevance-", name, start, "md"))
	slog.Info("writing relevance report", "path", path)
	if err := report.Append(path, report.Relevance(scored)); err != nil {
		return err
	}

	slog.Info("time elapsed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
