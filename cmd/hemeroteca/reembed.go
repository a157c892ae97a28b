package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/hemeroteca/reembed"
)

func reembedCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "reembed",
		Usage:  "Re-embed the stored feedback corpus with the configured embedding model",
		Action: e.reembed,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Number of records to process in each batch",
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "Maximum attempts for each embedding call",
			},
			&cli.DurationFlag{
				Name:  "retry-delay",
				Usage: "Base delay for exponential backoff",
			},
			&cli.BoolFlag{
				Name:  "normalize",
				Usage: "Scale new vectors to unit length",
			},
		},
	}
}

func (e *env) reembed(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	if e.cfg.Database.Path == "" {
		return fmt.Errorf("reembed needs a database path (--db)")
	}

	rc := e.cfg.Reembed
	if c.IsSet("batch-size") {
		rc.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("max-retries") {
		rc.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("retry-delay") {
		rc.RetryDelay = c.Duration("retry-delay")
	}
	if c.IsSet("normalize") {
		rc.Normalize = c.Bool("normalize")
	}

	h, err := e.open()
	if err != nil {
		return err
	}
	defer h.Close()

	r, err := h.NewReembedder(
		reembed.WithBatchSize(rc.BatchSize),
		reembed.WithRetries(rc.MaxRetries, rc.RetryDelay),
		reembed.WithNormalize(rc.Normalize),
		reembed.WithProgress(e.stderr, rc.BatchSize),
	)
	if err != nil {
		return err
	}

	slog.Info("re-embedding", "db", e.cfg.Database.Path, "host", e.cfg.AI.EmbeddingHost, "model", e.cfg.AI.EmbeddingModel)
	n, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("reembedding failed after %d records: %w", n, err)
	}
	return nil
}
