package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
	"github.com/poiesic/hemeroteca/storage/tabular"
)

var errNothingRated = errors.New("no feedback items rated")

func feedbackCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "feedback",
		Usage:  "Rate fetched items interactively and save them as a feedback corpus",
		Action: e.feedback,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Parquet file under the root folder; a CSV copy is written next to it",
				Value: "feedback.parquet",
			},
			&cli.IntFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Usage:   "Number of items to rate",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "store",
				Usage: "Also store the records in the database",
			},
		},
	}
}

func (e *env) feedback(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	number := c.Int("number")
	if number <= 0 {
		return fmt.Errorf("number must be greater than 0")
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

	items, err := e.fetch(ctx, pipeline, nil)
	if err != nil {
		return err
	}
	slog.Info("requesting feedback", "items", number, "available", len(items))

	rated, err := newRater(e.stdin, e.stdout, e.now).rateAll(items, number)
	if err != nil {
		return err
	}
	if len(rated) == 0 {
		return errNothingRated
	}
	slog.Info("feedback items", "count", len(rated))

	records, err := feedback.BuildRecords(ctx, h.Provider().Embedder(), rated, e.now())
	if err != nil {
		return fmt.Errorf("failed to generate feedback records: %w", err)
	}
	refs := core.FeedbackRecordRefs(records)

	if err := os.MkdirAll(e.cfg.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create the root folder: %w", err)
	}
	parquetPath := filepath.Join(e.cfg.Root, c.String("file"))
	csvPath := strings.TrimSuffix(parquetPath, filepath.Ext(parquetPath)) + ".csv"

	// Both files are attempted; either failing fails the command.
	var errs []error
	slog.Info("writing records to file", "path", parquetPath)
	if err := tabular.WriteParquet(ctx, parquetPath, refs); err != nil {
		slog.Error("failed to write feedback to Parquet file", "err", err)
		errs = append(errs, err)
	}
	slog.Info("writing records to file", "path", csvPath)
	if err := tabular.WriteCSVFile(csvPath, refs); err != nil {
		slog.Error("failed to write feedback to CSV file", "err", err)
		errs = append(errs, err)
	}

	if c.Bool("store") {
		if err := h.FeedbackRepository().PutFeedback(ctx, refs...); err != nil {
			errs = append(errs, fmt.Errorf("failed to store feedback: %w", err))
		}
	}
	return errors.Join(errs...)
}

func importCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Load a Parquet or CSV feedback corpus into the database",
		ArgsUsage: "FILE",
		Action:    e.importFeedback,
	}
}

func (e *env) importFeedback(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	if c.NArg() != 1 {
		return fmt.Errorf("expected one feedback file, got %d arguments", c.NArg())
	}
	if e.cfg.Database.Path == "" {
		return fmt.Errorf("import needs a database path (--db)")
	}

	records, err := readFeedbackFile(ctx, c.Args().First())
	if err != nil {
		return err
	}
	if _, err := feedback.NewCorpusFromRefs(records); err != nil {
		return err
	}

	h, err := e.open()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.FeedbackRepository().PutFeedback(ctx, records...); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	count, err := h.FeedbackRepository().CountFeedback(ctx)
	if err != nil {
		return err
	}
	slog.Info("feedback imported", "records", len(records), "stored", count)
	return nil
}
