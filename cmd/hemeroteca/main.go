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


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/hemeroteca/config"
	"github.com/poiesic/hemeroteca/scoring"
)

// env holds what every command shares. Tests replace the streams and clock.
type env struct {
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *scoring.MetricsMonitor
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	now      func() time.Time
}

func newEnv() *env {
	return &env{
		registry: prometheus.NewRegistry(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		now:      time.Now,
	}
}

func main() {
	if err := newApp(newEnv()).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:  "hemeroteca",
		Usage: "Score news feeds for relevance and build dossiers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "feeds-file",
				Aliases: []string{"f"},
				Usage:   "File with one feed URL per line",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Root folder for reports",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "Worker pool size (0 uses one worker per CPU)",
			},
			&cli.StringSliceFlag{
				Name:    "opt-in",
				Aliases: []string{"o"},
				Usage:   "Keep only items whose categories or keywords contain this term (repeatable)",
			},
			&cli.StringFlag{
				Name:  "operator",
				Usage: "Combine opt-in terms with 'and' or 'or'",
			},
			&cli.StringFlag{
				Name:  "vocabulary",
				Usage: "Extra vocabulary file (.yaml, .yml or .txt)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the BadgerDB database directory (in memory when empty)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write scoring metrics in Prometheus text format to this file",
			},
		},
		Before: func(c *cli.Context) error {
			if err := loadConfig(c, e); err != nil {
				return err
			}
			return setupLogger(e.cfg.LogLevel, e.stderr)
		},
		After: func(c *cli.Context) error {
			return writeMetrics(e)
		},
		Commands: []*cli.Command{
			dossierCommand(e),
			relevanceCommand(e),
			feedbackCommand(e),
			importCommand(e),
			reembedCommand(e),
		},
	}
}

// loadConfig layers command-line flags over the loaded configuration.
func loadConfig(c *cli.Context, e *env) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = strings.ToLower(c.String("log-level"))
	}
	if c.IsSet("feeds-file") {
		cfg.FeedsFile = c.String("feeds-file")
	}
	if c.IsSet("root") {
		cfg.Root = c.String("root")
	}
	if c.IsSet("threads") {
		cfg.Threads = c.Int("threads")
	}
	if c.IsSet("opt-in") {
		cfg.Filter.OptIn = c.StringSlice("opt-in")
	}
	if c.IsSet("operator") {
		cfg.Filter.Operator = strings.ToLower(c.String("operator"))
	}
	if c.IsSet("vocabulary") {
		cfg.Vocabulary = c.String("vocabulary")
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

func setupLogger(levelStr string, w io.Writer) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func writeMetrics(e *env) error {
	if e.cfg == nil || e.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(e.cfg.MetricsFile, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
