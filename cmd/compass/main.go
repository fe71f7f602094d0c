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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/compass"
	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/analysis"
	"github.com/poiesic/compass/repair"
	"github.com/poiesic/compass/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := loadEnv(".env"); err != nil {
		log.Fatal(err)
	}

	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadEnv loads variables from path into the environment. A missing file is
// not an error; variables already set win.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB repair journal directory",
		EnvVars:  []string{"COMPASS_DB"},
		Required: true,
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "compass",
		Usage:     "Recover and audit structured JSON produced by language models",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "repair",
				Usage:  "Repair malformed JSON from a file or stdin and print it",
				Action: repairCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "File to repair (default stdin)",
					},
					&cli.StringFlag{
						Name:    "error",
						Aliases: []string{"e"},
						Usage:   "Parser error message seen by the caller",
					},
					&cli.BoolFlag{
						Name:  "report",
						Usage: "Print the repair stage to stderr",
					},
					&cli.BoolFlag{
						Name:  "library",
						Usage: "Enable the general-purpose repair library stage",
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Analyze resumes and journal every repair",
				ArgsUsage: "FILE...",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Model service host URL",
						EnvVars: []string{"COMPASS_HOST"},
						Value:   "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "model",
						Usage:   "Model name",
						EnvVars: []string{"COMPASS_MODEL"},
						Value:   "qwen2.5:7b",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token",
						EnvVars: []string{"COMPASS_TOKEN"},
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory to write one analysis document per resume",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of resumes analyzed concurrently",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N resumes",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed model calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "journal",
				Usage:  "List recent repairs and per-stage counts",
				Action: journalCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of recent repairs to list",
						Value:   20,
					},
				},
			},
		},
	}
}

func repairCommand(c *cli.Context) error {
	var (
		raw []byte
		err error
	)
	if path := c.String("input"); path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = io.ReadAll(c.App.Reader)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var opts []repair.Option
	if c.Bool("library") {
		opts = append(opts, repair.WithLibraryStage())
	}
	engine, err := repair.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("failed to create repair engine: %w", err)
	}

	var parseErr error
	if msg := c.String("error"); msg != "" {
		parseErr = errors.New(msg)
	}

	res := engine.Diagnose(string(raw), parseErr)
	fmt.Fprintln(c.App.Writer, res.Text)

	if c.Bool("report") {
		fmt.Fprintf(c.App.ErrWriter, "stage: %s degraded: %t\n", res.Stage, res.Degraded)
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("no resume files given")
	}
	if c.Int("workers") <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	inputs := make([]analysis.Input, 0, len(files))
	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		inputs = append(inputs, analysis.Input{Source: path, Text: string(text)})
	}

	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
	}
	if token := c.String("token"); token != "" {
		opts = append(opts, ai.WithToken(token))
	}
	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	svc, err := compass.Open(c.String("db"), compass.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer svc.Close()

	pipeline, err := svc.NewPipeline(
		analysis.WithPoolSize(c.Int("workers")),
		analysis.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		analysis.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(c.App.ErrWriter, "Journal: %s\n", c.String("db"))
	fmt.Fprintf(c.App.ErrWriter, "Model host: %s\n", aiConfig.Host)
	fmt.Fprintf(c.App.ErrWriter, "Model: %s\n", aiConfig.Model)
	fmt.Fprintln(c.App.ErrWriter)

	outcomes, err := pipeline.AnalyzeAll(ctx, inputs)
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	return writeOutcomes(c.App.Writer, c.String("out"), outcomes)
}

// writeOutcomes prints one line per outcome and, when dir is set, writes each
// document to dir/<resume name>.json.
func writeOutcomes(w io.Writer, dir string, outcomes []analysis.Outcome) error {
	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\tfailed\t%v\n", o.Source, o.Err)
			continue
		}

		status := "ok"
		if o.SchemaErr != nil {
			status = "schema: " + o.SchemaErr.Error()
		}
		fmt.Fprintf(w, "%s\t%s\tdegraded=%t\troles=%s\t%s\n",
			o.Source, o.Analysis.Stage, o.Analysis.Degraded,
			strings.Join(o.Summary.RoleTitles, ","), status)

		if dir == "" {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(o.Source), filepath.Ext(o.Source)) + ".json"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(o.Analysis.Document), 0o644); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(outcomes))
	}
	return nil
}

func journalCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Int("limit") < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRepairRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	records, err := repo.GetRecentRepairs(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list repairs: %w", err)
	}
	counts, err := repo.CountByStage(ctx)
	if err != nil {
		return fmt.Errorf("failed to count repairs: %w", err)
	}

	w := c.App.Writer
	for _, r := range records {
		fmt.Fprintf(w, "%016x\t%s\t%s\tdegraded=%t\tattempts=%d\t%s\n",
			uint64(r.Id), r.UpdatedAt.Format(time.RFC3339), r.Stage, r.Degraded, r.Attempts, r.Source)
	}
	fmt.Fprintln(w)
	for _, sc := range counts {
		fmt.Fprintf(w, "%s: %d\n", sc.Stage, sc.Count)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
