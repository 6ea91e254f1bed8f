// Copyright 2025 Plant QA Systems
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/plantqa/qamatrix"
	"github.com/plantqa/qamatrix/ai"
	"github.com/plantqa/qamatrix/ai/openai"
	"github.com/plantqa/qamatrix/core"
	"github.com/plantqa/qamatrix/ingestion"
	"github.com/plantqa/qamatrix/match"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "qamatrix",
		Usage: "Match manufacturing defect reports against the QA concern matrix",
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
				Name:      "ingest",
				Usage:     "Parse, validate, and deduplicate defect report files into one cleaned CSV",
				ArgsUsage: "REPORT_CSV...",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Path of the cleaned output CSV",
						Value:   "cleaned.csv",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of report files parsed concurrently",
						Value: 4,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import a concern catalog CSV into the matrix database",
				ArgsUsage: "CATALOG_CSV",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
				},
			},
			{
				Name:      "match",
				Usage:     "Match defect reports against the stored concern catalog",
				ArgsUsage: "REPORT_CSV...",
				Action:    matchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Matching mode: local (lexical) or ai (semantic service with local fallback)",
						Value: "local",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Path of the per-defect match output CSV",
						Value:   "matches.csv",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum lexical score for a local match",
						Value: match.DefaultThreshold,
					},
					&cli.Float64Flag{
						Name:  "confidence",
						Usage: "Minimum confidence for a match to count toward repeats",
						Value: match.DefaultConfidenceThreshold,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of defects sent to the matching service per request",
						Value: match.DefaultBatchSize,
					},
					&cli.StringFlag{
						Name:    "gateway",
						Usage:   "Base URL of the OpenAI-compatible matching gateway",
						EnvVars: []string{"QAMATRIX_GATEWAY"},
					},
					&cli.StringFlag{
						Name:    "model",
						Usage:   "Model identifier requested from the gateway",
						EnvVars: []string{"QAMATRIX_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Bearer credential for the matching gateway",
						EnvVars: []string{"QAMATRIX_API_KEY"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-batch request timeout",
						Value: 120 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "record",
						Usage: "Fold the aggregated repeat counts into the stored matrix",
					},
				},
			},
			{
				Name:      "record",
				Usage:     "Apply a matches CSV to the stored matrix's newest week",
				ArgsUsage: "MATCHES_CSV",
				Action:    recordCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Float64Flag{
						Name:  "confidence",
						Usage: "Minimum confidence for a match to count toward repeats",
						Value: match.DefaultConfidenceThreshold,
					},
				},
			},
			{
				Name:   "shift-week",
				Usage:  "Advance every concern's recurrence window by one week",
				Action: shiftWeekCommand,
				Flags: []cli.Flag{
					dbFlag(),
				},
			},
			{
				Name:   "rate",
				Usage:  "Recalculate ratings and statuses and print the per-designation report",
				Action: rateCommand,
				Flags: []cli.Flag{
					dbFlag(),
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the matrix database directory",
		Required: true,
	}
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadReports runs the ingestion pipeline over the command's file
// arguments and returns the merged, deduplicated defect list.
func loadReports(c *cli.Context, workers int) ([]core.Defect, error) {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one report file is required")
	}

	pipeline, err := ingestion.NewPipeline(ingestion.WithPoolSize(workers))
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	results := pipeline.LoadFiles(paths)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", r.Path, r.Err)
			continue
		}
		for _, w := range r.Validation.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", r.Path, w)
		}
		for _, e := range r.Validation.Errors {
			fmt.Fprintf(os.Stderr, "dropped: %s: %s\n", r.Path, e)
		}
	}

	defects := pipeline.Merge(results)
	if len(defects) == 0 {
		return nil, fmt.Errorf("no usable defect records in %d file(s)", len(paths))
	}
	return defects, nil
}

func ingestCommand(c *cli.Context) error {
	defects, err := loadReports(c, c.Int("workers"))
	if err != nil {
		return err
	}

	outPath := c.String("out")
	if err := writeDefectsCSV(outPath, defects); err != nil {
		return fmt.Errorf("failed to write cleaned report: %w", err)
	}

	fmt.Printf("Wrote %d cleaned defect record(s) to %s\n", len(defects), outPath)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one catalog file is required")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := readCatalogCSV(f)
	if err != nil {
		return err
	}

	m, err := qamatrix.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer m.Close()

	serials, err := m.ImportCatalog(context.Background(), entries)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	fmt.Printf("Imported %d concern(s) into %s\n", len(serials), c.String("db"))
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	defects, err := loadReports(c, 4)
	if err != nil {
		return err
	}

	m, err := qamatrix.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer m.Close()

	concerns, err := m.Concerns(ctx)
	if err != nil {
		return fmt.Errorf("failed to load concern catalog: %w", err)
	}

	local := match.NewLocalMatcher(nil, c.Float64("threshold"))

	var results []core.MatchResult
	var stats match.BatchStats
	switch mode := c.String("mode"); mode {
	case "local":
		results, err = local.Match(defects, concerns)
	case "ai":
		config := ai.NewConfig(
			ai.WithGateway(c.String("gateway")),
			ai.WithModel(c.String("model")),
			ai.WithAPIKey(c.String("api-key")),
			ai.WithTimeout(c.Duration("timeout")),
		)
		var service ai.ConcernMatcher
		service, err = openai.NewMatcher(config)
		if err != nil {
			return fmt.Errorf("invalid matching service configuration: %w", err)
		}
		remote := match.NewRemoteMatcher(service, local, c.Int("batch-size"))
		results, stats, err = remote.Match(ctx, defects, concerns)
	default:
		return fmt.Errorf("invalid mode %q: must be local or ai", mode)
	}
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	aggregated, unmatched := match.Aggregate(results, defects, concerns, c.Float64("confidence"))

	outPath := c.String("out")
	if err := writeMatchesCSV(outPath, results, defects, concerns); err != nil {
		return fmt.Errorf("failed to write match output: %w", err)
	}

	printMatchSummary(results, aggregated, unmatched, stats, outPath)

	if c.Bool("record") {
		updated, err := m.RecordMatches(ctx, aggregated)
		if err != nil {
			return fmt.Errorf("failed to record matches: %w", err)
		}
		fmt.Printf("Recorded repeats for %d concern(s)\n", updated)
	}
	return nil
}

func printMatchSummary(results []core.MatchResult, aggregated []core.AggregatedMatch, unmatched []core.Defect, stats match.BatchStats, outPath string) {
	matched := 0
	for i := range results {
		if results[i].Matched() {
			matched++
		}
	}

	fmt.Println(renderTable(
		[]string{"Defects", "Matched", "Unmatched", "Concerns hit", "Remote batches", "Fallback batches"},
		[][]string{{
			strconv.Itoa(len(results)),
			strconv.Itoa(matched),
			strconv.Itoa(len(unmatched)),
			strconv.Itoa(len(aggregated)),
			strconv.Itoa(stats.RemoteBatches),
			strconv.Itoa(stats.FallbackBatches),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))

	top := aggregated
	if len(top) > 10 {
		top = top[:10]
	}
	if len(top) == 0 {
		fmt.Printf("No matches above the confidence threshold. Details in %s\n", outPath)
		return
	}

	rows := make([][]string, 0, len(top))
	for _, a := range top {
		rows = append(rows, []string{
			strconv.Itoa(int(a.SerialNo)),
			a.Concern,
			strconv.Itoa(a.RepeatCount),
			strconv.FormatFloat(a.AvgConfidence, 'f', 2, 64),
		})
	}
	fmt.Println(renderTable(
		[]string{"Serial", "Concern", "Repeats", "Avg confidence"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
	))
	fmt.Printf("Per-defect details in %s\n", outPath)
}

func recordCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one matches file is required")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	aggregated, err := readMatchesCSV(f, c.Float64("confidence"))
	if err != nil {
		return err
	}

	m, err := qamatrix.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer m.Close()

	updated, err := m.RecordMatches(context.Background(), aggregated)
	if err != nil {
		return fmt.Errorf("failed to record matches: %w", err)
	}

	fmt.Printf("Recorded repeats for %d concern(s)\n", updated)
	return nil
}

func shiftWeekCommand(c *cli.Context) error {
	m, err := qamatrix.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer m.Close()

	if err := m.ShiftWeek(context.Background()); err != nil {
		return fmt.Errorf("failed to shift recurrence window: %w", err)
	}

	fmt.Println("Recurrence window advanced by one week")
	return nil
}

func rateCommand(c *cli.Context) error {
	ctx := context.Background()

	m, err := qamatrix.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer m.Close()

	summary, err := m.Recalculate(ctx)
	if err != nil {
		return fmt.Errorf("failed to recalculate ratings: %w", err)
	}

	fmt.Println(renderTable(
		[]string{"Concerns", "Workstation NG", "MFG NG", "Plant NG", "Critical"},
		[][]string{{
			strconv.Itoa(summary.Total),
			strconv.Itoa(summary.WorkstationNG),
			strconv.Itoa(summary.MFGNG),
			strconv.Itoa(summary.PlantNG),
			strconv.Itoa(summary.Critical),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	))

	report, err := m.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if len(report) == 0 {
		return nil
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].PlantNGPct > report[j].PlantNGPct
	})

	rows := make([][]string, 0, len(report))
	for _, r := range report {
		rows = append(rows, []string{
			r.Designation,
			strconv.Itoa(r.TotalConcerns),
			strconv.Itoa(r.WorkstationNG),
			strconv.Itoa(r.MFGNG),
			strconv.Itoa(r.PlantNG),
			strconv.FormatFloat(r.PlantNGPct, 'f', 1, 64) + "%",
			strconv.FormatFloat(r.AvgDefectRating, 'f', 1, 64),
			strconv.Itoa(r.TotalRecurrence),
		})
	}
	fmt.Println(renderTable(
		[]string{"Designation", "Concerns", "WS NG", "MFG NG", "Plant NG", "Plant NG %", "Avg rating", "Recurrence"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}
