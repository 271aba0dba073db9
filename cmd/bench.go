package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jsonbench/internal/cli"
	"jsonbench/internal/codec"
	"jsonbench/internal/corpus"
	"jsonbench/internal/export"
	"jsonbench/internal/metrics"
	"jsonbench/internal/runner"
	"jsonbench/internal/storage"
	"jsonbench/internal/summary"
)

var noHistory bool

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark every available codec on the corpus",
	Long: `Bench loads the corpus from the data directory and times parse and
serialize for every available codec on every file. Results are printed as
they arrive and written to the results directory as CSV, a JSON summary, a
SQLite table and a Prometheus textfile. The run is also kept in history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		_, err = runBench(cmd.Context(), s, cmd.OutOrStdout(), !noHistory)
		return err
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	f := benchCmd.Flags()
	f.Int("warmup", runner.DefaultWarmupIterations, "untimed iterations per codec and file")
	f.Int("iterations", runner.DefaultIterations, "timed iterations per codec and file")
	f.Int64("max-file-bytes", runner.DefaultMaxFileBytes, "skip corpus files larger than this")
	f.String("baseline", codec.NameStdlib, "library speedups are measured against")
	f.String("fast", codec.NameSonic, "library whose speedup is reported")
	f.StringSlice("disable", nil, "codecs to leave out")
	f.BoolVar(&noHistory, "no-history", false, "do not record the run in history")

	bindFlag(f.Lookup("warmup"), keyWarmup)
	bindFlag(f.Lookup("iterations"), keyIterations)
	bindFlag(f.Lookup("max-file-bytes"), keyMaxFileBytes)
	bindFlag(f.Lookup("baseline"), keyBaseline)
	bindFlag(f.Lookup("fast"), keyFast)
	bindFlag(f.Lookup("disable"), keyDisabled)
}

func runBench(ctx context.Context, s settings, out io.Writer, keepHistory bool) (*storage.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := corpus.NewStore(s.DataDir).LoadAll()
	if err != nil {
		if errors.Is(err, corpus.ErrNoCorpus) {
			return nil, fmt.Errorf("%w; run `jsonbench generate` first", err)
		}
		return nil, err
	}

	reg := codec.NewDefaultRegistry(s.Disabled...)
	for _, name := range []string{s.Baseline, s.Fast} {
		if err := reg.Available(name); err != nil {
			slog.Warn("speedup library will have no results", "codec", name, "reason", err)
		}
	}

	printer := cli.NewPrinter(out, len(files))
	printer.Header(s.Runner, reg.Status())

	rec := metrics.NewRecorder()
	r := runner.NewRunner(s.Runner, runner.Observers{printer, rec})
	results, err := r.RunAll(files, reg.Adapters())
	if err != nil {
		return nil, err
	}

	slog.Info("benchmark finished",
		"files", r.Stats.Files,
		"oversized", r.Stats.Oversized,
		"measured", r.Stats.Measured,
		"skipped", r.Stats.Skipped,
		"failure_pct", r.Stats.FailureRate(),
		"bytes", r.Stats.Bytes)

	sum := summary.Summarize(results, s.Baseline, s.Fast)
	printer.Summary(sum, len(r.Diagnostics))
	rec.ObserveSummary(sum)

	id, err := storage.NewID()
	if err != nil {
		return nil, err
	}
	run := &storage.Run{
		ID:        id,
		Timestamp: time.Now(),
		Config: storage.RunConfig{
			Runner:   s.Runner,
			Seed:     s.Corpus.Seed,
			DataDir:  s.DataDir,
			Codecs:   availableNames(reg),
			Disabled: s.Disabled,
		},
		Summary:     sum,
		Results:     results,
		Diagnostics: len(r.Diagnostics),
	}

	if err := writeOutputs(ctx, s.ResultsDir, run, r.Diagnostics, rec); err != nil {
		return run, err
	}
	fmt.Fprintf(out, "\nResults saved to: %s\n", filepath.Join(s.ResultsDir, csvFile))

	if keepHistory {
		if err := saveRun(s.History, run); err != nil {
			return run, err
		}
		fmt.Fprintf(out, "Run %s recorded in %s\n", run.ID, s.History)
	}
	return run, nil
}

func writeOutputs(ctx context.Context, dir string, run *storage.Run, diags []runner.Diagnostic, rec *metrics.Recorder) error {
	if err := export.ExportCSV(run.Results, filepath.Join(dir, csvFile)); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	report := export.Report{
		GeneratedAt: run.Timestamp,
		Config:      run.Config.Runner,
		Summary:     run.Summary,
		Results:     run.Results,
		Diagnostics: export.Diagnostics(diags),
	}
	if err := export.ExportJSON(report, filepath.Join(dir, summaryFile)); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	sink, err := export.OpenSQLite(filepath.Join(dir, sqliteFile))
	if err != nil {
		return err
	}
	defer sink.Close()
	if err := sink.Write(ctx, run.ID, run.Timestamp, run.Results); err != nil {
		return fmt.Errorf("export sqlite: %w", err)
	}

	if err := rec.WriteTextfile(filepath.Join(dir, metricsFile)); err != nil {
		return fmt.Errorf("export metrics: %w", err)
	}
	return nil
}

func saveRun(path string, run *storage.Run) error {
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(run)
}

func availableNames(reg *codec.Registry) []string {
	var names []string
	for _, st := range reg.Status() {
		if st.Available {
			names = append(names, st.Name)
		}
	}
	return names
}
