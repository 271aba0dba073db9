package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jsonbench/internal/cli"
	"jsonbench/internal/codec"
	"jsonbench/internal/export"
	"jsonbench/internal/runner"
	"jsonbench/internal/storage"
	"jsonbench/internal/summary"
	"jsonbench/internal/tui/app"
)

var reportFromSQLite bool

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Browse recorded runs in the terminal UI",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := storage.Open(s.History)
		if err != nil {
			return err
		}
		defer store.Close()

		m := app.NewModel(store, s.ResultsDir)
		if len(args) == 1 {
			if err := m.Open(args[0]); err != nil {
				return err
			}
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running history browser: %w", err)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Print a recorded run (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := storage.Open(s.History)
		if err != nil {
			return err
		}
		defer store.Close()

		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		dbPath := ""
		if reportFromSQLite {
			dbPath = filepath.Join(s.ResultsDir, sqliteFile)
		}
		return printReport(cmd.Context(), store, id, dbPath, cmd.OutOrStdout())
	},
}

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List codecs and whether they can run here",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		printCodecs(codec.NewDefaultRegistry(s.Disabled...), cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(codecsCmd)

	reportCmd.Flags().BoolVar(&reportFromSQLite, "sqlite", false, "read the run's results from the SQLite export instead of history")
}

// printReport prints a recorded run. With a non-empty dbPath the results and
// summary come from the SQLite export rather than the history record.
func printReport(ctx context.Context, store *storage.Store, id, dbPath string, out io.Writer) error {
	var (
		run *storage.Run
		err error
	)
	if id == "" {
		run, err = store.Latest()
	} else {
		run, err = store.Get(id)
	}
	if errors.Is(err, storage.ErrNotFound) && id == "" {
		return fmt.Errorf("no runs recorded yet; run `jsonbench bench` first")
	}
	if err != nil {
		return err
	}

	results, sum := run.Results, run.Summary
	if dbPath != "" {
		if results, err = sqliteResults(ctx, dbPath, run.ID); err != nil {
			return err
		}
		sum = summary.Summarize(results, run.Summary.Baseline, run.Summary.Fast)
	}

	fmt.Fprintf(out, "Run %s at %s\n", run.ID, run.Timestamp.Format("2006-01-02 15:04:05"))
	p := cli.NewPrinter(out, 0)
	for _, r := range results {
		p.OnResult(r)
	}
	p.Summary(sum, run.Diagnostics)
	return nil
}

func sqliteResults(ctx context.Context, path, runID string) ([]runner.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	sink, err := export.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	results, err := sink.Results(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("run %s has no rows in %s", runID, path)
	}
	return results, nil
}

func printCodecs(reg *codec.Registry, out io.Writer) {
	for _, st := range reg.Status() {
		state := "available"
		if !st.Available {
			state = "unavailable: " + st.Reason
		}
		fmt.Fprintf(out, "  %-20s %s\n", st.Name, state)
	}
}
