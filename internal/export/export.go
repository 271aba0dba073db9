// Package export writes benchmark results to CSV, JSON and SQLite.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jsonbench/internal/runner"
	"jsonbench/internal/summary"
)

// Header is the CSV column layout. Downstream tooling reads these names.
var Header = []string{
	"library", "file", "file_size", "parse_time_ms", "serialize_time_ms", "throughput_mb_s",
}

// WriteCSV writes one row per measured result. Unmeasured results are
// skipped so the file never carries sentinel timings.
func WriteCSV(w io.Writer, results []runner.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Measured() {
			continue
		}
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r runner.Result) []string {
	return []string{
		r.Library,
		r.File,
		strconv.FormatInt(r.FileSizeBytes, 10),
		strconv.FormatFloat(r.ParseTimeMs, 'f', 3, 64),
		strconv.FormatFloat(r.SerializeTimeMs, 'f', 3, 64),
		strconv.FormatFloat(r.ThroughputMBs, 'f', 1, 64),
	}
}

// ExportCSV writes results to filename, creating parent directories.
func ExportCSV(results []runner.Result, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, results); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return f.Close()
}

// Report is the JSON document written next to the CSV.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Config      runner.Config      `json:"config"`
	Summary     summary.Summary    `json:"summary"`
	Results     []runner.Result    `json:"results"`
	Diagnostics []DiagnosticRecord `json:"diagnostics,omitempty"`
}

// DiagnosticRecord is the serializable form of a runner.Diagnostic.
type DiagnosticRecord struct {
	Library string `json:"library"`
	File    string `json:"file"`
	Op      string `json:"op"`
	Error   string `json:"error"`
}

// Diagnostics converts runner diagnostics for export.
func Diagnostics(diags []runner.Diagnostic) []DiagnosticRecord {
	out := make([]DiagnosticRecord, 0, len(diags))
	for _, d := range diags {
		rec := DiagnosticRecord{Library: d.Library, File: d.File, Op: d.Op}
		if d.Err != nil {
			rec.Error = d.Err.Error()
		}
		out = append(out, rec)
	}
	return out
}

// ExportJSON writes the report as indented JSON.
func ExportJSON(report Report, filename string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}
