// Package cli prints benchmark progress and the final summary for headless
// runs.
package cli

import (
	"fmt"
	"io"
	"strings"

	"jsonbench/internal/codec"
	"jsonbench/internal/runner"
	"jsonbench/internal/summary"
	"jsonbench/internal/tui/styles"
)

const (
	rule     = "================================================================================"
	thinRule = "--------------------------------------------------------------------------------"
)

// Printer is a runner.Observer that writes one table row per result.
type Printer struct {
	out   io.Writer
	total int
	seen  int
}

// NewPrinter returns a Printer for a corpus of total files.
func NewPrinter(out io.Writer, total int) *Printer {
	return &Printer{out: out, total: total}
}

// Header prints the run configuration and the table heading.
func (p *Printer) Header(cfg runner.Config, statuses []codec.Status) {
	var libs, off []string
	for _, s := range statuses {
		if s.Available {
			libs = append(libs, s.Name)
		} else {
			off = append(off, s.Name+" ("+s.Reason+")")
		}
	}

	fmt.Fprintf(p.out, "\n🚀 JSON CODEC BENCHMARK\n")
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "Libraries  : %s\n", strings.Join(libs, ", "))
	if len(off) > 0 {
		fmt.Fprintf(p.out, "Unavailable: %s\n", styles.Warn.Render(strings.Join(off, ", ")))
	}
	fmt.Fprintf(p.out, "Iterations : %d (warmup: %d)\n", cfg.Iterations, cfg.WarmupIterations)
	fmt.Fprintf(p.out, "Files      : %d\n\n", p.total)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "%-30s %10s %-14s %10s %10s %10s\n", "File", "Size", "Library", "Parse", "Serialize", "MB/s")
	fmt.Fprintln(p.out, rule)
}

func (p *Printer) OnFile(name string, size int64) {
	if p.seen > 0 {
		fmt.Fprintln(p.out, thinRule)
	}
	p.seen++
	if p.total > 0 {
		pct := float64(p.seen) / float64(p.total)
		fmt.Fprintf(p.out, "%s %3.0f%% %s\n", progressBar(pct, 20), pct*100, styles.Subtle.Render(name))
	}
}

func (p *Printer) OnSkip(name string, size int64) {
	p.seen++
	fmt.Fprintf(p.out, "%-30s %10s %s\n", name, FormatSize(size), styles.Warn.Render("SKIPPED (too large)"))
}

func (p *Printer) OnResult(r runner.Result) {
	fmt.Fprintf(p.out, "%-30s %10s %-14s %9.3fms %9.3fms %10.1f\n",
		r.File, FormatSize(r.FileSizeBytes), r.Library, r.ParseTimeMs, r.SerializeTimeMs, r.ThroughputMBs)
}

func (p *Printer) OnDiagnostic(d runner.Diagnostic) {
	fmt.Fprintf(p.out, "%-30s %-14s %s\n", d.File, d.Library, styles.Error.Render("ERROR: "+d.Op+": "+errString(d.Err)))
}

// Summary prints per-library averages and the fast-over-baseline speedup.
func (p *Printer) Summary(s summary.Summary, diagnostics int) {
	fmt.Fprintln(p.out, thinRule)
	fmt.Fprintf(p.out, "\n📊 SUMMARY: Average Parse Throughput (MB/s)\n")
	fmt.Fprintln(p.out, rule[:60])

	if len(s.Entries) == 0 {
		fmt.Fprintln(p.out, styles.Subtle.Render("  no measured results"))
	}
	for _, e := range s.Entries {
		fmt.Fprintf(p.out, "  %-14s: %s MB/s  (%d files)\n", e.Library, styles.Value.Render(fmt.Sprintf("%8.1f", e.AverageThroughputMBs)), e.Files)
	}

	if s.Speedup != nil {
		fmt.Fprintf(p.out, "\n  %s is %s faster than %s\n", s.Fast, styles.Success.Render(fmt.Sprintf("%.1fx", *s.Speedup)), s.Baseline)
	}
	if diagnostics > 0 {
		fmt.Fprintf(p.out, "\n❌ %s\n", styles.Error.Render(fmt.Sprintf("%d measurements failed", diagnostics)))
	}
	fmt.Fprintln(p.out, rule[:60])
}

// FormatSize renders bytes as KB below one MiB and MB above.
func FormatSize(n int64) string {
	if n < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1fMB", float64(n)/1024/1024)
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
