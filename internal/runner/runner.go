// Package runner times codec adapters against corpus files.
//
// Measurement is strictly sequential: one file, one adapter and one
// operation at a time, so codecs never compete for the scheduler while
// being timed.
package runner

import (
	"fmt"
	"log/slog"
	"time"

	"jsonbench/internal/codec"
	"jsonbench/internal/corpus"
	"jsonbench/internal/stats"
)

const (
	opParse     = "parse"
	opSerialize = "serialize"
)

type Runner struct {
	Cfg         Config
	Stats       *stats.Stats
	Results     []Result
	Diagnostics []Diagnostic

	observer Observer
	now      func() time.Time
}

// NewRunner returns a Runner. observer may be nil.
func NewRunner(cfg Config, observer Observer) *Runner {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.WarmupIterations < 0 {
		cfg.WarmupIterations = 0
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Runner{
		Cfg:      cfg,
		Stats:    stats.NewStats(),
		observer: observer,
		now:      time.Now,
	}
}

// RunAll starts a fresh sweep and benchmarks every file against every
// adapter, in order. It fails only when there is nothing to benchmark;
// codec errors are collected in Diagnostics.
func (r *Runner) RunAll(files []corpus.File, adapters []codec.Adapter) ([]Result, error) {
	if len(files) == 0 {
		return nil, corpus.ErrNoCorpus
	}
	r.Stats.Reset()
	r.Results, r.Diagnostics = nil, nil

	for _, f := range files {
		if r.Cfg.MaxFileBytes > 0 && int64(len(f.Data)) > r.Cfg.MaxFileBytes {
			slog.Info("skipping oversized file", "file", f.Name, "bytes", len(f.Data), "limit", r.Cfg.MaxFileBytes)
			r.Stats.Oversized++
			r.observer.OnSkip(f.Name, int64(len(f.Data)))
			continue
		}
		r.Run(f, adapters)
	}
	return r.Results, nil
}

// Run benchmarks one file against each adapter. Unavailable adapters are
// skipped and produce no result. A failing adapter produces a Diagnostic
// and no result; the remaining adapters still run.
func (r *Runner) Run(file corpus.File, adapters []codec.Adapter) []Result {
	size := int64(len(file.Data))
	r.Stats.Files++
	r.observer.OnFile(file.Name, size)

	var out []Result
	for _, a := range adapters {
		if err := a.Available(); err != nil {
			r.Stats.Skipped++
			slog.Debug("skipping unavailable codec", "codec", a.Name(), "file", file.Name, "reason", err)
			continue
		}

		res, diag := r.measure(file, a)
		if diag != nil {
			r.Stats.Failed++
			r.Diagnostics = append(r.Diagnostics, *diag)
			slog.Warn("codec failed", "codec", diag.Library, "file", diag.File, "op", diag.Op, "error", diag.Err)
			r.observer.OnDiagnostic(*diag)
			continue
		}

		r.Stats.Measured++
		r.Stats.Bytes += size
		r.Results = append(r.Results, res)
		out = append(out, res)
		r.observer.OnResult(res)
	}
	return out
}

// measure runs warmup and timed iterations of one adapter on one file. The
// adapter serializes the value its own Parse produced.
func (r *Runner) measure(file corpus.File, a codec.Adapter) (res Result, diag *Diagnostic) {
	op := opParse
	fail := func(err error) *Diagnostic {
		return &Diagnostic{Library: a.Name(), File: file.Name, Op: op, Err: err}
	}
	defer func() {
		if p := recover(); p != nil {
			res = Result{}
			diag = fail(fmt.Errorf("panic: %v", p))
		}
	}()

	data := file.Data
	value, err := a.Parse(data)
	if err != nil {
		return Result{}, fail(err)
	}

	for i := 0; i < r.Cfg.WarmupIterations; i++ {
		op = opParse
		if _, err := a.Parse(data); err != nil {
			return Result{}, fail(err)
		}
		op = opSerialize
		if _, err := a.Serialize(value); err != nil {
			return Result{}, fail(err)
		}
	}

	parse, serialize := r.Stats.Parse, r.Stats.Serialize
	parse.Reset()
	serialize.Reset()

	op = opParse
	for i := 0; i < r.Cfg.Iterations; i++ {
		start := r.now()
		_, err := a.Parse(data)
		parse.Record(r.now().Sub(start))
		if err != nil {
			return Result{}, fail(err)
		}
	}

	op = opSerialize
	for i := 0; i < r.Cfg.Iterations; i++ {
		start := r.now()
		_, err := a.Serialize(value)
		serialize.Record(r.now().Sub(start))
		if err != nil {
			return Result{}, fail(err)
		}
	}

	size := int64(len(data))
	parseMs := parse.MeanMs()
	return Result{
		Library:         a.Name(),
		File:            file.Name,
		FileSizeBytes:   size,
		ParseTimeMs:     parseMs,
		SerializeTimeMs: serialize.MeanMs(),
		ThroughputMBs:   Throughput(size, parseMs),
		ParseP50Ms:      parse.QuantileMs(50),
		ParseP99Ms:      parse.QuantileMs(99),
		Iterations:      r.Cfg.Iterations,
	}, nil
}

// Throughput converts a parse time into MB/s (MB = 2^20 bytes). A zero
// parse time yields zero rather than infinity.
func Throughput(sizeBytes int64, parseMs float64) float64 {
	if parseMs <= 0 {
		return 0
	}
	return (float64(sizeBytes) / 1024 / 1024) / (parseMs / 1000)
}

type nopObserver struct{}

func (nopObserver) OnFile(string, int64)    {}
func (nopObserver) OnSkip(string, int64)    {}
func (nopObserver) OnResult(Result)         {}
func (nopObserver) OnDiagnostic(Diagnostic) {}
