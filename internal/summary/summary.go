// Package summary aggregates benchmark results into per-library averages
// and speedup ratios.
package summary

import (
	"sort"

	"jsonbench/internal/runner"
)

// Entry is one library's average across every file it was measured on.
type Entry struct {
	Library              string   `json:"library"`
	AverageThroughputMBs float64  `json:"average_throughput_mb_s"`
	AverageParseMs       float64  `json:"average_parse_ms"`
	AverageSerializeMs   float64  `json:"average_serialize_ms"`
	Files                int      `json:"files"`
	SpeedupVsBaseline    *float64 `json:"speedup_vs_baseline,omitempty"`
}

// Summary is derived from a result set and recomputed on every call; it is
// never stored on its own.
type Summary struct {
	Entries  []Entry  `json:"entries"`
	Baseline string   `json:"baseline"`
	Fast     string   `json:"fast"`
	Speedup  *float64 `json:"speedup,omitempty"` // Fast over Baseline
}

// Summarize groups results by library in first-seen order, drops
// unmeasured results, averages throughput and sorts libraries by
// descending average. Ties keep first-seen order.
func Summarize(results []runner.Result, baseline, fast string) Summary {
	type acc struct {
		throughput, parse, serialize float64
		n                            int
	}

	var order []string
	groups := make(map[string]*acc)
	for _, r := range results {
		if !r.Measured() {
			continue
		}
		g, ok := groups[r.Library]
		if !ok {
			g = &acc{}
			groups[r.Library] = g
			order = append(order, r.Library)
		}
		g.throughput += r.ThroughputMBs
		g.parse += r.ParseTimeMs
		g.serialize += r.SerializeTimeMs
		g.n++
	}

	entries := make([]Entry, 0, len(order))
	for _, lib := range order {
		g := groups[lib]
		n := float64(g.n)
		entries = append(entries, Entry{
			Library:              lib,
			AverageThroughputMBs: g.throughput / n,
			AverageParseMs:       g.parse / n,
			AverageSerializeMs:   g.serialize / n,
			Files:                g.n,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageThroughputMBs > entries[j].AverageThroughputMBs
	})

	if base, ok := find(entries, baseline); ok && base.AverageThroughputMBs > 0 {
		for i := range entries {
			ratio := entries[i].AverageThroughputMBs / base.AverageThroughputMBs
			entries[i].SpeedupVsBaseline = &ratio
		}
	}

	s := Summary{Entries: entries, Baseline: baseline, Fast: fast}
	if ratio, ok := Speedup(entries, baseline, fast); ok {
		s.Speedup = &ratio
	}
	return s
}

// Speedup returns fast's average throughput over baseline's. ok is false
// when either library has no results or the baseline average is zero; no
// ratio is reported then.
func Speedup(entries []Entry, baseline, fast string) (ratio float64, ok bool) {
	base, okBase := find(entries, baseline)
	f, okFast := find(entries, fast)
	if !okBase || !okFast || base.AverageThroughputMBs == 0 {
		return 0, false
	}
	return f.AverageThroughputMBs / base.AverageThroughputMBs, true
}

func find(entries []Entry, library string) (Entry, bool) {
	for _, e := range entries {
		if e.Library == library {
			return e, true
		}
	}
	return Entry{}, false
}
