package storage

import (
	"time"

	"jsonbench/internal/runner"
	"jsonbench/internal/summary"
)

// Run is one benchmark sweep as kept in history.
type Run struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Config      RunConfig       `json:"config"`
	Summary     summary.Summary `json:"summary"`
	Results     []runner.Result `json:"results"`
	Diagnostics int             `json:"diagnostics"`
}

// RunConfig records the settings a run was measured with.
type RunConfig struct {
	Runner   runner.Config `json:"runner"`
	Seed     int64         `json:"seed"`
	DataDir  string        `json:"data_dir"`
	Codecs   []string      `json:"codecs"`
	Disabled []string      `json:"disabled,omitempty"`
}

// RunSummary is the list view of a Run.
type RunSummary struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Files     int       `json:"files"`
	Libraries int       `json:"libraries"`
	Top       string    `json:"top"`
	TopMBs    float64   `json:"top_mb_s"`
	Speedup   *float64  `json:"speedup,omitempty"`
}

// Brief reduces r to its list view.
func (r Run) Brief() RunSummary {
	files := make(map[string]struct{})
	for _, res := range r.Results {
		files[res.File] = struct{}{}
	}
	s := RunSummary{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Files:     len(files),
		Libraries: len(r.Summary.Entries),
		Speedup:   r.Summary.Speedup,
	}
	if len(r.Summary.Entries) > 0 {
		s.Top = r.Summary.Entries[0].Library
		s.TopMBs = r.Summary.Entries[0].AverageThroughputMBs
	}
	return s
}
