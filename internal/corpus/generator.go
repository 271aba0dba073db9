// Package corpus builds the benchmark input set: size-targeted documents
// for each category, a handful of fixed realistic and edge-case documents,
// and the directory store they are written to and loaded from.
package corpus

import (
	"fmt"
	"log/slog"

	"jsonbench/internal/adjust"
	"jsonbench/internal/document"
	"jsonbench/internal/templates"
)

// Approximate compact size of one region element per category, used to
// pick a starting element count close to the target.
const (
	flatRecordBytes  = 250
	numberPointBytes = 100
	textRecordBytes  = 1000
	nestedDepthBytes = 10000
	maxNestedDepth   = 10
	minNestedDepth   = 3
	feedItems        = 100
	prettyItems      = 100
	prettyIndent     = "  "
)

// Categories are generated in this order for every size label.
var Categories = []Category{CategoryAPIResponse, CategoryNumbers, CategoryStrings, CategoryNested}

type Config struct {
	Seed      int64        `mapstructure:"seed"`
	Tolerance float64      `mapstructure:"tolerance"`
	Sizes     []SizeTarget `mapstructure:"sizes"`
}

func DefaultConfig() Config {
	return Config{
		Seed:      42,
		Tolerance: adjust.DefaultTolerance,
		Sizes:     DefaultSizes,
	}
}

// Generator produces corpus files. Each file draws from its own Source,
// seeded with SeedFor(cfg.Seed, name), so output does not depend on the
// order files are produced in.
type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = adjust.DefaultTolerance
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = DefaultSizes
	}
	return &Generator{cfg: cfg}
}

// Generate produces the whole corpus: every category at every size label
// (nested skips the largest), then the feed, the pretty-printed envelope
// and the edge cases.
func (g *Generator) Generate() ([]File, error) {
	var files []File

	largest := 0
	for _, s := range g.cfg.Sizes {
		largest = max(largest, s.Bytes)
	}

	for _, c := range Categories {
		for _, size := range g.cfg.Sizes {
			if c == CategoryNested && len(g.cfg.Sizes) > 1 && size.Bytes == largest {
				continue
			}
			f, err := g.GenerateSpec(Spec{
				Category:    c,
				SizeLabel:   size.Label,
				TargetBytes: size.Bytes,
				Tolerance:   g.cfg.Tolerance,
				Seed:        SeedFor(g.cfg.Seed, FileName(c, size.Label)),
			})
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}

	fixed, err := g.fixedFiles()
	if err != nil {
		return nil, err
	}
	return append(files, fixed...), nil
}

// GenerateSpec produces one size-targeted file.
func (g *Generator) GenerateSpec(spec Spec) (File, error) {
	if err := spec.Validate(); err != nil {
		return File{}, fmt.Errorf("%s/%s: %w", spec.Category, spec.SizeLabel, err)
	}

	var (
		doc     any
		factory adjust.Factory
	)
	src := templates.NewSource(spec.Seed)
	target := spec.TargetBytes
	switch spec.Category {
	case CategoryAPIResponse:
		doc = templates.Envelope(src, max(1, target/flatRecordBytes))
		factory = func() any { return templates.FlatRecord(src) }
	case CategoryNumbers:
		series := templates.NumberSeries(src, max(1, target/numberPointBytes))
		next := len(series)
		doc = series
		factory = func() any {
			p := templates.NumberPoint(src, next)
			next++
			return p
		}
	case CategoryStrings:
		doc = templates.StringHeavy(src, max(1, target/textRecordBytes))
		factory = func() any { return templates.TextRecord(src) }
	case CategoryNested:
		depth := min(maxNestedDepth, max(minNestedDepth, target/nestedDepthBytes))
		doc = templates.NestedConfig(src, depth)
	default:
		return File{}, fmt.Errorf("category %q has no size-targeted shape", spec.Category)
	}

	inBand := false
	if factory != nil {
		var (
			rep adjust.Report
			err error
		)
		doc, rep, err = adjust.Adjust(doc, target, spec.Tolerance, factory)
		if err != nil {
			return File{}, fmt.Errorf("adjust %s/%s: %w", spec.Category, spec.SizeLabel, err)
		}
		inBand = rep.InBand
		if !inBand {
			slog.Warn("document missed size band",
				"category", spec.Category,
				"label", spec.SizeLabel,
				"target", target,
				"bytes", rep.Bytes,
				"elements", rep.Elements)
		}
	}

	f, err := newFile(FileName(spec.Category, spec.SizeLabel), spec.Category, spec.SizeLabel, doc, false)
	if err != nil {
		return File{}, err
	}
	if factory == nil {
		lo, hi := adjust.Band(target, spec.Tolerance)
		inBand = float64(f.ByteSize) >= lo && float64(f.ByteSize) <= hi
	}
	f.InBand = inBand
	return f, nil
}

func (g *Generator) fixedFiles() ([]File, error) {
	type fixed struct {
		name     string
		category Category
		label    string
		pretty   bool
		build    func(src *templates.Source) any
	}

	specs := []fixed{
		{"twitter_100.json", CategoryTwitter, "100", false, func(src *templates.Source) any { return templates.Feed(src, feedItems) }},
		{"pretty_100kb.json", CategoryPretty, "100kb", true, func(src *templates.Source) any { return templates.Envelope(src, prettyItems) }},
		{"unicode_heavy.json", CategoryEdge, "unicode_heavy", false, func(src *templates.Source) any { return templates.UnicodeHeavy(src, 100, 100) }},
		{"escape_heavy.json", CategoryEdge, "escape_heavy", false, func(*templates.Source) any { return templates.EscapeHeavy(100) }},
		{"deep_arrays.json", CategoryEdge, "deep_arrays", false, func(*templates.Source) any { return templates.DeepArrays(100) }},
		{"many_keys.json", CategoryEdge, "many_keys", false, func(*templates.Source) any { return templates.ManyKeys(1000) }},
		{"large_integers.json", CategoryEdge, "large_integers", false, func(*templates.Source) any { return templates.LargeIntegers(1000) }},
		{"precise_floats.json", CategoryEdge, "precise_floats", false, func(*templates.Source) any { return templates.PreciseFloats(1000) }},
	}

	files := make([]File, 0, len(specs))
	for _, s := range specs {
		src := templates.NewSource(SeedFor(g.cfg.Seed, s.name))
		f, err := newFile(s.name, s.category, s.label, s.build(src), s.pretty)
		if err != nil {
			return nil, err
		}
		// no size target
		f.InBand = true
		files = append(files, f)
	}
	return files, nil
}

func newFile(name string, category Category, label string, doc any, pretty bool) (File, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = document.MarshalIndent(doc, prettyIndent)
	} else {
		data, err = document.Marshal(doc)
	}
	if err != nil {
		return File{}, fmt.Errorf("encode %s: %w", name, err)
	}
	return File{
		Name:      name,
		Category:  category,
		SizeLabel: label,
		ByteSize:  len(data),
		Pretty:    pretty,
		Data:      data,
	}, nil
}
