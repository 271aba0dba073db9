package corpus

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
)

// ErrNoCorpus is returned when a benchmark is asked to run without any
// generated input files.
var ErrNoCorpus = errors.New("no corpus files found")

type Category string

const (
	CategoryAPIResponse Category = "api_response"
	CategoryNumbers     Category = "numbers"
	CategoryStrings     Category = "strings"
	CategoryNested      Category = "nested"
	CategoryTwitter     Category = "twitter"
	CategoryPretty      Category = "pretty"
	CategoryEdge        Category = "edge"
)

// SizeTarget names one entry of the size schedule.
type SizeTarget struct {
	Label string `mapstructure:"label" json:"label"`
	Bytes int    `mapstructure:"bytes" json:"bytes"`
}

// DefaultSizes spans 1 KB to 10 MB in orders of magnitude.
var DefaultSizes = []SizeTarget{
	{Label: "1kb", Bytes: 1 << 10},
	{Label: "10kb", Bytes: 10 << 10},
	{Label: "100kb", Bytes: 100 << 10},
	{Label: "1mb", Bytes: 1 << 20},
	{Label: "10mb", Bytes: 10 << 20},
}

// Spec drives the generation of one size-targeted document. The same Spec
// always yields the same bytes.
type Spec struct {
	Category    Category
	SizeLabel   string
	TargetBytes int
	Tolerance   float64
	Seed        int64
}

// SeedFor derives the seed of one corpus file from the corpus seed and the
// file name, so every file can be regenerated on its own.
func SeedFor(base int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return base ^ int64(h.Sum64())
}

func (s Spec) Validate() error {
	if s.TargetBytes < 0 {
		return fmt.Errorf("target bytes must be >= 0, got %d", s.TargetBytes)
	}
	if s.Tolerance <= 0 || s.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in (0,1), got %v", s.Tolerance)
	}
	return nil
}

// File is one generated corpus document. It is never modified after the
// generator returns it.
type File struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	SizeLabel string   `json:"size_label"`
	ByteSize  int      `json:"byte_size"`
	Pretty    bool     `json:"pretty"`
	InBand    bool     `json:"in_band"`
	Data      []byte   `json:"-"`
}

// FileName encodes category and size label, e.g. "numbers_10kb.json".
func FileName(category Category, label string) string {
	if label == "" {
		return string(category) + ".json"
	}
	return fmt.Sprintf("%s_%s.json", category, label)
}

// ParseFileName recovers category and label from a corpus file name. Names
// that do not follow the scheme come back as CategoryEdge with the stem as
// the label.
func ParseFileName(name string) (Category, string) {
	stem := strings.TrimSuffix(name, ".json")
	for _, c := range []Category{CategoryAPIResponse, CategoryNumbers, CategoryStrings, CategoryNested, CategoryTwitter, CategoryPretty} {
		if label, ok := strings.CutPrefix(stem, string(c)+"_"); ok {
			return c, label
		}
	}
	return CategoryEdge, stem
}
