package corpus

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonbench/internal/adjust"
	"jsonbench/internal/document"
)

var smallSizes = []SizeTarget{
	{Label: "1kb", Bytes: 1 << 10},
	{Label: "10kb", Bytes: 10 << 10},
	{Label: "100kb", Bytes: 100 << 10},
}

func smallConfig(seed int64) Config {
	return Config{Seed: seed, Tolerance: 0.1, Sizes: smallSizes}
}

func TestEnvelopeHitsTenKilobytes(t *testing.T) {
	g := NewGenerator(Config{Seed: 42})
	f, err := g.GenerateSpec(Spec{
		Category:    CategoryAPIResponse,
		SizeLabel:   "10kb",
		TargetBytes: 10240,
		Tolerance:   0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, "api_response_10kb.json", f.Name)
	assert.GreaterOrEqual(t, f.ByteSize, 9216)
	assert.LessOrEqual(t, f.ByteSize, 11264)
	assert.True(t, f.InBand)

	doc, err := document.Unmarshal(f.Data)
	require.NoError(t, err)
	data, ok := doc.(*document.Object).Get("data")
	require.True(t, ok)
	assert.NotEmpty(t, data)
}

func TestGenerateSameSeedIsByteIdentical(t *testing.T) {
	a, err := NewGenerator(smallConfig(42)).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(smallConfig(42)).Generate()
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.True(t, bytes.Equal(a[i].Data, b[i].Data), "%s differs", a[i].Name)
	}

	c, err := NewGenerator(smallConfig(7)).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a[0].Data, c[0].Data)
}

func TestGenerateSpecRepeatsForSameSpec(t *testing.T) {
	spec := Spec{
		Category:    CategoryNumbers,
		SizeLabel:   "10kb",
		TargetBytes: 10 << 10,
		Tolerance:   0.1,
		Seed:        99,
	}
	g := NewGenerator(smallConfig(42))

	a, err := g.GenerateSpec(spec)
	require.NoError(t, err)
	b, err := g.GenerateSpec(spec)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Data, b.Data))

	c, err := NewGenerator(smallConfig(7)).GenerateSpec(spec)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Data, c.Data), "generator seed must not leak into a spec")

	spec.Seed = 100
	d, err := g.GenerateSpec(spec)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Data, d.Data))
}

func TestGenerateSpecMatchesFullCorpus(t *testing.T) {
	files, err := NewGenerator(smallConfig(42)).Generate()
	require.NoError(t, err)

	byName := make(map[string]File, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}

	g := NewGenerator(smallConfig(42))
	for _, c := range []Category{CategoryAPIResponse, CategoryNumbers, CategoryStrings, CategoryNested} {
		name := FileName(c, "1kb")
		f, err := g.GenerateSpec(Spec{
			Category:    c,
			SizeLabel:   "1kb",
			TargetBytes: 1 << 10,
			Tolerance:   0.1,
			Seed:        SeedFor(42, name),
		})
		require.NoError(t, err)
		want, ok := byName[name]
		require.True(t, ok, name)
		assert.True(t, bytes.Equal(want.Data, f.Data), "%s differs from the full corpus", name)
	}
}

func TestGenerateLayout(t *testing.T) {
	files, err := NewGenerator(smallConfig(1)).Generate()
	require.NoError(t, err)

	names := make(map[string]File, len(files))
	for _, f := range files {
		names[f.Name] = f
	}

	for _, want := range []string{
		"api_response_1kb.json", "api_response_100kb.json",
		"numbers_10kb.json", "strings_100kb.json",
		"nested_1kb.json", "nested_10kb.json",
		"twitter_100.json", "pretty_100kb.json",
		"unicode_heavy.json", "escape_heavy.json", "deep_arrays.json",
		"many_keys.json", "large_integers.json", "precise_floats.json",
	} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, "nested_100kb.json", "nested skips the largest label")

	assert.True(t, names["pretty_100kb.json"].Pretty)
	assert.Contains(t, string(names["pretty_100kb.json"].Data), "\n  ")
}

func TestSizeTargetedFilesAreInBandOrExhausted(t *testing.T) {
	files, err := NewGenerator(smallConfig(3)).Generate()
	require.NoError(t, err)

	for _, f := range files {
		switch f.Category {
		case CategoryAPIResponse, CategoryNumbers, CategoryStrings:
		default:
			continue
		}
		var target int
		for _, s := range smallSizes {
			if s.Label == f.SizeLabel {
				target = s.Bytes
			}
		}
		lo, hi := adjust.Band(target, 0.1)
		inBand := float64(f.ByteSize) >= lo && float64(f.ByteSize) <= hi
		assert.Equal(t, inBand, f.InBand, f.Name)
		if !inBand {
			doc, err := document.Unmarshal(f.Data)
			require.NoError(t, err)
			list, ok := doc.([]any)
			if !ok {
				v, _ := doc.(*document.Object).Get("data")
				list = v.([]any)
			}
			assert.Len(t, list, 1, "%s is out of band with elements left", f.Name)
		}
	}
}

func TestCorpusRoundTripsThroughReferenceCodec(t *testing.T) {
	files, err := NewGenerator(smallConfig(42)).Generate()
	require.NoError(t, err)

	for _, f := range files {
		doc, err := document.Unmarshal(f.Data)
		require.NoError(t, err, f.Name)

		once, err := document.Marshal(doc)
		require.NoError(t, err)
		again, err := document.Unmarshal(once)
		require.NoError(t, err)
		twice, err := document.Marshal(again)
		require.NoError(t, err)

		assert.Equal(t, string(once), string(twice), f.Name)
		if !f.Pretty {
			assert.Equal(t, string(f.Data), string(once), f.Name)
		}
	}
}

func TestSpecValidation(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	_, err := g.GenerateSpec(Spec{Category: CategoryNumbers, TargetBytes: -1, Tolerance: 0.1})
	assert.Error(t, err)
	_, err = g.GenerateSpec(Spec{Category: CategoryNumbers, TargetBytes: 10, Tolerance: 1})
	assert.Error(t, err)
	_, err = g.GenerateSpec(Spec{Category: CategoryTwitter, TargetBytes: 10, Tolerance: 0.1})
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.LoadAll()
	assert.ErrorIs(t, err, ErrNoCorpus)

	files, err := NewGenerator(Config{Seed: 1, Sizes: smallSizes[:1]}).Generate()
	require.NoError(t, err)
	for _, f := range files {
		require.NoError(t, store.Write(f))
	}

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, loaded, len(files))

	byName := make(map[string]File)
	for _, f := range loaded {
		byName[f.Name] = f
	}
	for _, f := range files {
		got := byName[f.Name]
		assert.Equal(t, f.Data, got.Data)
		assert.Equal(t, f.Category, got.Category, f.Name)
		assert.Equal(t, f.SizeLabel, got.SizeLabel, f.Name)
		assert.Equal(t, f.Pretty, got.Pretty, f.Name)
	}
}

func TestStoreMissingDirectory(t *testing.T) {
	store := NewStore(t.TempDir() + "/absent")
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.LoadAll()
	assert.ErrorIs(t, err, ErrNoCorpus)
}

func TestParseFileName(t *testing.T) {
	c, l := ParseFileName("api_response_10mb.json")
	assert.Equal(t, CategoryAPIResponse, c)
	assert.Equal(t, "10mb", l)

	c, l = ParseFileName("many_keys.json")
	assert.Equal(t, CategoryEdge, c)
	assert.Equal(t, "many_keys", l)
}
