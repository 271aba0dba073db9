package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonbench/internal/codec"
	"jsonbench/internal/corpus"
)

// fakeCodec counts calls and can be told to fail or panic on a given call.
type fakeCodec struct {
	name       string
	absent     bool
	failParse  int // fail on the n-th Parse call, 0 never
	panicOnSer bool
	parses     int
	serializes int
}

func (f *fakeCodec) Name() string { return f.name }

func (f *fakeCodec) Available() error {
	if f.absent {
		return codec.ErrUnavailable
	}
	return nil
}

func (f *fakeCodec) Parse(data []byte) (any, error) {
	f.parses++
	if f.failParse > 0 && f.parses == f.failParse {
		return nil, errors.New("boom")
	}
	return string(data), nil
}

func (f *fakeCodec) Serialize(v any) ([]byte, error) {
	f.serializes++
	if f.panicOnSer {
		panic("serializer exploded")
	}
	return []byte(v.(string)), nil
}

type recorder struct {
	files   []string
	skipped []string
	results []Result
	diags   []Diagnostic
}

func (r *recorder) OnFile(name string, _ int64) { r.files = append(r.files, name) }
func (r *recorder) OnSkip(name string, _ int64) { r.skipped = append(r.skipped, name) }
func (r *recorder) OnResult(res Result) { r.results = append(r.results, res) }
func (r *recorder) OnDiagnostic(d Diagnostic) { r.diags = append(r.diags, d) }

func oneKB() corpus.File {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = 'x'
	}
	return corpus.File{Name: "api_response_1kb.json", Data: data, ByteSize: len(data)}
}

func TestRunSkipsUnavailableAdapter(t *testing.T) {
	present := &fakeCodec{name: "present"}
	absent := &fakeCodec{name: "absent", absent: true}

	r := NewRunner(Config{WarmupIterations: 2, Iterations: 5}, nil)
	results := r.Run(oneKB(), []codec.Adapter{present, absent})

	require.Len(t, results, 1)
	assert.Equal(t, "present", results[0].Library)
	assert.Equal(t, int64(1024), results[0].FileSizeBytes)
	assert.Equal(t, 5, results[0].Iterations)
	assert.True(t, results[0].Measured())

	// 1 untimed + 2 warmup + 5 timed
	assert.Equal(t, 8, present.parses)
	assert.Equal(t, 7, present.serializes)
	assert.Zero(t, absent.parses)

	assert.Equal(t, 1, r.Stats.Skipped)
	assert.Equal(t, 1, r.Stats.Measured)
}

func TestRunRecordsFailureAndContinues(t *testing.T) {
	failing := &fakeCodec{name: "failing", failParse: 3}
	panicking := &fakeCodec{name: "panicking", panicOnSer: true}
	healthy := &fakeCodec{name: "healthy"}
	rec := &recorder{}

	r := NewRunner(Config{WarmupIterations: 1, Iterations: 3}, rec)
	results := r.Run(oneKB(), []codec.Adapter{failing, panicking, healthy})

	require.Len(t, results, 1)
	assert.Equal(t, "healthy", results[0].Library)

	require.Len(t, r.Diagnostics, 2)
	assert.Equal(t, "failing", r.Diagnostics[0].Library)
	assert.Equal(t, opParse, r.Diagnostics[0].Op)
	assert.EqualError(t, r.Diagnostics[0].Err, "boom")
	assert.Equal(t, "panicking", r.Diagnostics[1].Library)
	assert.Equal(t, opSerialize, r.Diagnostics[1].Op)
	assert.Contains(t, r.Diagnostics[1].Error(), "serializer exploded")

	assert.Equal(t, []string{"api_response_1kb.json"}, rec.files)
	assert.Len(t, rec.results, 1)
	assert.Len(t, rec.diags, 2)
	assert.Equal(t, 2, r.Stats.Failed)
}

func TestZeroParseTimeYieldsZeroThroughput(t *testing.T) {
	r := NewRunner(Config{Iterations: 3}, nil)
	frozen := time.Unix(0, 0)
	r.now = func() time.Time { return frozen }

	results := r.Run(oneKB(), []codec.Adapter{&fakeCodec{name: "instant"}})
	require.Len(t, results, 1)
	assert.Zero(t, results[0].ParseTimeMs)
	assert.Zero(t, results[0].ThroughputMBs)
}

func TestThroughputFromMeanParseTime(t *testing.T) {
	r := NewRunner(Config{Iterations: 4}, nil)
	clock := time.Unix(0, 0)
	r.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}

	f := corpus.File{Name: "one_mb.json", Data: make([]byte, 1<<20)}
	results := r.Run(f, []codec.Adapter{&fakeCodec{name: "steady"}})
	require.Len(t, results, 1)

	// every timed call sees exactly one tick
	assert.InDelta(t, 1.0, results[0].ParseTimeMs, 1e-9)
	assert.InDelta(t, 1.0, results[0].SerializeTimeMs, 1e-9)
	assert.InDelta(t, 1000.0, results[0].ThroughputMBs, 1e-6)
}

func TestThroughput(t *testing.T) {
	assert.Zero(t, Throughput(1024, 0))
	assert.InDelta(t, 50.0, Throughput(50<<20, 1000), 1e-9)
}

func TestRunAll(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	r := NewRunner(Config{Iterations: 1, MaxFileBytes: 2048}, Observers{first, second})

	_, err := r.RunAll(nil, []codec.Adapter{&fakeCodec{name: "a"}})
	assert.ErrorIs(t, err, corpus.ErrNoCorpus)

	big := corpus.File{Name: "big.json", Data: make([]byte, 4096)}
	results, err := r.RunAll([]corpus.File{oneKB(), big}, []codec.Adapter{&fakeCodec{name: "a"}, &fakeCodec{name: "b"}})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, r.Stats.Oversized)
	assert.Equal(t, 1, r.Stats.Files)

	for _, rec := range []*recorder{first, second} {
		assert.Equal(t, []string{"api_response_1kb.json"}, rec.files)
		assert.Equal(t, []string{"big.json"}, rec.skipped)
		assert.Len(t, rec.results, 2)
	}
}

func TestRunWithRealCodecs(t *testing.T) {
	f := corpus.File{Name: "small.json", Data: []byte(`{"a":[1,2,3],"b":{"c":"d"}}`)}
	reg := codec.NewDefaultRegistry()

	r := NewRunner(Config{WarmupIterations: 1, Iterations: 2}, nil)
	results := r.Run(f, reg.Adapters())
	assert.Empty(t, r.Diagnostics)

	available := 0
	for _, s := range reg.Status() {
		if s.Available {
			available++
		}
	}
	assert.Len(t, results, available)
	for _, res := range results {
		assert.GreaterOrEqual(t, res.ParseTimeMs, 0.0)
	}
}
