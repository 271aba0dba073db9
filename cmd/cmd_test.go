package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonbench/internal/codec"
	"jsonbench/internal/corpus"
	"jsonbench/internal/runner"
	"jsonbench/internal/storage"
)

func testSettings(t *testing.T) settings {
	t.Helper()
	dir := t.TempDir()
	return settings{
		Corpus: corpus.Config{
			Seed:      42,
			Tolerance: 0.1,
			Sizes:     []corpus.SizeTarget{{Label: "1kb", Bytes: 1024}},
		},
		Runner:     runner.Config{WarmupIterations: 0, Iterations: 1, MaxFileBytes: runner.DefaultMaxFileBytes},
		Baseline:   codec.NameStdlib,
		Fast:       codec.NameGoJSON,
		DataDir:    filepath.Join(dir, "data"),
		ResultsDir: filepath.Join(dir, "results"),
		History:    filepath.Join(dir, "history.db"),
		Disabled:   []string{codec.NameSimdJSON},
	}
}

func TestBenchWithoutCorpus(t *testing.T) {
	s := testSettings(t)
	var out bytes.Buffer

	_, err := runBench(context.Background(), s, &out, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrNoCorpus)
	assert.Contains(t, err.Error(), "jsonbench generate")

	_, statErr := os.Stat(filepath.Join(s.ResultsDir, csvFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateBenchReport(t *testing.T) {
	s := testSettings(t)
	var out bytes.Buffer

	files, err := runGenerate(s, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "api_response_1kb.json")

	names, err := corpus.NewStore(s.DataDir).List()
	require.NoError(t, err)
	assert.Len(t, names, len(files))

	out.Reset()
	run, err := runBench(context.Background(), s, &out, true)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.Results)
	assert.NotContains(t, run.Config.Codecs, codec.NameSimdJSON)
	assert.Contains(t, out.String(), "SUMMARY")

	csvData, err := os.ReadFile(filepath.Join(s.ResultsDir, csvFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	assert.Equal(t, "library,file,file_size,parse_time_ms,serialize_time_ms,throughput_mb_s", lines[0])
	assert.Len(t, lines, len(run.Results)+1)

	for _, name := range []string{summaryFile, sqliteFile, metricsFile} {
		assert.FileExists(t, filepath.Join(s.ResultsDir, name))
	}

	store, err := storage.Open(s.History)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Len(t, got.Results, len(run.Results))

	out.Reset()
	require.NoError(t, printReport(context.Background(), store, "", "", &out))
	assert.Contains(t, out.String(), run.ID)
}

func TestReportFromSQLite(t *testing.T) {
	s := testSettings(t)
	_, err := runGenerate(s, &bytes.Buffer{})
	require.NoError(t, err)
	run, err := runBench(context.Background(), s, &bytes.Buffer{}, true)
	require.NoError(t, err)

	store, err := storage.Open(s.History)
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	dbPath := filepath.Join(s.ResultsDir, sqliteFile)
	require.NoError(t, printReport(context.Background(), store, run.ID, dbPath, &out))
	assert.Contains(t, out.String(), run.ID)
	assert.Contains(t, out.String(), "SUMMARY")
	assert.Contains(t, out.String(), "api_response_1kb.json")

	err = printReport(context.Background(), store, run.ID, filepath.Join(t.TempDir(), "none.db"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "open results database")
}

type trailingSpace struct{ codec.Adapter }

func (c trailingSpace) Serialize(v any) ([]byte, error) {
	b, err := c.Adapter.Serialize(v)
	return append(b, ' '), err
}

func TestGenerateVerifiesRoundTrip(t *testing.T) {
	s := testSettings(t)
	var out bytes.Buffer
	files, err := runGenerate(s, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "files written to "+s.DataDir)

	require.NoError(t, verifyRoundTrip(files, codec.Reference()))

	err = verifyRoundTrip(files, trailingSpace{codec.Reference()})
	assert.ErrorContains(t, err, files[0].Name)
}

func TestReportWithoutRuns(t *testing.T) {
	s := testSettings(t)
	store, err := storage.Open(s.History)
	require.NoError(t, err)
	defer store.Close()

	err = printReport(context.Background(), store, "", "", &bytes.Buffer{})
	assert.ErrorContains(t, err, "no runs recorded")

	err = printReport(context.Background(), store, "missing", "", &bytes.Buffer{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPrintCodecs(t *testing.T) {
	var out bytes.Buffer
	printCodecs(codec.NewDefaultRegistry(codec.NameSonic), &out)
	assert.Contains(t, out.String(), "encoding/json")
	assert.Contains(t, out.String(), "disabled by configuration")
}
