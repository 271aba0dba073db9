package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"jsonbench/internal/adjust"
	"jsonbench/internal/codec"
	"jsonbench/internal/corpus"
	"jsonbench/internal/runner"
	"jsonbench/internal/storage"
)

const (
	keySeed         = "seed"
	keyWarmup       = "warmup"
	keyIterations   = "iterations"
	keyTolerance    = "tolerance"
	keySizes        = "sizes"
	keyBaseline     = "baseline"
	keyFast         = "fast"
	keyDataDir      = "data_dir"
	keyResultsDir   = "results_dir"
	keyMaxFileBytes = "max_file_bytes"
	keyDisabled     = "disabled"
	keyHistory      = "history"
	keyLogLevel     = "log_level"
	keyLogFormat    = "log_format"

	defaultDataDir    = "data"
	defaultResultsDir = "results"

	csvFile     = "go_benchmarks.csv"
	summaryFile = "go_benchmarks_summary.json"
	sqliteFile  = "results.db"
	metricsFile = "jsonbench.prom"
)

func setDefaults() {
	viper.SetDefault(keySeed, corpus.DefaultConfig().Seed)
	viper.SetDefault(keyTolerance, adjust.DefaultTolerance)
	viper.SetDefault(keySizes, corpus.DefaultSizes)
	viper.SetDefault(keyWarmup, runner.DefaultWarmupIterations)
	viper.SetDefault(keyIterations, runner.DefaultIterations)
	viper.SetDefault(keyMaxFileBytes, runner.DefaultMaxFileBytes)
	viper.SetDefault(keyBaseline, codec.NameStdlib)
	viper.SetDefault(keyFast, codec.NameSonic)
	viper.SetDefault(keyDataDir, defaultDataDir)
	viper.SetDefault(keyResultsDir, defaultResultsDir)
	viper.SetDefault(keyLogLevel, "info")
	viper.SetDefault(keyLogFormat, "text")
}

func bindFlag(f *pflag.Flag, key string) {
	if f == nil {
		panic("binding unknown flag to " + key)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	Corpus corpus.Config
	Runner runner.Config

	Baseline   string   `mapstructure:"baseline"`
	Fast       string   `mapstructure:"fast"`
	DataDir    string   `mapstructure:"data_dir"`
	ResultsDir string   `mapstructure:"results_dir"`
	History    string   `mapstructure:"history"`
	Disabled   []string `mapstructure:"disabled"`
}

func loadSettings() (settings, error) {
	var s settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode config: %w", err)
	}
	if err := viper.Unmarshal(&s.Corpus); err != nil {
		return s, fmt.Errorf("decode corpus config: %w", err)
	}
	if err := viper.Unmarshal(&s.Runner); err != nil {
		return s, fmt.Errorf("decode runner config: %w", err)
	}

	if s.Corpus.Tolerance <= 0 || s.Corpus.Tolerance >= 1 {
		return s, fmt.Errorf("tolerance must be in (0,1), got %v", s.Corpus.Tolerance)
	}
	if s.Runner.Iterations <= 0 {
		return s, fmt.Errorf("iterations must be positive, got %d", s.Runner.Iterations)
	}
	if s.History == "" {
		path, err := storage.DefaultPath()
		if err != nil {
			return s, err
		}
		s.History = path
	}
	return s, nil
}
