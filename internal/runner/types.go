package runner

// Unavailable is the ParseTimeMs sentinel of a result that was never
// measured. Such results must be dropped before aggregation.
const Unavailable = -1.0

const (
	DefaultWarmupIterations = 3
	DefaultIterations       = 10
	DefaultMaxFileBytes     = 20 << 20
)

type Config struct {
	WarmupIterations int   `mapstructure:"warmup" json:"warmup"`
	Iterations       int   `mapstructure:"iterations" json:"iterations"`
	MaxFileBytes     int64 `mapstructure:"max_file_bytes" json:"max_file_bytes"`
}

func DefaultConfig() Config {
	return Config{
		WarmupIterations: DefaultWarmupIterations,
		Iterations:       DefaultIterations,
		MaxFileBytes:     DefaultMaxFileBytes,
	}
}

// Result is the measurement of one codec on one corpus file. It is not
// modified after the runner emits it.
type Result struct {
	Library         string  `json:"library"`
	File            string  `json:"file"`
	FileSizeBytes   int64   `json:"file_size"`
	ParseTimeMs     float64 `json:"parse_time_ms"`
	SerializeTimeMs float64 `json:"serialize_time_ms"`
	ThroughputMBs   float64 `json:"throughput_mb_s"`

	ParseP50Ms float64 `json:"parse_p50_ms"`
	ParseP99Ms float64 `json:"parse_p99_ms"`
	Iterations int     `json:"iterations"`
}

// Measured reports whether r holds real timings.
func (r Result) Measured() bool {
	return r.ParseTimeMs >= 0
}

// Diagnostic records a (file, library) pair that was aborted by a codec
// error.
type Diagnostic struct {
	Library string `json:"library"`
	File    string `json:"file"`
	Op      string `json:"op"`
	Err     error  `json:"-"`
}

func (d Diagnostic) Error() string {
	return d.Library + " on " + d.File + " (" + d.Op + "): " + d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Observer is told about every result and diagnostic as soon as it exists.
type Observer interface {
	OnFile(name string, size int64)
	OnSkip(name string, size int64)
	OnResult(Result)
	OnDiagnostic(Diagnostic)
}

// Observers fans every event out to each member in order.
type Observers []Observer

func (o Observers) OnFile(name string, size int64) {
	for _, ob := range o {
		ob.OnFile(name, size)
	}
}

func (o Observers) OnSkip(name string, size int64) {
	for _, ob := range o {
		ob.OnSkip(name, size)
	}
}

func (o Observers) OnResult(r Result) {
	for _, ob := range o {
		ob.OnResult(r)
	}
}

func (o Observers) OnDiagnostic(d Diagnostic) {
	for _, ob := range o {
		ob.OnDiagnostic(d)
	}
}
