package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// maxRecordable bounds a single timed iteration.
const maxRecordable = 10 * time.Minute

// Timing collects the per-iteration durations of one operation. It is not
// safe for concurrent use; the runner times one operation at a time.
type Timing struct {
	hist  *hdrhistogram.Histogram
	sum   time.Duration
	count int
}

func NewTiming() *Timing {
	// 1ns to 10min, 3 significant figures
	return &Timing{hist: hdrhistogram.New(1, int64(maxRecordable), 3)}
}

// Record adds one iteration. Durations beyond the histogram range still
// count toward the mean.
func (t *Timing) Record(d time.Duration) {
	t.sum += d
	t.count++
	v := int64(d)
	if v < 1 {
		v = 1
	}
	if v > int64(maxRecordable) {
		v = int64(maxRecordable)
	}
	_ = t.hist.RecordValue(v)
}

// MeanMs is the exact arithmetic mean in milliseconds, 0 when empty.
func (t *Timing) MeanMs() float64 {
	if t.count == 0 {
		return 0
	}
	return durationMs(t.sum) / float64(t.count)
}

// QuantileMs returns the q-th percentile (0..100) in milliseconds.
func (t *Timing) QuantileMs(q float64) float64 {
	if t.count == 0 {
		return 0
	}
	return durationMs(time.Duration(t.hist.ValueAtQuantile(q)))
}

func (t *Timing) Count() int {
	return t.count
}

func (t *Timing) Reset() {
	t.hist.Reset()
	t.sum = 0
	t.count = 0
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
