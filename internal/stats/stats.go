package stats

// Stats holds the run-level counters of one benchmark sweep.
type Stats struct {
	Files     int
	Measured  int // (file, library) pairs with a result
	Failed    int // pairs aborted by a codec error
	Skipped   int // pairs skipped because the codec is unavailable
	Oversized int // files skipped for size
	Bytes     int64

	// Scratch timings, reset for every (file, library) pair.
	Parse     *Timing
	Serialize *Timing
}

func NewStats() *Stats {
	return &Stats{
		Parse:     NewTiming(),
		Serialize: NewTiming(),
	}
}

// FailureRate is the share of attempted pairs that failed, in percent.
func (s *Stats) FailureRate() float64 {
	attempted := s.Measured + s.Failed
	if attempted == 0 {
		return 0
	}
	return float64(s.Failed) / float64(attempted) * 100
}

func (s *Stats) Reset() {
	s.Files, s.Measured, s.Failed, s.Skipped, s.Oversized = 0, 0, 0, 0, 0
	s.Bytes = 0
	s.Parse.Reset()
	s.Serialize.Reset()
}
