package templates

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
)

// unicodeAlphabet is the ASCII alphabet plus accented and CJK runes.
var unicodeAlphabet = []rune(alphanumeric + "éàüöñ日本語中文")

// Source is the single random stream behind a generation run. It is not
// safe for concurrent use; one generator owns it at a time.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a Source whose sequence depends only on seed.
func NewSource(seed int64) *Source {
	s := uint64(seed)
	return &Source{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// RandomInt returns an integer in [min, max], inclusive on both ends.
func (s *Source) RandomInt(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + s.rng.Int64N(max-min+1)
}

// RandomFloat returns a value in [min, max) rounded to the given number of
// decimals.
func (s *Source) RandomFloat(min, max float64, decimals int) float64 {
	v := min + s.rng.Float64()*(max-min)
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

func (s *Source) RandomBool() bool {
	return s.rng.IntN(2) == 1
}

// RandomString returns n characters drawn from letters, digits and space.
func (s *Source) RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[s.rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

// RandomUnicodeString returns n runes, some of them multi-byte.
func (s *Source) RandomUnicodeString(n int) string {
	r := make([]rune, n)
	for i := range r {
		r[i] = unicodeAlphabet[s.rng.IntN(len(unicodeAlphabet))]
	}
	return string(r)
}

func (s *Source) RandomChoice(choices ...string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[s.rng.IntN(len(choices))]
}

// RandomUUID draws a version 4 UUID from the seeded stream, so it repeats
// with the seed.
func (s *Source) RandomUUID() string {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// Read never fails
		return uuid.Nil.String()
	}
	return id.String()
}

// Read fills p from the stream. It lets the Source act as an io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := s.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
