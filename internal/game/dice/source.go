package dice

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: values are uniformly distributed over the 2^53 representable
// steps in [0, 1).
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is safe for
// concurrent use.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Float64 returns a cryptographically secure value in [0, 1).
//
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// seededSource is a replayable PCG-backed Source.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a deterministic Source for simulations and
// reproducible runs. Two sources built from the same seed yield the same
// stream. It is safe for concurrent use; draws are serialized.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, 0))}
}

// Float64 returns the next value in [0, 1) from the seeded stream.
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// SequenceSource replays a fixed list of draws, wrapping around at the end.
// It is intended for stub-driven tests and is not safe for concurrent use.
type SequenceSource struct {
	vals []float64
	next int
}

// NewSequenceSource returns a SequenceSource replaying vals in order.
//
// Precondition: len(vals) > 0.
func NewSequenceSource(vals ...float64) *SequenceSource {
	if len(vals) == 0 {
		panic("dice: NewSequenceSource requires at least one value")
	}
	return &SequenceSource{vals: vals}
}

// Float64 returns the next scripted value.
func (s *SequenceSource) Float64() float64 {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceSource) Draws() int {
	return s.next
}
