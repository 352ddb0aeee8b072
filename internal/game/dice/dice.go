// Package dice provides the injectable randomness abstraction shared by every
// reward, progression, and economy roll.
package dice

import "math"

// Source is the randomness provider for all rolls.
//
// Implementations backed by shared state document whether they are safe for
// concurrent use.
type Source interface {
	// Float64 returns a pseudo-random value in [0, 1).
	Float64() float64
}

// Unit returns the next draw from src clamped into [0, 1).
//
// Stub sources may return exactly 1 or a negative value; callers that index
// with the draw go through Unit so a bad stub can never overrun a range.
func Unit(src Source) float64 {
	f := src.Float64()
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f >= 1:
		return math.Nextafter(1, 0)
	}
	return f
}

// Intn returns a uniformly distributed int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" otherwise.
func Intn(src Source, n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return int(Unit(src) * float64(n))
}

// IntRange returns a uniformly distributed int in [lo, hi], both inclusive.
// A reversed range is swapped.
func IntRange(src Source, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + Intn(src, hi-lo+1)
}

// Uniform returns a uniformly distributed float64 in [lo, hi).
//
// Postcondition: exactly one draw is consumed; lo <= v < hi when lo < hi,
// and lo is returned when lo >= hi.
func Uniform(src Source, lo, hi float64) float64 {
	u := Unit(src)
	if lo >= hi {
		return lo
	}
	v := lo + u*(hi-lo)
	if v >= hi {
		// the top draw can round up onto hi
		v = math.Nextafter(hi, lo)
	}
	return v
}

// Chance reports whether a single Bernoulli trial with probability p succeeds.
//
// Postcondition: p <= 0 never succeeds; p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}
