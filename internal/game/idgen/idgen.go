// Package idgen provides injectable unique-identifier generators for roster
// heroes and item instances.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	// NewID returns an identifier not previously returned by this generator.
	NewID() string
}

// Func adapts a plain function into a Generator.
type Func func() string

// NewID calls f.
func (f Func) NewID() string { return f() }

// UUID returns a Generator producing random version 4 UUID strings.
// It is safe for concurrent use.
func UUID() Generator {
	return Func(uuid.NewString)
}

// Sequential yields "<prefix>-1", "<prefix>-2", ... and is intended for tests
// and replayable simulations where stable identifiers matter.
type Sequential struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequential returns a Sequential generator using prefix.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// NewID returns the next sequential identifier.
func (s *Sequential) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}
