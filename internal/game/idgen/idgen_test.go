package idgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/heroforge/internal/game/idgen"
)

func TestUUID_ProducesDistinctParsableIDs(t *testing.T) {
	gen := idgen.UUID()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := gen.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestSequential_Increments(t *testing.T) {
	gen := idgen.NewSequential("hero")
	assert.Equal(t, "hero-1", gen.NewID())
	assert.Equal(t, "hero-2", gen.NewID())
}

func TestFunc_Adapts(t *testing.T) {
	gen := idgen.Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", gen.NewID())
}
