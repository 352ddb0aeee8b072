package dice_test

import (
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
)

// TestCryptoSource_Float64_InRange verifies every crypto draw lies in [0, 1).
func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSeededSource_IsReplayable(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestSeededSource_ConcurrentDrawsShareOneStream(t *testing.T) {
	const workers, per = 4, 250
	shared := dice.NewSeededSource(7)

	var mu sync.Mutex
	var got []float64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]float64, 0, per)
			for i := 0; i < per; i++ {
				local = append(local, shared.Float64())
			}
			mu.Lock()
			got = append(got, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	serial := dice.NewSeededSource(7)
	want := make([]float64, 0, workers*per)
	for i := 0; i < workers*per; i++ {
		want = append(want, serial.Float64())
	}
	sort.Float64s(got)
	sort.Float64s(want)
	assert.Equal(t, want, got, "every draw comes from the single seeded stream")
}

func TestSequenceSource_WrapsAround(t *testing.T) {
	src := dice.NewSequenceSource(0.1, 0.2)
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.2, src.Float64())
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 3, src.Draws())
}

func TestSequenceSource_PanicsWhenEmpty(t *testing.T) {
	assert.Panics(t, func() { dice.NewSequenceSource() })
}

func TestUnit_ClampsStubValues(t *testing.T) {
	assert.Equal(t, 0.0, dice.Unit(dice.NewSequenceSource(-0.5)))
	assert.Less(t, dice.Unit(dice.NewSequenceSource(1.0)), 1.0)
	assert.Equal(t, 0.25, dice.Unit(dice.NewSequenceSource(0.25)))
}

func TestIntn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.Intn(dice.NewSequenceSource(0.5), 0) })
}

func TestIntn_TopOfRange(t *testing.T) {
	assert.Equal(t, 5, dice.Intn(dice.NewSequenceSource(0.999999), 6))
	assert.Equal(t, 5, dice.Intn(dice.NewSequenceSource(1.0), 6))
	assert.Equal(t, 0, dice.Intn(dice.NewSequenceSource(0), 6))
}

func TestIntRange_SwapsReversedBounds(t *testing.T) {
	assert.Equal(t, -1, dice.IntRange(dice.NewSequenceSource(0), 1, -1))
	assert.Equal(t, 1, dice.IntRange(dice.NewSequenceSource(0.99), 1, -1))
}

func TestChance_Bounds(t *testing.T) {
	src := dice.NewSequenceSource(0.0)
	assert.False(t, dice.Chance(src, 0))
	assert.True(t, dice.Chance(dice.NewSequenceSource(0.999), 1))
	assert.True(t, dice.Chance(dice.NewSequenceSource(0.05), 0.1))
	assert.False(t, dice.Chance(dice.NewSequenceSource(0.5), 0.1))
}

func TestProperty_IntRange_Inclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+50).Draw(rt, "hi")
		f := rapid.Float64Range(0, 1).Draw(rt, "draw")
		v := dice.IntRange(dice.NewSequenceSource(f), lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestProperty_Uniform_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := rapid.Float64Range(0, 1).Draw(rt, "draw")
		v := dice.Uniform(dice.NewSequenceSource(f), 0.8, 1.2)
		assert.GreaterOrEqual(rt, v, 0.8)
		assert.Less(rt, v, 1.2)
	})
}

func TestUniform_TopDrawStaysBelowHi(t *testing.T) {
	v := dice.Uniform(dice.NewSequenceSource(math.Nextafter(1, 0)), 0.8, 1.2)
	assert.Less(t, v, 1.2)
	assert.GreaterOrEqual(t, v, 0.8)
}

func TestUniform_EmptyRangeReturnsLo(t *testing.T) {
	src := dice.NewSequenceSource(0.5)
	assert.Equal(t, 3.0, dice.Uniform(src, 3, 3))
	assert.Equal(t, 1, src.Draws())
}

func TestLoggedSource_LogsEachDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := dice.NewLoggedSource(dice.NewSequenceSource(0.3, 0.7), zap.New(core), "test")

	assert.Equal(t, 0.3, src.Float64())
	assert.Equal(t, 0.7, src.Float64())

	entries := logs.FilterMessage("random draw").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "test", entries[0].ContextMap()["source"])
	assert.Equal(t, 0.7, entries[1].ContextMap()["value"])
}
