package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorEmptyPoolIsFull(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())

	for _, at := range []float64{0, 1.5, 30, 1_000} {
		assert.Equal(t, DefaultCapacity, sim.ChargesAt(at))
	}

	_, ok := sim.NextRegeneration(10)
	assert.False(t, ok)
}

func TestSimulatorSingleUseRegeneratesAfterInterval(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(5, "Quadruple Crossing", 0))

	assert.Equal(t, 3, sim.ChargesAt(4.9))
	assert.Equal(t, 2, sim.ChargesAt(5))
	assert.Equal(t, 2, sim.ChargesAt(34.9))
	assert.Equal(t, 3, sim.ChargesAt(35))
}

func TestSimulatorNextRegeneration(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(5, "Quadruple Crossing", 0))

	regen, ok := sim.NextRegeneration(10)
	require.True(t, ok)
	assert.Equal(t, "Quadruple Crossing", regen.Label)
	assert.InDelta(t, (10.0-5.0)/30.0, regen.Progress, 1e-9)
	assert.InDelta(t, 25.0, regen.Remaining, 1e-9)

	_, ok = sim.NextRegeneration(35)
	assert.False(t, ok)
	_, ok = sim.NextRegeneration(60)
	assert.False(t, ok)
}

func TestSimulatorNextRegenerationPicksSoonestPending(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(20, "later", 0))
	require.True(t, sim.Use(4, "earlier", 0))

	regen, ok := sim.NextRegeneration(10)
	require.True(t, ok)
	assert.Equal(t, "earlier", regen.Label)
	assert.InDelta(t, 24.0, regen.Remaining, 1e-9)

	regen, ok = sim.NextRegeneration(34)
	require.True(t, ok)
	assert.Equal(t, "later", regen.Label)
	assert.InDelta(t, 16.0, regen.Remaining, 1e-9)
}

func TestSimulatorNextRegenerationProgressIsClamped(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(50, "future", 0))

	regen, ok := sim.NextRegeneration(10)
	require.True(t, ok)
	assert.Equal(t, 0.0, regen.Progress)
	assert.InDelta(t, 70.0, regen.Remaining, 1e-9)
}

func TestSimulatorExhaustsPool(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(0, "a", 0))
	require.True(t, sim.Use(1, "b", 0))
	require.True(t, sim.Use(2, "c", 0))

	assert.Equal(t, 0, sim.ChargesAt(2))
	assert.False(t, sim.Use(2, "d", 0))
	assert.Len(t, sim.Events(), 3)

	assert.Equal(t, 1, sim.ChargesAt(30))
	assert.Equal(t, 3, sim.ChargesAt(32))
}

func TestSimulatorUseClampsNegativeTime(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(1.5, "opener", -10))

	events := sim.Events()
	require.Len(t, events, 1)
	assert.Equal(t, 0.0, events[0].Time)
	assert.Equal(t, 2, sim.ChargesAt(0))
}

func TestSimulatorUseAppliesOffset(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(10, "late", 2.5))

	assert.Equal(t, []ConsumptionEvent{{Time: 12.5, Label: "late"}}, sim.Events())
	assert.Equal(t, 3, sim.ChargesAt(12.4))
}

func TestSimulatorEventsStaySorted(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(40, "c", 0))
	require.True(t, sim.Use(10, "a", 0))
	require.True(t, sim.Use(20, "b", 0))

	assert.Equal(t, []ConsumptionEvent{
		{Time: 10, Label: "a"},
		{Time: 20, Label: "b"},
		{Time: 40, Label: "c"},
	}, sim.Events())
}

func TestSimulatorRetroactiveUseNeverGoesNegative(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(10, "a", 0))
	require.True(t, sim.Use(11, "b", 0))
	require.True(t, sim.Use(12, "c", 0))
	// Inserted before the others: the pool is still full at t=5.
	require.True(t, sim.Use(5, "early", 0))

	assert.Equal(t, 0, sim.ChargesAt(12))
	assert.Equal(t, 1, sim.ChargesAt(35))
	assert.Equal(t, 2, sim.ChargesAt(40))
	assert.Equal(t, 3, sim.ChargesAt(41))
}

func TestSimulatorChargesStayWithinBounds(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(PoolConfig{Name: "test", Capacity: 2, RegenInterval: 7})
	for _, at := range []float64{0, 0, 0.5, 3, 3, 8, 9, 14, 14, 30} {
		sim.Use(at, "x", 0)
	}

	for at := 0.0; at <= 60; at += 0.25 {
		charges := sim.ChargesAt(at)
		assert.GreaterOrEqual(t, charges, 0, "t=%v", at)
		assert.LessOrEqual(t, charges, 2, "t=%v", at)
	}
}

func TestSimulatorSpendAndRegenAtSameInstant(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(PoolConfig{Name: "test", Capacity: 1, RegenInterval: 30})
	require.True(t, sim.Use(0, "first", 0))
	// The first charge comes back at exactly 30.
	require.True(t, sim.Use(30, "second", 0))

	// The spend at 30 hits an empty pool and clamps; the regeneration then refills it.
	assert.Equal(t, 1, sim.ChargesAt(30))
	assert.Equal(t, 1, sim.ChargesAt(45))
	assert.Equal(t, 1, sim.ChargesAt(60))
}

func TestSimulatorSpendAppliesBeforeRegenAtSameInstant(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(0, "a", 0))
	require.True(t, sim.Use(1, "b", 0))
	require.True(t, sim.Use(2, "c", 0))
	require.True(t, sim.Use(30, "d", 0))

	assert.Equal(t, 1, sim.ChargesAt(30))
	assert.Equal(t, 2, sim.ChargesAt(31))
	assert.True(t, sim.Use(30.5, "e", 0))
}

func TestSimulatorRestoreSkipsAvailabilityCheck(t *testing.T) {
	t.Parallel()

	recorded := NewSimulator(DefaultPoolConfig())
	require.True(t, recorded.Use(10, "a", 0))
	require.True(t, recorded.Use(11, "b", 0))
	require.True(t, recorded.Use(12, "c", 0))
	require.True(t, recorded.Use(5, "early", 0))

	replayed := NewSimulator(DefaultPoolConfig())
	for _, event := range recorded.Events() {
		replayed.Use(event.Time, event.Label, 0)
	}
	require.Len(t, replayed.Events(), 3)

	restored := NewSimulator(DefaultPoolConfig())
	restored.Restore([]ConsumptionEvent{{Time: 12, Label: "c"}, {Time: 5, Label: "early"}, {Time: 10, Label: "a"}, {Time: 11, Label: "b"}})

	assert.Equal(t, recorded.Events(), restored.Events())
	for _, at := range []float64{5, 10, 12, 35, 41} {
		assert.Equal(t, recorded.ChargesAt(at), restored.ChargesAt(at), "t=%v", at)
	}
}

func TestActualTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   float64
		offset float64
		want   float64
	}{
		{name: "offset added", base: 10, offset: 2.5, want: 12.5},
		{name: "negative clamps", base: 1, offset: -3, want: 0},
		{name: "nan clamps", base: math.NaN(), offset: 0, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ActualTime(tt.base, tt.offset))
		})
	}
}

func TestSimulatorResetForgetsHistory(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(0, "a", 0))
	require.True(t, sim.Use(0, "b", 0))

	sim.Reset()

	fresh := NewSimulator(DefaultPoolConfig())
	for _, at := range []float64{0, 10, 29.9, 30, 100} {
		assert.Equal(t, fresh.ChargesAt(at), sim.ChargesAt(at))
		_, ok := sim.NextRegeneration(at)
		assert.False(t, ok)
	}
	assert.Empty(t, sim.Events())
}

func TestSimulatorEventsReturnsCopy(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultPoolConfig())
	require.True(t, sim.Use(3, "a", 0))

	events := sim.Events()
	events[0].Label = "mutated"

	assert.Equal(t, "a", sim.Events()[0].Label)
}
