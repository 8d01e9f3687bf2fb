package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/la2effects/internal/config"
	"github.com/udisondev/la2effects/internal/data"
	"github.com/udisondev/la2effects/internal/effect"
	"github.com/udisondev/la2effects/internal/world"
)

func newTestEngine(t *testing.T, cfg config.Simulation) *Engine {
	t.Helper()
	require.NoError(t, data.LoadEffects())
	e := NewEngine(cfg, world.NewRegistry())
	t.Cleanup(func() { effect.SetOwnerResolver(nil) })
	return e
}

func TestEngine_ApplyBundleAndTick(t *testing.T) {
	e := newTestEngine(t, config.DefaultSimulation())
	chars := e.Spawn(1)
	c := chars[0]

	e.Handle(Request{Kind: RequestApplyBundle, TargetID: c.ObjectID(), Bundle: "venom_strike"})

	require.Equal(t, 2, c.Effects().Len())
	assert.True(t, c.HasFlag("stunned"))

	e.Step(1)
	assert.InDelta(t, 995.0, c.CurrentHP(), 1e-9, "poison deals 5 per second")
	assert.Equal(t, uint64(1), e.Frames())

	// Stun lasts 3s and elapses on the tick after its timer crosses zero.
	for range 3 {
		e.Step(1)
	}
	assert.True(t, c.HasFlag("stunned"))
	e.Step(1)
	assert.False(t, c.HasFlag("stunned"))
	assert.Equal(t, 1, c.Effects().Len())
}

func TestEngine_BundleStacks(t *testing.T) {
	e := newTestEngine(t, config.DefaultSimulation())
	c := e.Spawn(1)[0]

	for range 3 {
		e.Handle(Request{Kind: RequestApplyBundle, TargetID: c.ObjectID(), Bundle: "battle_hymn"})
	}

	// Might stacks by multiplier (max 3), Wind Walk by time.
	require.Equal(t, 2, c.Effects().Len())
	assert.InDelta(t, 130.0, c.Stat("pAtk"), 1e-9)
	assert.InDelta(t, 144.0, c.Stat("speed"), 1e-9)
}

func TestEngine_DetachAndVisibility(t *testing.T) {
	e := newTestEngine(t, config.DefaultSimulation())
	c := e.Spawn(1)[0]
	e.Handle(Request{Kind: RequestApplyBundle, TargetID: c.ObjectID(), Bundle: "battle_hymn"})

	e.Handle(Request{Kind: RequestHide, TargetID: c.ObjectID()})
	assert.False(t, c.IsVisible())
	assert.InDelta(t, 100.0, c.Stat("pAtk"), 1e-9, "hidden effects are inactive")

	e.Handle(Request{Kind: RequestShow, TargetID: c.ObjectID()})
	assert.InDelta(t, 110.0, c.Stat("pAtk"), 1e-9)

	e.Handle(Request{Kind: RequestDetachEffect, TargetID: c.ObjectID(), EffectID: 1})
	assert.InDelta(t, 100.0, c.Stat("pAtk"), 1e-9)
	assert.Equal(t, 1, c.Effects().Len())
}

func TestEngine_HandleUnknown(t *testing.T) {
	e := newTestEngine(t, config.DefaultSimulation())
	c := e.Spawn(1)[0]

	e.Handle(Request{Kind: RequestApplyBundle, TargetID: 42, Bundle: "battle_hymn"})
	e.Handle(Request{Kind: RequestApplyBundle, TargetID: c.ObjectID(), Bundle: "no_such_bundle"})
	e.Handle(Request{Kind: RequestDetachEffect, TargetID: c.ObjectID(), EffectID: 99})

	assert.Equal(t, 0, c.Effects().Len())
}

func TestEngine_Run(t *testing.T) {
	cfg := config.DefaultSimulation()
	cfg.TickInterval = 5 * time.Millisecond
	cfg.ApplyInterval = 10 * time.Millisecond
	cfg.Duration = 200 * time.Millisecond
	cfg.Bundles = []string{"battle_hymn"}

	e := newTestEngine(t, cfg)
	chars := e.Spawn(2)

	require.NoError(t, e.Run(context.Background()))

	assert.Positive(t, e.Frames())
	total := 0
	for _, c := range chars {
		total += c.Effects().Len()
	}
	assert.Positive(t, total, "feeder applied bundles")
}

func TestEngine_RunCancelled(t *testing.T) {
	cfg := config.DefaultSimulation()
	cfg.TickInterval = 5 * time.Millisecond
	e := newTestEngine(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, e.Run(ctx))
}
