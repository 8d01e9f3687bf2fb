package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/la2effects/internal/config"
	"github.com/udisondev/la2effects/internal/data"
	"github.com/udisondev/la2effects/internal/model"
	"github.com/udisondev/la2effects/internal/world"
)

// RequestKind selects what a Request does to its target.
type RequestKind uint8

const (
	RequestApplyBundle RequestKind = iota
	RequestDetachEffect
	RequestHide
	RequestShow
)

// Request is a host-side action delivered to the update loop.
// All effect mutation happens on the loop goroutine.
type Request struct {
	Kind     RequestKind
	TargetID uint32
	Bundle   string // RequestApplyBundle
	EffectID int32  // RequestDetachEffect
}

// Engine runs the fixed-rate update loop over the world registry.
type Engine struct {
	cfg      config.Simulation
	registry *world.Registry
	ids      *world.ObjectIDGenerator

	requests chan Request
	frames   uint64
}

// NewEngine creates an engine over registry. The registry becomes the effect
// owner resolver.
func NewEngine(cfg config.Simulation, registry *world.Registry) *Engine {
	registry.InstallResolver()
	return &Engine{
		cfg:      cfg,
		registry: registry,
		ids:      world.NewObjectIDGenerator(),
		requests: make(chan Request, 64),
	}
}

// Spawn creates n characters and registers them.
func (e *Engine) Spawn(n int) []*model.Character {
	chars := make([]*model.Character, 0, n)
	for i := range n {
		c := model.NewCharacter(e.ids.NextCharacterID(), fmt.Sprintf("Dummy-%d", i+1), e.cfg.CharacterHP)
		c.SetBaseStat("pAtk", 100)
		c.SetBaseStat("pDef", 80)
		c.SetBaseStat("speed", 120)
		e.registry.Add(c)
		chars = append(chars, c)
	}
	slog.Info("characters spawned", "count", n)
	return chars
}

// Submit queues a request for the update loop. Blocks while the queue is full.
func (e *Engine) Submit(ctx context.Context, req Request) error {
	select {
	case e.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frames returns the number of ticks delivered so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Run starts the update loop and the scripted feeder and blocks until ctx is
// cancelled or the configured duration is over.
func (e *Engine) Run(ctx context.Context) error {
	if e.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.loop(gctx) })
	if e.cfg.ApplyInterval > 0 && len(e.cfg.Bundles) > 0 {
		g.Go(func() error { return e.feed(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// loop delivers one Tick per frame with the real elapsed time and drains
// pending requests between frames.
func (e *Engine) loop(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("update loop stopped", "frames", e.frames)
			return ctx.Err()
		case req := <-e.requests:
			e.Handle(req)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			e.Step(dt)
		}
	}
}

// Step advances the world by one frame.
func (e *Engine) Step(dt float64) {
	e.registry.Tick(max(dt, 0))
	e.frames++
}

// Handle executes a request on the calling goroutine.
// Unknown targets and bundles are logged and skipped.
func (e *Engine) Handle(req Request) {
	host, ok := e.registry.Get(req.TargetID)
	if !ok {
		slog.Warn("request for unknown target", "target", req.TargetID)
		return
	}
	c, ok := host.(*model.Character)
	if !ok {
		return
	}

	switch req.Kind {
	case RequestApplyBundle:
		bundle, ok := data.GetEffectBundle(req.Bundle)
		if !ok {
			slog.Warn("unknown effect bundle", "bundle", req.Bundle)
			return
		}
		effects, err := bundle.Instantiate()
		if err != nil {
			slog.Warn("instantiating bundle", "bundle", req.Bundle, "err", err)
			return
		}
		c.AttachEffects(effects)
		slog.Debug("bundle applied",
			"bundle", req.Bundle,
			"target", c.ObjectID(),
			"effects", c.Effects().Len())
	case RequestDetachEffect:
		if _, ok := c.DetachEffect(req.EffectID); !ok {
			slog.Debug("detach: effect not found", "target", c.ObjectID(), "effect", req.EffectID)
		}
	case RequestHide:
		c.SetVisible(false)
	case RequestShow:
		c.SetVisible(true)
	}
}

// feed applies the configured bundles round-robin over the population and
// toggles visibility of one character now and then.
func (e *Engine) feed(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.ApplyInterval)
	defer ticker.Stop()

	var n int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		hosts := e.registry.Hosts()
		if len(hosts) == 0 {
			continue
		}
		target := hosts[n%len(hosts)].ObjectID()
		bundle := e.cfg.Bundles[n%len(e.cfg.Bundles)]
		if err := e.Submit(ctx, Request{Kind: RequestApplyBundle, TargetID: target, Bundle: bundle}); err != nil {
			return err
		}

		if n%5 == 4 {
			kind := RequestHide
			if (n/5)%2 == 1 {
				kind = RequestShow
			}
			if err := e.Submit(ctx, Request{Kind: kind, TargetID: hosts[0].ObjectID()}); err != nil {
				return err
			}
		}
		n++
	}
}

// Summary logs the state of every host.
func (e *Engine) Summary() {
	for _, h := range e.registry.Hosts() {
		c, ok := h.(*model.Character)
		if !ok {
			continue
		}
		slog.Info("character state",
			"name", c.Name(),
			"hp", c.CurrentHP(),
			"pAtk", c.Stat("pAtk"),
			"speed", c.Stat("speed"),
			"stunned", c.HasFlag("stunned"),
			"effects", c.Effects().Len())
	}
}
