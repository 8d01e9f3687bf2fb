package effect

import (
	"log/slog"
	"math"
	"slices"
)

// Collection holds the effects attached to one owner and resolves stacking.
//
// Entries keep insertion order; it is both the tick order and the tie-break
// for which stored effect absorbs an incoming one. Entries removed while a
// tick pass is running leave an empty slot that is compacted after the pass.
//
// Not safe for concurrent use: mutated only from the owner's update loop.
type Collection struct {
	owner     Handler
	container string

	effects []*Effect // nil slots only while iterating

	iterating bool
}

// NewCollection creates an empty collection for owner.
func NewCollection(owner Handler) *Collection {
	if isNilHandler(owner) {
		owner = nil
	}
	return &Collection{
		owner:   owner,
		effects: make([]*Effect, 0, 8),
	}
}

// Container returns the grouping handle the owner's effects are placed under.
// Created on first use.
func (c *Collection) Container() string {
	if c.container == "" {
		name := "Effects"
		if c.owner != nil {
			name = c.owner.Name() + "/Effects"
		}
		c.container = name
	}
	return c.container
}

// AddEffect applies e to the owner. The first stored effect that accepts the
// merge absorbs e; otherwise e is activated, attached and stored. On a hidden
// owner the stored effect starts paused and resumes when the owner is shown.
//
// e must be a fresh instance: the same instance cannot be applied to two owners.
func (c *Collection) AddEffect(e *Effect) {
	if e == nil {
		return
	}
	c.prune()

	for _, attached := range c.effects {
		if attached == nil || attached.Destroyed() {
			continue
		}
		if attached.Stack(e) {
			return
		}
	}

	e.Activate()
	e.Attach(c.owner)
	c.effects = append(c.effects, e)

	slog.Debug("effect added",
		"effect", e.ID(),
		"instance", e.InstanceID().String(),
		"container", c.Container(),
		"count", len(c.effects))
}

// AddEffects applies effects one at a time from the last element to the first.
func (c *Collection) AddEffects(effects []*Effect) {
	for i := len(effects) - 1; i >= 0; i-- {
		c.AddEffect(effects[i])
	}
}

// RemoveEffect detaches the stored effect with the given id and takes it out
// of the collection. The effect is not destroyed.
func (c *Collection) RemoveEffect(id int32) (*Effect, bool) {
	return c.remove(func(e *Effect) bool { return e.ID() == id })
}

// RemoveInstance detaches the given instance and takes it out of the collection.
func (c *Collection) RemoveInstance(e *Effect) (*Effect, bool) {
	if e == nil {
		return nil, false
	}
	return c.remove(func(attached *Effect) bool { return attached == e })
}

// HasEffect reports whether this exact instance is stored.
func (c *Collection) HasEffect(e *Effect) bool {
	if e == nil {
		return false
	}
	for _, attached := range c.effects {
		if attached == e && !attached.Destroyed() {
			return true
		}
	}
	return false
}

// Find returns the first stored, non-destroyed effect with the given id.
func (c *Collection) Find(id int32) (*Effect, bool) {
	for _, e := range c.effects {
		if e != nil && e.ID() == id && !e.Destroyed() {
			return e, true
		}
	}
	return nil, false
}

// Tick advances every stored effect in insertion order and drops the ones
// that elapsed.
func (c *Collection) Tick(dt float64) {
	c.iterating = true
	// Effects added by behaviors during the pass start ticking next frame.
	n := len(c.effects)
	for i := 0; i < n; i++ {
		e := c.effects[i]
		if e == nil {
			continue
		}
		e.Tick(dt)
		if e.Destroyed() && c.effects[i] == e {
			c.effects[i] = nil
		}
	}
	c.iterating = false
	c.compact()
}

// SetVisible forwards a host visibility change to every stored effect.
func (c *Collection) SetVisible(visible bool) {
	for _, e := range c.effects {
		if e != nil {
			e.SetVisible(visible)
		}
	}
}

// Effects returns a copy of the stored, non-destroyed effects.
func (c *Collection) Effects() []*Effect {
	result := make([]*Effect, 0, len(c.effects))
	for _, e := range c.effects {
		if e != nil && !e.Destroyed() {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of stored, non-destroyed effects.
func (c *Collection) Len() int {
	n := 0
	for _, e := range c.effects {
		if e != nil && !e.Destroyed() {
			n++
		}
	}
	return n
}

// Clear detaches every stored effect and empties the collection.
func (c *Collection) Clear() {
	for _, e := range c.effects {
		if e != nil {
			e.Detach()
		}
	}
	clear(c.effects)
	if !c.iterating {
		c.effects = c.effects[:0]
	}
}

// StatBonus returns the additive and multiplicative bonus of active effects
// for stat. Each modifier is applied once per stack: additive values are
// multiplied by the stack count, multiplicative ones raised to it.
// Returns (0, 1) if no modifiers affect the stat.
func (c *Collection) StatBonus(stat string) (add, mul float64) {
	mul = 1
	for _, e := range c.effects {
		if e == nil || !e.IsActive() {
			continue
		}
		provider, ok := e.Behavior().(StatModifierProvider)
		if !ok {
			continue
		}
		stacks := float64(e.Multiplier())
		for _, mod := range provider.StatModifiers() {
			if mod.Stat != stat {
				continue
			}
			switch mod.Type {
			case StatModAdd:
				add += mod.Value * stacks
			case StatModMul:
				mul *= math.Pow(mod.Value, stacks)
			}
		}
	}
	return add, mul
}

// HasFlag reports whether an active effect marks the owner with flag.
func (c *Collection) HasFlag(flag string) bool {
	for _, e := range c.effects {
		if e == nil || !e.IsActive() {
			continue
		}
		if fp, ok := e.Behavior().(FlagProvider); ok && fp.Flag() == flag {
			return true
		}
	}
	return false
}

func (c *Collection) remove(match func(*Effect) bool) (*Effect, bool) {
	for i, e := range c.effects {
		if e == nil || !match(e) {
			continue
		}
		e.Detach()
		if c.iterating {
			c.effects[i] = nil
		} else {
			c.effects = slices.Delete(c.effects, i, i+1)
		}
		return e, true
	}
	return nil, false
}

// prune drops destroyed entries. During a tick pass their slots are only emptied.
func (c *Collection) prune() {
	if c.iterating {
		for i, e := range c.effects {
			if e != nil && e.Destroyed() {
				c.effects[i] = nil
			}
		}
		return
	}
	c.compact()
}

// compact removes empty slots and destroyed entries, keeping order.
func (c *Collection) compact() {
	n := 0
	for _, e := range c.effects {
		if e != nil && !e.Destroyed() {
			c.effects[n] = e
			n++
		}
	}
	clear(c.effects[n:])
	c.effects = c.effects[:n]
}
