package model

import (
	"log/slog"

	"github.com/udisondev/la2effects/internal/effect"
)

// Character — живое существо, на которое вешаются эффекты.
// Добавляет HP и базовые статы к WorldObject и владеет коллекцией эффектов.
//
// HP защищён mutex (читается снаружи), коллекция эффектов меняется только
// из update loop персонажа.
type Character struct {
	*WorldObject // embedded

	currentHP float64
	maxHP     float64

	baseStats map[string]float64
	effects   *effect.Collection
}

// NewCharacter создаёт персонажа с полным HP.
func NewCharacter(objectID uint32, name string, maxHP float64) *Character {
	c := &Character{
		WorldObject: NewWorldObject(objectID, name),
		currentHP:   maxHP,
		maxHP:       maxHP,
		baseStats:   make(map[string]float64, 8),
	}
	c.effects = effect.NewCollection(c)
	return c
}

// Effects возвращает коллекцию эффектов персонажа.
func (c *Character) Effects() *effect.Collection {
	return c.effects
}

// CurrentHP возвращает текущее HP.
func (c *Character) CurrentHP() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentHP
}

// MaxHP возвращает максимальное HP.
func (c *Character) MaxHP() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHP
}

// SetCurrentHP устанавливает текущее HP с валидацией (clamp 0..maxHP).
func (c *Character) SetCurrentHP(hp float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentHP = min(max(hp, 0), c.maxHP)
}

// ReduceHP уменьшает HP на amount (не ниже 0).
func (c *Character) ReduceHP(amount float64) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentHP = max(c.currentHP-amount, 0)
}

// RestoreHP восстанавливает HP на amount (не выше maxHP).
func (c *Character) RestoreHP(amount float64) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentHP = min(c.currentHP+amount, c.maxHP)
}

// IsDead возвращает true если HP == 0.
func (c *Character) IsDead() bool {
	return c.CurrentHP() <= 0
}

// SetBaseStat задаёт базовое значение стата.
func (c *Character) SetBaseStat(stat string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseStats[stat] = value
}

// Stat возвращает итоговое значение стата: (base + add) * mul от активных эффектов.
func (c *Character) Stat(stat string) float64 {
	c.mu.RLock()
	base := c.baseStats[stat]
	c.mu.RUnlock()

	add, mul := c.effects.StatBonus(stat)
	return (base + add) * mul
}

// HasFlag проверяет состояние, выставленное активным эффектом (stunned, rooted…).
func (c *Character) HasFlag(flag string) bool {
	return c.effects.HasFlag(flag)
}

// AttachEffect применяет эффект к персонажу (stacking решает коллекция).
// Эффект должен быть свежей копией для этого персонажа.
func (c *Character) AttachEffect(e *effect.Effect) {
	c.effects.AddEffect(e)
}

// AttachEffects применяет набор эффектов (в обратном порядке, см. Collection.AddEffects).
func (c *Character) AttachEffects(effects []*effect.Effect) {
	c.effects.AddEffects(effects)
}

// DetachEffect снимает эффект по ID. Эффект не уничтожается.
func (c *Character) DetachEffect(id int32) (*effect.Effect, bool) {
	return c.effects.RemoveEffect(id)
}

// DetachEffectInstance снимает конкретный экземпляр эффекта.
func (c *Character) DetachEffectInstance(e *effect.Effect) (*effect.Effect, bool) {
	return c.effects.RemoveInstance(e)
}

// SetVisible меняет видимость персонажа и пробрасывает её во все эффекты.
// Повторный вызов с тем же значением — no-op.
func (c *Character) SetVisible(visible bool) {
	if !c.setVisible(visible) {
		return
	}
	c.effects.SetVisible(visible)

	slog.Debug("character visibility changed",
		"objectID", c.ObjectID(),
		"visible", visible,
		"effects", c.effects.Len())
}

// Tick — один кадр update loop: тикает все эффекты персонажа.
func (c *Character) Tick(dt float64) {
	c.effects.Tick(dt)
}

var _ effect.Handler = (*Character)(nil)
var _ effect.Damageable = (*Character)(nil)
var _ effect.Healable = (*Character)(nil)
