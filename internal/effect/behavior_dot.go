package effect

import (
	"log/slog"
	"strconv"
)

const KindDamageOverTime = "DamageOverTime"

// DamageOverTime deals damage to its owner every tick.
// Params: "power" (damage per second per stack), "canKill" (bool, default false).
// If canKill is false, damage never reduces HP below 1.
type DamageOverTime struct {
	power   float64
	canKill bool
}

func NewDamageOverTime(params map[string]string) Behavior {
	power, _ := strconv.ParseFloat(params["power"], 64)
	canKill, _ := strconv.ParseBool(params["canKill"])
	return &DamageOverTime{power: power, canKill: canKill}
}

func (b *DamageOverTime) Kind() string { return KindDamageOverTime }

func (b *DamageOverTime) Process(e *Effect, dt float64) {
	owner, ok := e.Owner()
	if !ok {
		return
	}
	target, ok := owner.(Damageable)
	if !ok {
		return
	}

	damage := b.power * float64(e.Multiplier()) * dt
	if damage <= 0 {
		return
	}

	hp := target.CurrentHP()
	if !b.canKill && damage >= hp-1 {
		damage = hp - 1
		if damage <= 0 {
			return
		}
	}

	target.ReduceHP(damage)

	slog.Debug("dot tick",
		"effect", e.ID(),
		"damage", damage,
		"target", owner.ObjectID())
}
