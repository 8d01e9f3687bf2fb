package effect

import "strconv"

const KindHealOverTime = "HealOverTime"

// HealOverTime restores owner HP every tick.
// Params: "power" (heal per second per stack).
type HealOverTime struct {
	power float64
}

func NewHealOverTime(params map[string]string) Behavior {
	power, _ := strconv.ParseFloat(params["power"], 64)
	return &HealOverTime{power: power}
}

func (b *HealOverTime) Kind() string { return KindHealOverTime }

func (b *HealOverTime) Process(e *Effect, dt float64) {
	owner, ok := e.Owner()
	if !ok {
		return
	}
	if target, ok := owner.(Healable); ok && b.power > 0 {
		target.RestoreHP(b.power * float64(e.Multiplier()) * dt)
	}
}
