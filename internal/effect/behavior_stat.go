package effect

import (
	"strconv"
	"strings"
)

const KindStatBuff = "StatBuff"

// StatBuff modifies a stat while the effect is active.
// Params: "stat" (e.g. "pAtk"), "type" ("ADD"/"MUL"), "value" (float64).
type StatBuff struct {
	stat  string
	mType StatModType
	value float64
}

func NewStatBuff(params map[string]string) Behavior {
	value, _ := strconv.ParseFloat(params["value"], 64)

	mType := StatModAdd
	if strings.EqualFold(params["type"], "MUL") {
		mType = StatModMul
	}

	return &StatBuff{stat: params["stat"], mType: mType, value: value}
}

func (b *StatBuff) Kind() string { return KindStatBuff }

// Process is a no-op: the buff just exists.
func (b *StatBuff) Process(*Effect, float64) {}

// StatModifiers returns the modifier applied per stack.
func (b *StatBuff) StatModifiers() []StatModifier {
	return []StatModifier{{Stat: b.stat, Type: b.mType, Value: b.value}}
}
