package data

// effectDef — встроенное определение эффекта.
// Строится в EffectTemplate через LoadEffects().
type effectDef struct {
	id             int32
	name           string
	kind           string
	stackMode      string
	elapseMode     string
	duration       float64 // seconds, 0 = infinite
	maxMultiplier  int32
	activeOnAttach bool
	params         map[string]string
}

var effectDefs = []effectDef{
	{
		id: 1, name: "Might", kind: "StatBuff",
		stackMode: "multiplier", duration: 60, maxMultiplier: 3, activeOnAttach: true,
		params: map[string]string{"stat": "pAtk", "type": "ADD", "value": "10"},
	},
	{
		id: 2, name: "Poison", kind: "DamageOverTime",
		stackMode: "time", duration: 10,
		params: map[string]string{"power": "5"},
	},
	{
		id: 3, name: "Regeneration", kind: "HealOverTime",
		stackMode: "multiplier", elapseMode: "use_stack", duration: 5, maxMultiplier: 5,
		params: map[string]string{"power": "8"},
	},
	{
		id: 4, name: "Stun", kind: "Marker",
		duration: 3,
		params:   map[string]string{"flag": "stunned"},
	},
	{
		id: 5, name: "Wind Walk", kind: "StatBuff",
		stackMode: "time", duration: 120, activeOnAttach: true,
		params: map[string]string{"stat": "speed", "type": "MUL", "value": "1.2"},
	},
	{
		id: 6, name: "Blessed Aura", kind: "StatBuff",
		duration: 0, activeOnAttach: true,
		params: map[string]string{"stat": "pDef", "type": "ADD", "value": "25"},
	},
}

// effectBundleDefs — наборы эффектов, применяемых вместе (скилл, зелье…).
var effectBundleDefs = []EffectBundle{
	{Name: "venom_strike", EffectIDs: []int32{2, 4}},
	{Name: "battle_hymn", EffectIDs: []int32{1, 5}},
	{Name: "field_medic", EffectIDs: []int32{3}},
}
