package effect

// Behavior is the per-kind part of an effect.
// Process is called once per tick while the effect is active, after the
// timer has been advanced.
type Behavior interface {
	Kind() string
	Process(e *Effect, dt float64)
}

// Elapser is optionally implemented by behaviors that replace the default
// elapse hook (destroy). The implementation decides whether to call e.Destroy.
type Elapser interface {
	OnElapsed(e *Effect)
}

// Exiter is optionally implemented by behaviors that clean up when the
// effect is destroyed. Called while the owner is still attached.
type Exiter interface {
	OnExit(e *Effect)
}

// StatModifierProvider is optionally implemented by behaviors that modify stats.
type StatModifierProvider interface {
	StatModifiers() []StatModifier
}

// FlagProvider is optionally implemented by behaviors that mark their host
// with a named condition (stunned, rooted, ...).
type FlagProvider interface {
	Flag() string
}

// StatModType defines how a stat modifier is applied.
type StatModType int8

const (
	StatModAdd StatModType = iota // Additive bonus (e.g. +10 pAtk)
	StatModMul                    // Multiplicative bonus (e.g. x1.2 speed)
)

// StatModifier represents a single stat modification from an effect.
// Collections apply it once per stack of the effect.
type StatModifier struct {
	Stat  string
	Type  StatModType
	Value float64
}
