package data

import (
	"fmt"

	"github.com/udisondev/la2effects/internal/effect"
)

// EffectTemplate — шаблон эффекта. Из него строятся свежие экземпляры
// для каждой цели (один экземпляр нельзя повесить на двух персонажей).
type EffectTemplate struct {
	ID             int32
	Name           string
	Kind           string
	StackMode      effect.StackMode
	ElapseMode     effect.ElapseMode
	Duration       float64
	MaxMultiplier  int32
	ActiveOnAttach bool
	Params         map[string]string
}

// EffectParams возвращает параметры конструктора эффекта: таймер полный.
func (t *EffectTemplate) EffectParams() effect.Params {
	return effect.Params{
		ID:             t.ID,
		StackMode:      t.StackMode,
		ElapseMode:     t.ElapseMode,
		TimeMax:        t.Duration,
		TimeLeft:       t.Duration,
		Multiplier:     1,
		MaxMultiplier:  t.MaxMultiplier,
		ActiveOnAttach: t.ActiveOnAttach,
	}
}

// NewEffect создаёт новый экземпляр эффекта по шаблону.
func (t *EffectTemplate) NewEffect() (*effect.Effect, error) {
	b, err := effect.CreateBehavior(t.Kind, t.Params)
	if err != nil {
		return nil, fmt.Errorf("effect %d (%s): %w", t.ID, t.Name, err)
	}
	return effect.NewEffect(t.EffectParams(), b), nil
}

// EffectBundle — именованный список эффектов, применяемых одним действием.
type EffectBundle struct {
	Name      string  `yaml:"name"`
	EffectIDs []int32 `yaml:"effects"`
}

// Instantiate создаёт свежие экземпляры всех эффектов набора в заявленном порядке.
func (b EffectBundle) Instantiate() ([]*effect.Effect, error) {
	effects := make([]*effect.Effect, 0, len(b.EffectIDs))
	for _, id := range b.EffectIDs {
		tmpl := GetEffectTemplate(id)
		if tmpl == nil {
			return nil, fmt.Errorf("bundle %q: effect %d not found", b.Name, id)
		}
		e, err := tmpl.NewEffect()
		if err != nil {
			return nil, fmt.Errorf("bundle %q: %w", b.Name, err)
		}
		effects = append(effects, e)
	}
	return effects, nil
}
