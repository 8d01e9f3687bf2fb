package data

import (
	"fmt"
	"log/slog"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/la2effects/internal/effect"
)

// EffectTable — глобальный registry шаблонов эффектов, map[effectID]*EffectTemplate.
// Загружается через LoadEffects() при старте.
var EffectTable map[int32]*EffectTemplate

// EffectBundles — наборы эффектов по имени.
var EffectBundles map[string]EffectBundle

// GetEffectTemplate возвращает шаблон по ID. Returns nil если не найден.
func GetEffectTemplate(id int32) *EffectTemplate {
	if EffectTable == nil {
		return nil
	}
	return EffectTable[id]
}

// GetEffectBundle возвращает набор эффектов по имени.
func GetEffectBundle(name string) (EffectBundle, bool) {
	if EffectBundles == nil {
		return EffectBundle{}, false
	}
	b, ok := EffectBundles[name]
	return b, ok
}

// LoadEffects строит EffectTable из Go-литералов (effectDefs).
func LoadEffects() error {
	EffectTable = make(map[int32]*EffectTemplate, len(effectDefs))
	EffectBundles = make(map[string]EffectBundle, len(effectBundleDefs))

	for i := range effectDefs {
		tmpl, err := buildEffectTemplate(&effectDefs[i])
		if err != nil {
			return err
		}
		EffectTable[tmpl.ID] = tmpl
	}
	for _, b := range effectBundleDefs {
		EffectBundles[b.Name] = b
	}

	slog.Info("loaded effects", "effects", len(EffectTable), "bundles", len(EffectBundles))
	return nil
}

// effectFile — формат YAML файла с дополнительными эффектами.
type effectFile struct {
	Effects []effectYAML   `yaml:"effects"`
	Bundles []EffectBundle `yaml:"bundles"`
}

type effectYAML struct {
	ID             int32             `yaml:"id"`
	Name           string            `yaml:"name"`
	Kind           string            `yaml:"kind"`
	StackMode      string            `yaml:"stack_mode"`
	ElapseMode     string            `yaml:"elapse_mode"`
	Duration       float64           `yaml:"duration"`
	MaxMultiplier  int32             `yaml:"max_multiplier"`
	ActiveOnAttach bool              `yaml:"active_on_attach"`
	Params         map[string]string `yaml:"params"`
}

// LoadEffectsFile накладывает определения из YAML поверх встроенных.
// Эффекты с совпадающим ID заменяются. Если файла нет — ничего не делает.
func LoadEffectsFile(path string) error {
	if EffectTable == nil {
		if err := LoadEffects(); err != nil {
			return err
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading effects %s: %w", path, err)
	}

	var f effectFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parsing effects %s: %w", path, err)
	}

	for _, y := range f.Effects {
		def := effectDef{
			id:             y.ID,
			name:           y.Name,
			kind:           y.Kind,
			stackMode:      y.StackMode,
			elapseMode:     y.ElapseMode,
			duration:       y.Duration,
			maxMultiplier:  y.MaxMultiplier,
			activeOnAttach: y.ActiveOnAttach,
			params:         y.Params,
		}
		tmpl, err := buildEffectTemplate(&def)
		if err != nil {
			return fmt.Errorf("effects %s: %w", path, err)
		}
		EffectTable[tmpl.ID] = tmpl
	}
	for _, b := range f.Bundles {
		EffectBundles[b.Name] = b
	}

	slog.Info("loaded effects file", "path", path, "effects", len(f.Effects), "bundles", len(f.Bundles))
	return nil
}

// buildEffectTemplate валидирует определение и создаёт шаблон.
func buildEffectTemplate(def *effectDef) (*EffectTemplate, error) {
	if def.id <= 0 {
		return nil, fmt.Errorf("effect %q: invalid id %d", def.name, def.id)
	}
	if def.duration < 0 {
		return nil, fmt.Errorf("effect %d: negative duration %v", def.id, def.duration)
	}
	if _, err := effect.CreateBehavior(def.kind, def.params); err != nil {
		return nil, fmt.Errorf("effect %d: %w", def.id, err)
	}
	stackMode, err := effect.ParseStackMode(def.stackMode)
	if err != nil {
		return nil, fmt.Errorf("effect %d: %w", def.id, err)
	}
	elapseMode, err := effect.ParseElapseMode(def.elapseMode)
	if err != nil {
		return nil, fmt.Errorf("effect %d: %w", def.id, err)
	}

	return &EffectTemplate{
		ID:             def.id,
		Name:           def.name,
		Kind:           def.kind,
		StackMode:      stackMode,
		ElapseMode:     elapseMode,
		Duration:       def.duration,
		MaxMultiplier:  max(def.maxMultiplier, 1),
		ActiveOnAttach: def.activeOnAttach,
		Params:         maps.Clone(def.params),
	}, nil
}
