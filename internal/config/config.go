package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Simulation holds all configuration for the effect simulation host.
type Simulation struct {
	LogLevel string `yaml:"log_level" env:"LA2EFFECTS_LOG_LEVEL"`

	// Update loop
	TickInterval time.Duration `yaml:"tick_interval" env:"LA2EFFECTS_TICK_INTERVAL"` // frame length (default: 100ms)
	Duration     time.Duration `yaml:"duration"      env:"LA2EFFECTS_DURATION"`      // 0 = until signal

	// Data
	EffectsFile string `yaml:"effects_file" env:"LA2EFFECTS_EFFECTS_FILE"`

	// Population
	Characters    int           `yaml:"characters"     env:"LA2EFFECTS_CHARACTERS"`
	CharacterHP   float64       `yaml:"character_hp"   env:"LA2EFFECTS_CHARACTER_HP"`
	ApplyInterval time.Duration `yaml:"apply_interval" env:"LA2EFFECTS_APPLY_INTERVAL"` // scripted effect feed period
	Bundles       []string      `yaml:"bundles"        env:"LA2EFFECTS_BUNDLES" envSeparator:","`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:      "info",
		TickInterval:  100 * time.Millisecond,
		EffectsFile:   "config/effects.yaml",
		Characters:    4,
		CharacterHP:   1000,
		ApplyInterval: time.Second,
		Bundles:       []string{"battle_hymn", "venom_strike", "field_medic"},
	}
}

// LoadSimulation loads config from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used as the base.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values the update loop cannot work with.
func (s Simulation) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", s.TickInterval)
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", s.Duration)
	}
	if s.Characters < 0 {
		return fmt.Errorf("characters must not be negative, got %d", s.Characters)
	}
	if s.CharacterHP <= 0 {
		return fmt.Errorf("character_hp must be positive, got %v", s.CharacterHP)
	}
	if s.ApplyInterval < 0 {
		return fmt.Errorf("apply_interval must not be negative, got %s", s.ApplyInterval)
	}
	return nil
}
