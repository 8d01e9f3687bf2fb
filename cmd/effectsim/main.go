package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/la2effects/internal/config"
	"github.com/udisondev/la2effects/internal/data"
	"github.com/udisondev/la2effects/internal/sim"
	"github.com/udisondev/la2effects/internal/world"
)

const ConfigPath = "config/effectsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("LA2EFFECTS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("effect simulation starting",
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval,
		"characters", cfg.Characters)

	if err := data.LoadEffects(); err != nil {
		return fmt.Errorf("loading effects: %w", err)
	}
	if cfg.EffectsFile != "" {
		if err := data.LoadEffectsFile(cfg.EffectsFile); err != nil {
			return fmt.Errorf("loading effects file: %w", err)
		}
	}
	for _, name := range cfg.Bundles {
		if _, ok := data.GetEffectBundle(name); !ok {
			return fmt.Errorf("unknown effect bundle %q in config", name)
		}
	}

	engine := sim.NewEngine(cfg, world.NewRegistry())
	engine.Spawn(cfg.Characters)

	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	engine.Summary()
	slog.Info("effect simulation stopped", "frames", engine.Frames())
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
