// cmd/flightsim/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/engine"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/flight"
	"github.com/opd-ai/go-starflight/pkg/logging"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), "")

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	duration := flag.Duration("duration", 30*time.Second, "How long to fly before shutting down")
	logEvery := flag.Uint64("log-every", 120, "Log telemetry every N ticks")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadConfig(ctx, logger, *configPath)

	sink := telemetryLogger(ctx, logger, *logEvery)
	sim, err := engine.NewSimulation(simConfig, sink, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	craft, err := sim.SpawnCraft()
	if err != nil {
		logger.Error(ctx, "Failed to spawn craft", err)
		os.Exit(1)
	}

	subscribeFlightEvents(ctx, logger, sim.EventBus)

	// Fly-by-wire with a commanded cruise at the configured maximum
	craft.AttachFlyByWire()
	craft.SetInput(flight.ControlInput{
		TargetSpeedDelta: simConfig.FlyByWire.MaxTargetSpeed,
	})

	runCtx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", "signal", sig.String())
		cancel()
	}()

	if err := sim.Run(runCtx); err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		logger.Error(ctx, "Simulation terminated abnormally", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Simulation finished",
		"ticks", sim.CurrentTick(),
		"final_speed", craft.Body.Speed(),
	)
}

// loadConfig loads the configuration file, falling back to defaults
// when the file does not exist
func loadConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg := config.DefaultConfig()
		if err := config.ApplyEnvOverrides(cfg); err != nil {
			logger.Error(ctx, "Failed to apply environment configuration", err)
			os.Exit(1)
		}
		return cfg
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", path,
		)
		os.Exit(1)
	}
	return cfg
}

// telemetryLogger returns a sink that logs every Nth snapshot
func telemetryLogger(ctx context.Context, logger *logging.Logger, every uint64) flight.Sink {
	if every == 0 {
		every = 1
	}
	return flight.SinkFunc(func(s flight.Snapshot) {
		if s.Tick%every != 0 {
			return
		}
		logger.Info(ctx, "telemetry",
			"craft_id", s.CraftID,
			"tick", s.Tick,
			"speed", s.Speed,
			"target_speed", s.TargetSpeed,
			"maneuvering", s.Maneuvering,
			"thrust_velocity", s.ThrustVelocity,
			"rcs_velocity", s.RCSVelocity,
		)
	})
}

// subscribeFlightEvents logs the one-shot flight notifications
func subscribeFlightEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.ManeuveringChanged, func(e event.Event) {
		if me, ok := e.(*event.ManeuveringEvent); ok {
			logger.Info(ctx, "maneuvering changed",
				"craft_id", me.CraftID,
				"maneuvering", me.Maneuvering,
			)
		}
	})
	bus.Subscribe(event.AssistLevelChanged, func(e event.Event) {
		if ae, ok := e.(*event.AssistLevelEvent); ok {
			logger.Info(ctx, "assist level changed",
				"craft_id", ae.CraftID,
				"old_level", flight.AssistLevel(ae.OldLevel).String(),
				"new_level", flight.AssistLevel(ae.NewLevel).String(),
			)
		}
	})
}
