// pkg/engine/simulation.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/flight"
	"github.com/opd-ai/go-starflight/pkg/logging"
)

// Simulation drives craft at a fixed timestep through an ECS world.
// Each Step runs exactly one tick: flight control and integration
// first, then telemetry publication, in that order.
type Simulation struct {
	Config   *config.SimConfig
	World    *ecs.World
	EventBus *event.Bus

	flightSystem    *FlightSystem
	telemetrySystem *TelemetrySystem

	crafts   map[uint64]*Craft
	timeStep float64
	tick     uint64
	running  bool
	mu       sync.RWMutex

	logger *logging.Logger
}

// NewSimulation creates a simulation from the given configuration. The
// sink receives one telemetry snapshot per craft per tick and may be
// nil. The logger may be nil, in which case a default one is created.
func NewSimulation(cfg *config.SimConfig, sink flight.Sink, logger *logging.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	metrics, err := newFlightMetrics()
	if err != nil {
		return nil, logging.WrapError(err, "failed to create engine metrics")
	}

	sim := &Simulation{
		Config:   cfg,
		World:    &ecs.World{},
		EventBus: event.NewBus(),
		crafts:   make(map[uint64]*Craft),
		timeStep: 1.0 / cfg.TickRate,
		logger:   logger,
	}

	sim.flightSystem = &FlightSystem{}
	sim.telemetrySystem = &TelemetrySystem{sim: sim, sink: sink, metrics: metrics}
	sim.World.AddSystem(sim.flightSystem)
	sim.World.AddSystem(sim.telemetrySystem)

	// Metrics piggyback on the same notifications external listeners get
	sim.EventBus.Subscribe(event.ManeuveringChanged, func(e event.Event) {
		if me, ok := e.(*event.ManeuveringEvent); ok {
			metrics.recordManeuverEdge(context.Background(), me.CraftID)
		}
	})
	sim.EventBus.Subscribe(event.AssistLevelChanged, func(e event.Event) {
		if ae, ok := e.(*event.AssistLevelEvent); ok {
			metrics.recordAssistShift(context.Background(), ae.CraftID)
		}
	})

	return sim, nil
}

// TimeStep returns the fixed tick duration in seconds
func (s *Simulation) TimeStep() float64 {
	return s.timeStep
}

// CurrentTick returns the number of completed ticks
func (s *Simulation) CurrentTick() uint64 {
	return s.tick
}

// SpawnCraft adds a craft to the world with flight assist attached at
// the configured default level
func (s *Simulation) SpawnCraft() (*Craft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	craft, err := newCraft(s.Config, s.EventBus)
	if err != nil {
		return nil, err
	}

	s.crafts[craft.ID()] = craft
	s.flightSystem.Add(craft)
	s.telemetrySystem.Add(craft)

	s.EventBus.Publish(&event.BaseEvent{EventType: event.CraftSpawned, Source: craft})
	return craft, nil
}

// RemoveCraft drops a craft from the world
func (s *Simulation) RemoveCraft(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	craft, ok := s.crafts[id]
	if !ok {
		return
	}
	delete(s.crafts, id)
	s.World.RemoveEntity(craft.BasicEntity)

	s.EventBus.Publish(&event.BaseEvent{EventType: event.CraftRemoved, Source: craft})
}

// Craft looks up a craft by ID
func (s *Simulation) Craft(id uint64) (*Craft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	craft, ok := s.crafts[id]
	return craft, ok
}

// SetInput stores pilot input for the craft, consumed on the next tick
func (s *Simulation) SetInput(craftID uint64, in flight.ControlInput) error {
	s.mu.RLock()
	craft, ok := s.crafts[craftID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no craft with id %d", craftID)
	}
	craft.SetInput(in)
	return nil
}

// Step advances the simulation by exactly one fixed tick
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	s.World.Update(float32(s.timeStep))
}

// Running reports whether the Run loop is active
func (s *Simulation) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Stop halts a Run loop after the current tick
func (s *Simulation) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Run drives Step at the configured tick rate until the context is
// cancelled or Stop is called. Wall-clock jitter does not change the
// dt the physics sees; every tick is exactly TimeStep seconds.
func (s *Simulation) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("simulation already running")
	}
	s.running = true
	s.mu.Unlock()

	interval := time.Duration(float64(time.Second) * s.timeStep)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "simulation started",
		"tick_rate", s.Config.TickRate,
		"time_step", s.timeStep,
	)

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			s.logger.Info(ctx, "simulation stopped", "ticks", s.CurrentTick())
			return ctx.Err()
		case <-ticker.C:
			if !s.Running() {
				s.logger.Info(ctx, "simulation stopped", "ticks", s.CurrentTick())
				return nil
			}
			s.Step()
		}
	}
}
