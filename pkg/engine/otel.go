// pkg/engine/otel.go
package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-starflight/pkg/flight"
)

const instrumentationName = "github.com/opd-ai/go-starflight/pkg/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// flightMetrics holds the engine's instruments. They record against the
// global meter provider, which is a no-op unless the host installs an
// SDK.
type flightMetrics struct {
	ticks        metric.Int64Counter
	speed        metric.Float64Gauge
	targetSpeed  metric.Float64Gauge
	maneuvers    metric.Int64Counter
	assistShifts metric.Int64Counter
}

func newFlightMetrics() (*flightMetrics, error) {
	m := meter()

	ticks, err := m.Int64Counter("starflight.engine.ticks",
		metric.WithDescription("Completed simulation ticks"))
	if err != nil {
		return nil, err
	}

	speed, err := m.Float64Gauge("starflight.craft.speed",
		metric.WithDescription("Current craft speed"),
		metric.WithUnit("m/s"))
	if err != nil {
		return nil, err
	}

	targetSpeed, err := m.Float64Gauge("starflight.craft.target_speed",
		metric.WithDescription("Commanded fly-by-wire speed"),
		metric.WithUnit("m/s"))
	if err != nil {
		return nil, err
	}

	maneuvers, err := m.Int64Counter("starflight.craft.maneuver_transitions",
		metric.WithDescription("Edges of the fly-by-wire maneuvering flag"))
	if err != nil {
		return nil, err
	}

	assistShifts, err := m.Int64Counter("starflight.craft.assist_level_changes",
		metric.WithDescription("Flight-assist level advances"))
	if err != nil {
		return nil, err
	}

	return &flightMetrics{
		ticks:        ticks,
		speed:        speed,
		targetSpeed:  targetSpeed,
		maneuvers:    maneuvers,
		assistShifts: assistShifts,
	}, nil
}

func (fm *flightMetrics) recordTick(ctx context.Context) {
	fm.ticks.Add(ctx, 1)
}

func (fm *flightMetrics) recordSnapshot(ctx context.Context, s flight.Snapshot) {
	attrs := metric.WithAttributes(attribute.Int64("craft_id", int64(s.CraftID)))
	fm.speed.Record(ctx, s.Speed, attrs)
	fm.targetSpeed.Record(ctx, s.TargetSpeed, attrs)
}

func (fm *flightMetrics) recordManeuverEdge(ctx context.Context, craftID uint64) {
	fm.maneuvers.Add(ctx, 1, metric.WithAttributes(attribute.Int64("craft_id", int64(craftID))))
}

func (fm *flightMetrics) recordAssistShift(ctx context.Context, craftID uint64) {
	fm.assistShifts.Add(ctx, 1, metric.WithAttributes(attribute.Int64("craft_id", int64(craftID))))
}
