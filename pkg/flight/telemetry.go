// pkg/flight/telemetry.go
package flight

import (
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// Snapshot is the per-tick telemetry record published to external
// consumers (HUD, recorder, network layer). It is a strongly-typed
// struct shared by producer and consumers, so a renamed field is a
// compile error rather than a silent key typo.
type Snapshot struct {
	CraftID uint64
	Tick    uint64

	Speed       float64
	TargetSpeed float64

	Velocity       physics.Vector3
	ThrustVelocity physics.Vector3
	RCSVelocity    physics.Vector3
	Maneuvering    bool

	POVForward     physics.Vector3
	POVRight       physics.Vector3
	POVUp          physics.Vector3
	POVOrientation physics.Quaternion

	BodyForward     physics.Vector3
	BodyOrientation physics.Quaternion

	AssistLevel AssistLevel
}

// Sink receives telemetry snapshots. Implementations must not retain
// the snapshot beyond the call; it is published once per tick.
type Sink interface {
	Publish(Snapshot)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Snapshot)

// Publish calls the wrapped function
func (f SinkFunc) Publish(s Snapshot) {
	f(s)
}
