package telemetry

import (
	"skyfall/internal/canopy"
	"skyfall/internal/phys"
)

// Snapshot is the fixed-shape per-step telemetry record exposed to external
// collaborators (renderer, storage, metrics). All fields are plain values;
// a snapshot never aliases simulation state.
type Snapshot struct {
	Time float64

	Position     phys.Vec3
	Velocity     phys.Vec3
	Acceleration phys.Vec3

	Phase    canopy.Phase
	Altitude float64

	Temperature float64
	Pressure    float64
	Density     float64

	// TerminalVelocity is the diagnostic estimate for the current
	// deployment state and air density; it is never fed back into the
	// integrator.
	TerminalVelocity float64

	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64

	OnGround bool
	Active   bool
}

// Speed returns the magnitude of the velocity.
func (s Snapshot) Speed() float64 { return s.Velocity.Length() }

// DescentRate returns the downward speed (positive while falling).
func (s Snapshot) DescentRate() float64 { return -s.Velocity.Y }
