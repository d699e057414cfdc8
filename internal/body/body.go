// Package body implements the rigid body for one falling mass: a
// translation-only semi-implicit Euler integrator with ground and boundary
// collision resolution. The body accumulates forces over a step, integrates
// them on Integrate, and clears the accumulator for the next frame.
package body

import (
	"skyfall/internal/phys"
)

const (
	DefaultRestitution   = 0.1 // near-inelastic ground impact
	DefaultFriction      = 0.9 // horizontal velocity retained per step on ground
	DefaultGroundLevel   = 0.0
	DefaultBoundaryX     = 1000.0
	DefaultBoundaryZ     = 1000.0
	DefaultAirResistance = 0.3 // baseline quadratic resistance, N·s²/m²

	// GroundContactThreshold is the distance to ground below which the
	// body counts as in contact.
	GroundContactThreshold = 0.05

	// VelocityFloor zeroes residual speed in ground contact to stop
	// micro-jitter at rest. Airborne motion is never clamped.
	VelocityFloor = 0.1
)

type Config struct {
	Mass          float64
	Position      phys.Vec3
	GroundLevel   float64
	BoundaryX     float64
	BoundaryZ     float64
	Restitution   float64
	Friction      float64
	AirResistance float64
}

func DefaultConfig() Config {
	return Config{
		Mass:          80.0,
		GroundLevel:   DefaultGroundLevel,
		BoundaryX:     DefaultBoundaryX,
		BoundaryZ:     DefaultBoundaryZ,
		Restitution:   DefaultRestitution,
		Friction:      DefaultFriction,
		AirResistance: DefaultAirResistance,
	}
}

// Body is a single falling rigid mass. It is not safe for concurrent use;
// all stepping happens on the simulation thread.
type Body struct {
	position     phys.Vec3
	velocity     phys.Vec3
	acceleration phys.Vec3
	force        phys.Vec3

	mass        float64
	active      bool
	onGround    bool
	lastContact float64

	groundLevel   float64
	boundaryX     float64
	boundaryZ     float64
	restitution   float64
	friction      float64
	airResistance float64
}

// New builds a body from cfg. Mass must be positive.
func New(cfg Config) (*Body, error) {
	if cfg.Mass <= 0 {
		return nil, phys.ErrNonPositiveMass
	}
	return &Body{
		position:      cfg.Position,
		mass:          cfg.Mass,
		active:        true,
		groundLevel:   cfg.GroundLevel,
		boundaryX:     cfg.BoundaryX,
		boundaryZ:     cfg.BoundaryZ,
		restitution:   cfg.Restitution,
		friction:      cfg.Friction,
		airResistance: cfg.AirResistance,
	}, nil
}

func (b *Body) Position() phys.Vec3      { return b.position }
func (b *Body) Velocity() phys.Vec3      { return b.velocity }
func (b *Body) Acceleration() phys.Vec3  { return b.acceleration }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Active() bool             { return b.active }
func (b *Body) OnGround() bool           { return b.onGround }
func (b *Body) LastContactTime() float64 { return b.lastContact }
func (b *Body) GroundLevel() float64     { return b.groundLevel }

// Altitude is the height above ground level.
func (b *Body) Altitude() float64 { return b.position.Y - b.groundLevel }

func (b *Body) SetActive(active bool) { b.active = active }

func (b *Body) SetPosition(p phys.Vec3) { b.position = p }

func (b *Body) SetVelocity(v phys.Vec3) { b.velocity = v }

// SetMass rejects non-positive values, keeping the prior mass.
func (b *Body) SetMass(m float64) error {
	if m <= 0 {
		return phys.ErrNonPositiveMass
	}
	b.mass = m
	return nil
}

// ApplyForce adds f to the accumulator for the current step.
func (b *Body) ApplyForce(f phys.Vec3) {
	b.force = b.force.Add(f)
}

// ApplyImpulse changes velocity immediately by j/m.
func (b *Body) ApplyImpulse(j phys.Vec3) {
	b.velocity = b.velocity.Add(j.Scale(1 / b.mass))
}

// Integrate advances the body by dt under the given gravity vector plus all
// accumulated forces, then resolves collisions and clears the accumulator.
// now is accumulated simulation time, used only for contact bookkeeping.
func (b *Body) Integrate(dt float64, gravity phys.Vec3, now float64) {
	if !b.active || dt <= 0 {
		return
	}

	f := b.force.Add(gravity.Scale(b.mass))

	// Baseline quadratic air resistance on the body itself, distinct from
	// the canopy drag supplied through the accumulator.
	speed := b.velocity.Length()
	if speed > phys.VelocityEpsilon {
		f = f.Add(b.velocity.Scale(-b.airResistance * speed))
	}

	b.acceleration = f.Scale(1 / b.mass)

	// Semi-implicit Euler: velocity first, position from the new velocity.
	b.velocity = b.velocity.Add(b.acceleration.Scale(dt))
	b.position = b.position.Add(b.velocity.Scale(dt)).Add(b.acceleration.Scale(0.5 * dt * dt))

	// Ground before boundaries.
	b.resolveGround()
	b.resolveBoundaries()

	if b.position.Y-b.groundLevel <= GroundContactThreshold {
		if b.velocity.Length() < VelocityFloor {
			b.velocity = phys.Vec3{}
		}
		b.onGround = true
		b.lastContact = now
	} else {
		b.onGround = false
	}

	b.force = phys.Vec3{}
}

func (b *Body) resolveGround() {
	if b.position.Y >= b.groundLevel {
		return
	}
	b.position.Y = b.groundLevel
	if b.velocity.Y < 0 {
		b.velocity.Y = -b.velocity.Y * b.restitution
	}
	if b.onGround {
		b.velocity.X *= b.friction
		b.velocity.Z *= b.friction
	}
}

func (b *Body) resolveBoundaries() {
	if b.position.X > b.boundaryX {
		b.position.X = b.boundaryX
		b.velocity.X = -b.velocity.X * b.restitution
	} else if b.position.X < -b.boundaryX {
		b.position.X = -b.boundaryX
		b.velocity.X = -b.velocity.X * b.restitution
	}

	if b.position.Z > b.boundaryZ {
		b.position.Z = b.boundaryZ
		b.velocity.Z = -b.velocity.Z * b.restitution
	} else if b.position.Z < -b.boundaryZ {
		b.position.Z = -b.boundaryZ
		b.velocity.Z = -b.velocity.Z * b.restitution
	}
}

// Reset places the body at position with zero velocity, acceleration, and
// accumulated force, clearing contact state and reactivating it.
func (b *Body) Reset(position phys.Vec3) {
	b.position = position
	b.velocity = phys.Vec3{}
	b.acceleration = phys.Vec3{}
	b.force = phys.Vec3{}
	b.onGround = false
	b.lastContact = 0
	b.active = true
}

// KineticEnergy returns ½·m·v².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.velocity.LengthSq()
}

// PotentialEnergy returns m·g·h above ground level.
func (b *Body) PotentialEnergy(g float64) float64 {
	return b.mass * g * b.Altitude()
}

// TotalEnergy returns the total mechanical energy.
func (b *Body) TotalEnergy(g float64) float64 {
	return b.KineticEnergy() + b.PotentialEnergy(g)
}
