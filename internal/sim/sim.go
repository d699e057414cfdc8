package sim

import (
	"skyfall/internal/atmosphere"
	"skyfall/internal/body"
	"skyfall/internal/canopy"
	"skyfall/internal/env"
	"skyfall/internal/forces"
	"skyfall/internal/phys"
	"skyfall/internal/telemetry"
	"skyfall/internal/world"
)

// Simulator drives one jumper through a descent: it owns the world, the
// jumper's rigid body, the canopy state machine, the environment, and the
// atmosphere model. Deployment timing runs on accumulated simulation time,
// so runs are deterministic regardless of frame rate or pauses.
type Simulator struct {
	world  *world.World
	jumper *body.Body
	canopy *canopy.Canopy
	env    *env.Environment
	atm    *atmosphere.Model

	metrics   []telemetry.Metric
	observers []telemetry.Observer

	initialPosition phys.Vec3
}

// New builds a simulator around a jumper with the given body configuration.
func New(bodyCfg body.Config) (*Simulator, error) {
	jumper, err := body.New(bodyCfg)
	if err != nil {
		return nil, err
	}

	e := env.New()

	w := world.New()
	w.SetGravity(phys.Vec3{Y: -e.Gravity()})
	w.AddBody(jumper)

	return &Simulator{
		world:           w,
		jumper:          jumper,
		canopy:          canopy.New(),
		env:             e,
		atm:             atmosphere.NewStandard(),
		initialPosition: bodyCfg.Position,
	}, nil
}

func (s *Simulator) AddMetric(m telemetry.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o telemetry.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *world.World           { return s.world }
func (s *Simulator) Jumper() *body.Body            { return s.jumper }
func (s *Simulator) Canopy() *canopy.Canopy        { return s.canopy }
func (s *Simulator) Environment() *env.Environment { return s.env }
func (s *Simulator) Atmosphere() *atmosphere.Model { return s.atm }

// Elapsed returns accumulated simulation time.
func (s *Simulator) Elapsed() float64 { return s.world.Elapsed() }

// Step advances the descent by dt: the canopy state machine first, then the
// force model, then the world integration. Gravity is applied inside the
// integrator; only canopy forces go through the accumulator.
func (s *Simulator) Step(dt float64) {
	now := s.world.Elapsed()
	s.canopy.Update(now)

	altitude := s.jumper.Altitude()
	if s.canopy.Open() && !s.jumper.OnGround() {
		sample := s.atm.At(altitude)
		f := forces.CanopyForces(s.jumper.Velocity(), altitude, s.jumper.Mass(), s.canopy, s.env, sample, now)
		s.jumper.ApplyForce(f)
	}

	s.world.Step(dt)
}

// Snapshot returns the fixed-shape telemetry record for the current state.
func (s *Simulator) Snapshot() telemetry.Snapshot {
	altitude := s.jumper.Altitude()
	sample := s.atm.At(altitude)
	g := s.env.Gravity()

	return telemetry.Snapshot{
		Time:         s.world.Elapsed(),
		Position:     s.jumper.Position(),
		Velocity:     s.jumper.Velocity(),
		Acceleration: s.jumper.Acceleration(),
		Phase:        s.canopy.Phase(),
		Altitude:     altitude,
		Temperature:  sample.Temperature,
		Pressure:     sample.Pressure,
		Density:      sample.Density,
		TerminalVelocity: forces.TerminalVelocity(
			s.jumper.Mass(), g, sample.Density, s.canopy.Area(), s.canopy.DragVertical()),
		KineticEnergy:   s.jumper.KineticEnergy(),
		PotentialEnergy: s.jumper.PotentialEnergy(g),
		TotalEnergy:     s.jumper.TotalEnergy(g),
		OnGround:        s.jumper.OnGround(),
		Active:          s.jumper.Active(),
	}
}

// DeployCanopy requests deployment at the current altitude and time.
func (s *Simulator) DeployCanopy() (bool, canopy.RejectReason) {
	return s.canopy.Deploy(s.jumper.Altitude(), s.world.Elapsed())
}

// Reset returns the jumper to the initial position at rest in freefall and
// zeroes the simulation clock.
func (s *Simulator) Reset() {
	s.jumper.Reset(s.initialPosition)
	s.canopy.Reset()
	s.world.ResetClock()
}

func (s *Simulator) SetWind(strength, direction float64) error {
	return s.env.SetWind(strength, direction)
}

func (s *Simulator) DisableWind() { s.env.DisableWind() }

// SetGravity updates both the environment constant and the world broadcast
// vector so the force model and the integrator stay consistent.
func (s *Simulator) SetGravity(g float64) {
	s.env.SetGravity(g)
	s.world.SetGravity(phys.Vec3{Y: -g})
}

func (s *Simulator) SetMass(m float64) error { return s.jumper.SetMass(m) }

func (s *Simulator) SetCanopyArea(a float64) error { return s.canopy.SetArea(a) }

func (s *Simulator) SetDragCoefficients(vertical, horizontal float64) error {
	return s.canopy.SetDragCoefficients(vertical, horizontal)
}

func (s *Simulator) ApplyForce(f phys.Vec3)   { s.jumper.ApplyForce(f) }
func (s *Simulator) ApplyImpulse(j phys.Vec3) { s.jumper.ApplyImpulse(j) }
func (s *Simulator) SetVelocity(v phys.Vec3)  { s.jumper.SetVelocity(v) }
func (s *Simulator) SetPosition(p phys.Vec3)  { s.jumper.SetPosition(p) }
