// Package env holds the mutable environment settings shared by one
// simulation session: gravity, wind, and sea-level atmosphere constants.
// It is an explicit value handed to the force model rather than package
// globals, so a session stays testable and thread-confinable.
package env

import (
	"math"

	"skyfall/internal/phys"
)

const (
	DefaultGravity = 9.81 // m/s²

	// MinDeployAltitude is the ground clearance below which canopy
	// deployment is rejected and wind on the canopy is ignored.
	MinDeployAltitude = 5.0
)

type Environment struct {
	gravity       float64
	windStrength  float64 // m/s, ≥ 0
	windDirection float64 // radians, 0 = +X, π/2 = +Z
	windEnabled   bool
}

func New() *Environment {
	return &Environment{gravity: DefaultGravity}
}

func (e *Environment) Gravity() float64 { return e.gravity }

func (e *Environment) SetGravity(g float64) { e.gravity = g }

// SetWind configures wind strength (m/s) and direction (radians).
// A negative strength is rejected and the previous wind kept.
func (e *Environment) SetWind(strength, direction float64) error {
	if strength < 0 || math.IsNaN(strength) {
		return phys.ErrNegativeWind
	}
	e.windStrength = strength
	e.windDirection = direction
	e.windEnabled = strength > 0
	return nil
}

func (e *Environment) DisableWind() {
	e.windEnabled = false
}

func (e *Environment) WindEnabled() bool { return e.windEnabled }

func (e *Environment) WindStrength() float64 { return e.windStrength }

func (e *Environment) WindDirection() float64 { return e.windDirection }

// WindVector returns the wind velocity in world coordinates. Wind blows
// horizontally; the vertical component is always zero.
func (e *Environment) WindVector() phys.Vec3 {
	if !e.windEnabled {
		return phys.Vec3{}
	}
	return phys.Vec3{
		X: e.windStrength * math.Cos(e.windDirection),
		Y: 0,
		Z: e.windStrength * math.Sin(e.windDirection),
	}
}
