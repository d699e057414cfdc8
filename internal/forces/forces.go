// Package forces computes the force contributions acting on a falling body:
// gravity, aerodynamic drag, wind on the canopy, and suspension-line tension.
// Each contributor is a pure function over body state and environment
// returning a vector; the integrator sums them. Nothing here mutates state.
package forces

import (
	"math"

	"skyfall/internal/atmosphere"
	"skyfall/internal/canopy"
	"skyfall/internal/env"
	"skyfall/internal/phys"
)

// TensionStartFraction is the share of body weight the canopy carries the
// instant opening begins; it ramps linearly to full weight as the canopy
// inflates, avoiding a force discontinuity at deployment.
const TensionStartFraction = 0.8

// Gravity returns the weight vector (0, -m·g, 0).
func Gravity(mass, g float64) phys.Vec3 {
	return phys.Vec3{Y: -mass * g}
}

// Drag returns the quadratic drag force opposing vel:
// F = -½·Cd·A·ρ·|v|²·v̂. A near-zero velocity yields the zero vector so
// normalization never produces NaN.
func Drag(vel phys.Vec3, cd, area, density float64) phys.Vec3 {
	speed := vel.Length()
	if speed < phys.VelocityEpsilon {
		return phys.Vec3{}
	}
	magnitude := 0.5 * cd * area * density * speed * speed
	return vel.Normalized().Scale(-magnitude)
}

// Wind returns the drag force from wind pushing on an open canopy. The force
// is computed against the relative velocity (wind − body velocity) using the
// horizontal drag coefficient and the canopy area, and is zero below the
// near-ground threshold.
func Wind(bodyVel, windVel phys.Vec3, cdHorizontal, canopyArea, density, altitude float64) phys.Vec3 {
	if altitude <= env.MinDeployAltitude {
		return phys.Vec3{}
	}
	// Still air contributes no separate wind term; body motion through it
	// is already covered by Drag.
	if windVel.Length() < phys.VelocityEpsilon {
		return phys.Vec3{}
	}
	rel := windVel.Sub(bodyVel)
	speed := rel.Length()
	if speed < phys.VelocityEpsilon {
		return phys.Vec3{}
	}
	magnitude := 0.5 * cdHorizontal * canopyArea * density * speed * speed
	return rel.Normalized().Scale(magnitude)
}

// Tension returns the upward load the canopy exerts through the lines.
// progress is opening progress in [0,1]: the load ramps from
// TensionStartFraction of body weight to full weight as the canopy inflates,
// then stays at full weight.
func Tension(mass, g, progress float64) phys.Vec3 {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	fraction := TensionStartFraction + (1-TensionStartFraction)*progress
	return phys.Vec3{Y: mass * g * fraction}
}

// CanopyForces sums drag, wind, and tension for one step. These are the
// additional forces applied only while the canopy is open; gravity is applied
// unconditionally by the integrator so freefall behaves correctly even with
// no canopy modeled. The wind term only enters when the environment has wind
// configured, so still air never adds a second drag contribution.
func CanopyForces(vel phys.Vec3, altitude, mass float64, c *canopy.Canopy, e *env.Environment, sample atmosphere.Sample, now float64) phys.Vec3 {
	if !c.Open() {
		return phys.Vec3{}
	}

	total := Drag(vel, c.DragVertical(), c.Area(), sample.Density)
	if e.WindEnabled() {
		total = total.Add(Wind(vel, e.WindVector(), c.DragHorizontal(), c.CanopyArea(), sample.Density, altitude))
	}
	total = total.Add(Tension(mass, e.Gravity(), c.Progress(now)))
	return total
}

// TerminalVelocity estimates the speed at which drag balances weight:
// Vt = sqrt(2·m·g / (ρ·A·Cd)). Diagnostic only; never fed back into the
// integrator.
func TerminalVelocity(mass, g, density, area, cd float64) float64 {
	denom := density * area * cd
	if denom <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(2 * mass * g / denom)
}
