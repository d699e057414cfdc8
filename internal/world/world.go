// Package world owns the collection of rigid bodies and advances them
// through fixed sub-steps each frame. The world exclusively owns its body
// registry; callers mutate it only through AddBody and RemoveBody.
package world

import (
	"skyfall/internal/body"
	"skyfall/internal/phys"
)

const DefaultSubSteps = 1

// Stats summarizes the registry for diagnostics.
type Stats struct {
	Bodies int
	Active int
}

// World steps every registered body in insertion order. Gravity is a
// world-level broadcast: the shared vector is passed into each body's
// Integrate call rather than duplicated per body.
//
// Not safe for concurrent use; all stepping happens on one thread.
type World struct {
	bodies   []*body.Body
	gravity  phys.Vec3
	elapsed  float64
	subSteps int
}

func New() *World {
	return &World{
		gravity:  phys.Vec3{Y: -9.81},
		subSteps: DefaultSubSteps,
	}
}

// AddBody registers b. Duplicate insertion is a no-op.
func (w *World) AddBody(b *body.Body) {
	for _, existing := range w.bodies {
		if existing == b {
			return
		}
	}
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters b. Removing an absent body is a no-op.
func (w *World) RemoveBody(b *body.Body) {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Step advances all bodies by dt, split into the configured number of equal
// sub-steps to bound integration error at large frame times.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	n := w.subSteps
	if n < 1 {
		n = 1
	}
	subDt := dt / float64(n)

	for i := 0; i < n; i++ {
		w.elapsed += subDt
		for _, b := range w.bodies {
			b.Integrate(subDt, w.gravity, w.elapsed)
		}
	}
}

func (w *World) Gravity() phys.Vec3 { return w.gravity }

func (w *World) SetGravity(g phys.Vec3) { w.gravity = g }

func (w *World) SetSubSteps(n int) {
	if n >= 1 {
		w.subSteps = n
	}
}

func (w *World) SubSteps() int { return w.subSteps }

// Elapsed returns accumulated simulation time in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// ResetClock zeroes accumulated simulation time.
func (w *World) ResetClock() { w.elapsed = 0 }

func (w *World) Stats() Stats {
	s := Stats{Bodies: len(w.bodies)}
	for _, b := range w.bodies {
		if b.Active() {
			s.Active++
		}
	}
	return s
}
