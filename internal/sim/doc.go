// Package sim orchestrates one parachute descent. A [Simulator] owns the
// world, the jumper's rigid body, the canopy state machine, and the
// environment, and advances them in lockstep:
//
//	s, _ := sim.New(body.DefaultConfig())
//	result, _ := s.Run(ctx, sim.DefaultConfig())
//
// Time is caller-supplied: the simulator never reads a wall clock, and
// deployment progress is measured in accumulated simulation time, so runs
// are deterministic and pausable.
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Confine a simulator to one
// goroutine, or guard every call with a single mutex.
package sim
