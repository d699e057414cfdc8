package phys

import "errors"

// Domain errors for simulation configuration and stepping.
var (
	// ErrNonPositiveMass indicates a body mass of zero or below.
	ErrNonPositiveMass = errors.New("phys: mass must be positive")

	// ErrNegativeArea indicates a negative canopy area.
	ErrNegativeArea = errors.New("phys: canopy area must be non-negative")

	// ErrNegativeDrag indicates a negative drag coefficient.
	ErrNegativeDrag = errors.New("phys: drag coefficient must be non-negative")

	// ErrNegativeWind indicates a negative wind strength.
	ErrNegativeWind = errors.New("phys: wind strength must be non-negative")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("phys: invalid state (NaN or Inf detected)")

	// ErrInvalidTimestep indicates a non-positive integration timestep.
	ErrInvalidTimestep = errors.New("phys: timestep must be positive")
)
