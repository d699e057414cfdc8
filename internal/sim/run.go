package sim

import (
	"context"
	"fmt"
	"math"

	"skyfall/internal/canopy"
	"skyfall/internal/telemetry"
)

type Config struct {
	Dt       float64
	Duration float64
	SubSteps int

	// AutoDeployAltitude triggers deployment once the jumper falls to or
	// below this altitude. Zero disables automatic deployment.
	AutoDeployAltitude float64

	// StopOnLanding ends the run once the jumper has settled on the ground.
	StopOnLanding bool

	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      120.0,
		SubSteps:      1,
		StopOnLanding: true,
		ValidateState: true,
	}
}

type Result struct {
	Snapshots   []telemetry.Snapshot
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Landed      bool
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// Run executes a full descent from the current state, recording a snapshot
// per step and aggregating metrics. The loop checks ctx between steps; a
// canceled run returns the partial result with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.SubSteps > 0 {
		s.world.SetSubSteps(cfg.SubSteps)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Snapshots: make([]telemetry.Snapshot, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	snap := s.Snapshot()
	result.Snapshots = append(result.Snapshots, snap)
	initialEnergy := snap.TotalEnergy

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}

		if cfg.AutoDeployAltitude > 0 && snap.Phase == canopy.Freefall && snap.Altitude <= cfg.AutoDeployAltitude {
			s.DeployCanopy()
		}

		s.Step(cfg.Dt)
		result.StepsTaken++

		snap = s.Snapshot()

		if cfg.ValidateState && !snap.Position.IsValid() {
			result.Errors = append(result.Errors, SimError{
				Time: snap.Time, Step: i, Message: "invalid state (NaN/Inf)",
			})
			break
		}

		result.Snapshots = append(result.Snapshots, snap)

		if cfg.StopOnLanding && snap.OnGround && snap.Speed() == 0 {
			result.Landed = true
			break
		}
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(snap.TotalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
