// Package telemetry defines the per-step snapshot record and the metrics
// that aggregate over a descent. Metrics observe snapshots during the run
// and report one scalar each; they are diagnostics only and never influence
// the integration.
package telemetry

import "math"

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Observer receives every snapshot as the simulation advances.
type Observer interface {
	OnStep(s Snapshot)
}

// MaxSpeed tracks the peak speed over the descent.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s Snapshot) {
	if v := s.Speed(); v > m.max {
		m.max = v
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// ImpactSpeed records the speed at the moment ground contact first occurs.
type ImpactSpeed struct {
	speed    float64
	prev     Snapshot
	havePrev bool
	hit      bool
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (m *ImpactSpeed) Name() string { return "impact_speed" }

func (m *ImpactSpeed) Observe(s Snapshot) {
	if !m.hit && s.OnGround {
		// The collision response has already zeroed or reflected the
		// velocity by the time the snapshot is taken, so report the speed
		// going into the contact step.
		if m.havePrev {
			m.speed = m.prev.Speed()
		} else {
			m.speed = s.Speed()
		}
		m.hit = true
	}
	m.prev = s
	m.havePrev = true
}

func (m *ImpactSpeed) Value() float64 { return m.speed }

func (m *ImpactSpeed) Reset() {
	m.speed = 0
	m.hit = false
	m.havePrev = false
}

// MeanDescentRate averages the downward speed over airborne samples.
type MeanDescentRate struct {
	sum     float64
	samples int
}

func NewMeanDescentRate() *MeanDescentRate { return &MeanDescentRate{} }

func (m *MeanDescentRate) Name() string { return "mean_descent_rate" }

func (m *MeanDescentRate) Observe(s Snapshot) {
	if s.OnGround {
		return
	}
	m.sum += s.DescentRate()
	m.samples++
}

func (m *MeanDescentRate) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDescentRate) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its initial value. Meaningful for drag-free validation runs;
// with drag the drift simply reports dissipation.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(s Snapshot) {
	if m.samples == 0 {
		m.initial = s.TotalEnergy
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(s.TotalEnergy-m.initial) / math.Abs(m.initial)
		if drift > m.maxDrift {
			m.maxDrift = drift
		}
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
