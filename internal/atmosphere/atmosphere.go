package atmosphere

import (
	"math"

	"skyfall/internal/phys"
)

// ISA-style constants for the modeled atmosphere.
const (
	DefaultSeaLevelTemp     = 15.0     // °C
	DefaultSeaLevelPressure = 101325.0 // Pa
	DefaultLapseRate        = 0.0065   // K per meter
	StandardGravity         = 9.80665  // m/s²
	MolarMassAir            = 0.0289644
	GasConstant             = 8.31447

	DefaultMaxAltitude = 15000.0
	DefaultMinTemp     = -56.5
	DefaultMaxTemp     = 50.0

	kelvinOffset = 273.15
)

// Sample is one fixed-shape atmospheric reading at a given altitude.
type Sample struct {
	Altitude    float64 // m, after clamping
	Temperature float64 // °C
	Pressure    float64 // Pa
	Density     float64 // kg/m³
}

// Model maps altitude to temperature, pressure, and density using the
// barometric formula with a linear temperature lapse. All methods are pure;
// altitude and temperature are clamped to the model bounds before use so the
// exponential never diverges at extreme or negative altitudes.
type Model struct {
	SeaLevelTemp     float64
	SeaLevelPressure float64
	LapseRate        float64
	Gravity          float64
	MaxAltitude      float64
	MinTemp          float64
	MaxTemp          float64
}

// NewStandard returns a model with International Standard Atmosphere values.
func NewStandard() *Model {
	return &Model{
		SeaLevelTemp:     DefaultSeaLevelTemp,
		SeaLevelPressure: DefaultSeaLevelPressure,
		LapseRate:        DefaultLapseRate,
		Gravity:          StandardGravity,
		MaxAltitude:      DefaultMaxAltitude,
		MinTemp:          DefaultMinTemp,
		MaxTemp:          DefaultMaxTemp,
	}
}

func (m *Model) clampAltitude(h float64) float64 {
	return clamp(h, 0, m.MaxAltitude)
}

// Temperature returns air temperature in °C at altitude h.
func (m *Model) Temperature(h float64) float64 {
	h = m.clampAltitude(h)
	t := m.SeaLevelTemp - m.LapseRate*h
	return clamp(t, m.MinTemp, m.MaxTemp)
}

// Pressure returns air pressure in Pa at altitude h.
func (m *Model) Pressure(h float64) float64 {
	h = m.clampAltitude(h)
	tK := m.Temperature(h) + kelvinOffset
	return m.SeaLevelPressure * math.Exp(-MolarMassAir*m.Gravity*h/(GasConstant*tK))
}

// Density returns air density in kg/m³ at altitude h via the ideal gas law.
func (m *Model) Density(h float64) float64 {
	tK := m.Temperature(h) + kelvinOffset
	return m.Pressure(h) * MolarMassAir / (GasConstant * tK)
}

// At samples temperature, pressure, and density at altitude h in one call.
func (m *Model) At(h float64) Sample {
	h = m.clampAltitude(h)
	t := m.Temperature(h)
	p := m.Pressure(h)
	tK := t + kelvinOffset
	return Sample{
		Altitude:    h,
		Temperature: t,
		Pressure:    p,
		Density:     p * MolarMassAir / (GasConstant * tK),
	}
}

// AtPosition samples the atmosphere at the altitude of a world position.
func (m *Model) AtPosition(pos phys.Vec3) Sample {
	return m.At(pos.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
