package analysis

import (
	"math"
	"testing"

	"skyfall/internal/phys"
	"skyfall/internal/telemetry"
)

func TestDominantFrequency_Sine(t *testing.T) {
	const (
		freq = 2.0 // Hz
		dt   = 0.01
		n    = 1024
	)

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	got, power := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 0.2 {
		t.Errorf("dominant frequency = %v, want ≈%v", got, freq)
	}
	if power <= 0 {
		t.Errorf("power = %v, want > 0", power)
	}
}

func TestDominantFrequency_Empty(t *testing.T) {
	f, p := DominantFrequency(nil, 0.01)
	if f != 0 || p != 0 {
		t.Errorf("empty series: got %v/%v, want 0/0", f, p)
	}
}

func TestPowerSpectrum_Empty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("spectrum of nil = %v, want nil", ps)
	}
}

func TestDescentRateSeries_ZeroMean(t *testing.T) {
	snaps := []telemetry.Snapshot{
		{Velocity: phys.Vec3{Y: -10}},
		{Velocity: phys.Vec3{Y: -20}},
		{Velocity: phys.Vec3{Y: -30}},
	}

	series := DescentRateSeries(snaps)
	if len(series) != 3 {
		t.Fatalf("series length = %d", len(series))
	}

	sum := 0.0
	for _, v := range series {
		sum += v
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("series mean not removed: sum = %v", sum)
	}
	if series[0] >= series[2] {
		t.Errorf("series ordering lost: %v", series)
	}
}
