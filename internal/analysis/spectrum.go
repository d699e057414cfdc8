// Package analysis provides offline frequency analysis of recorded
// descents, mainly to spot pendulum-style oscillation under an open canopy.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"skyfall/internal/telemetry"
)

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// series' FFT. The zero-frequency bin is included at index 0.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency (Hz) in a series
// sampled every dt seconds, along with its spectral magnitude.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	best, bestPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestPower {
			best = i
			bestPower = ps[i]
		}
	}

	freq := float64(best) / (float64(len(data)) * dt)
	return freq, bestPower
}

// DescentRateSeries extracts the downward-speed series from snapshots,
// with the mean removed so the spectrum highlights oscillation rather than
// the steady descent.
func DescentRateSeries(snaps []telemetry.Snapshot) []float64 {
	if len(snaps) == 0 {
		return nil
	}

	series := make([]float64, len(snaps))
	mean := 0.0
	for i, s := range snaps {
		series[i] = s.DescentRate()
		mean += series[i]
	}
	mean /= float64(len(series))

	for i := range series {
		series[i] -= mean
	}
	return series
}
