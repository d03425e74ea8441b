// Package analysis measures generated tables and rendered audio: harmonic
// spectra, zero-crossing rates and signal levels.
package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// HarmonicPowers returns the power of each harmonic of one waveform cycle.
// Index h is h cycles per period; index 0 is DC. Powers are normalised by the
// cycle length so cycles of different lengths describing the same waveform
// compare equal.
func HarmonicPowers(cycle []float64) []float64 {
	n := len(cycle)
	if n == 0 {
		return nil
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, cycle)

	powers := make([]float64, len(coeffs))
	scale := 1.0 / float64(n)
	for h, c := range coeffs {
		m := cmplx.Abs(c) * scale
		powers[h] = m * m
	}
	return powers
}

// HighBandEnergy sums the power of all harmonics at or above cutoff.
func HighBandEnergy(cycle []float64, cutoff int) float64 {
	powers := HarmonicPowers(cycle)
	var sum float64
	for h := max(cutoff, 0); h < len(powers); h++ {
		sum += powers[h]
	}
	return sum
}

// HighestHarmonic returns the highest harmonic whose power exceeds floor,
// or 0 when no harmonic does.
func HighestHarmonic(cycle []float64, floor float64) int {
	powers := HarmonicPowers(cycle)
	for h := len(powers) - 1; h > 0; h-- {
		if powers[h] > floor {
			return h
		}
	}
	return 0
}

// SpectralCentroid returns the power-weighted mean harmonic number, ignoring
// DC. It returns 0 for a silent cycle.
func SpectralCentroid(cycle []float64) float64 {
	powers := HarmonicPowers(cycle)
	var weighted, total float64
	for h := 1; h < len(powers); h++ {
		weighted += float64(h) * powers[h]
		total += powers[h]
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}
