// Package mathutil provides small numeric helpers shared by the synthesis packages.
package mathutil

import (
	"math"
)

// NoteToFrequency converts a fractional MIDI note number to Hz using
// twelve-tone equal temperament with A4 (note 69) at 440 Hz.
func NoteToFrequency(note float64) float64 {
	return concertPitchHz * math.Exp2((note-concertPitchNote)/semitonesPerOct)
}

// FrequencyToNote is the inverse of NoteToFrequency.
func FrequencyToNote(freq float64) float64 {
	return concertPitchNote + semitonesPerOct*math.Log2(freq/concertPitchHz)
}

// Lerp interpolates linearly between a and b: a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]. NaN is mapped to lo.
func Clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Frac returns the fractional part of x relative to math.Floor, in [0, 1).
func Frac(x float64) float64 {
	return x - math.Floor(x)
}

// Wrap maps any integer index onto [0, n). n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
