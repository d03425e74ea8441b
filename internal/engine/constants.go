package engine

import (
	"math"

	"github.com/tphakala/go-wavetable-synth/internal/wavetable"
)

// Render geometry
const (
	// semitonesPerOctave converts a note distance into an octave coordinate.
	semitonesPerOctave = 12.0

	// timbreSpan maps timbre-1 in [0, 1] onto the timbre slot coordinate.
	timbreSpan = float64(wavetable.TimbreSlots - 1)

	// rampHalf is the 1/2 of the integrated linear frequency ramp.
	rampHalf = 0.5

	// maxFreq is the highest layer frequency in cycles per sample (Nyquist).
	maxFreq = 0.5
)

// Output stage
const (
	// arctanScale maps atan output (-pi/2, pi/2) onto (-1, 1).
	arctanScale = 2 / math.Pi

	// maxPeak is the largest output peak that fits an int32 sample.
	maxPeak = float64(math.MaxInt32)
)

// Random stream identifiers. The table and the per-block jitter use
// independent PCG streams derived from the same seed.
const (
	tableStream  = 1
	jitterStream = 2
)
