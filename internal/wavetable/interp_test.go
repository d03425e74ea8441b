package wavetable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampBank builds a bank whose tables are filled with recognisable values:
// level k, sample j of (cycle c, timbre t) holds 1000*c + 100*t + 10*k + j.
func rampBank(t *testing.T, bits, cycles int) *Bank {
	t.Helper()
	b, err := NewBank(BankConfig{TableBits: bits, Cycles: cycles, HarmonicLimit: 1})
	require.NoError(t, err)
	l := b.Layout()
	for c := range cycles {
		for s := range TimbreSlots {
			for k := range l.Levels() {
				level := b.Level(c, s, k)
				for j := range level {
					level[j] = float64(1000*c + 100*s + 10*k + j)
				}
			}
		}
	}
	return b
}

// =============================================================================
// Layer 1 and 2: octave and linear samples
// =============================================================================

func TestOctaveSample_Wraps(t *testing.T) {
	b := rampBank(t, 4, 1)
	l := b.Layout()
	w := b.Table(0, 0)

	assert.InDelta(t, 0.0, l.OctaveSample(w, 0, 0), 0)
	assert.InDelta(t, 15.0, l.OctaveSample(w, 15, 0), 0)
	assert.InDelta(t, 0.0, l.OctaveSample(w, 16, 0), 0, "index should wrap at the level length")
	assert.InDelta(t, 15.0, l.OctaveSample(w, -1, 0), 0, "negative index should wrap too")
	assert.InDelta(t, 11.0, l.OctaveSample(w, 9, 1), 0, "level 1 has 8 samples: 9 wraps to 1")
	assert.InDelta(t, 21.0, l.OctaveSample(w, 5, 2), 0, "level 2 has 4 samples: 5 wraps to 1")
}

func TestLinearSample(t *testing.T) {
	b := rampBank(t, 4, 1)
	l := b.Layout()
	w := b.Table(0, 0)

	assert.InDelta(t, 3.0, l.LinearSample(w, 3, 0), 1e-12)
	assert.InDelta(t, 3.25, l.LinearSample(w, 3.25, 0), 1e-12)
	// Wrap from the last sample back to the first.
	assert.InDelta(t, 15*0.5, l.LinearSample(w, 15.5, 0), 1e-12)

	// Level 1 is addressed in level-0 units: position 6 is its sample 3.
	assert.InDelta(t, 13.0, l.LinearSample(w, 6, 1), 1e-12)
	assert.InDelta(t, 13.5, l.LinearSample(w, 7, 1), 1e-12)
}

// =============================================================================
// Layer 3: octave interpolation
// =============================================================================

func TestOctaveInterpSample(t *testing.T) {
	b := rampBank(t, 4, 1)
	l := b.Layout()
	w := b.Table(0, 0)

	// pos 4 reads sample 4 of level 0 (value 4) and sample 2 of level 1 (value 12).
	assert.InDelta(t, 4.0, l.OctaveInterpSample(w, 4, 0), 1e-12)
	assert.InDelta(t, 8.0, l.OctaveInterpSample(w, 4, 0.5), 1e-12)
	assert.InDelta(t, 12.0, l.OctaveInterpSample(w, 4, 1), 1e-12)
}

// =============================================================================
// Layer 4: timbre and cycle cross-fades
// =============================================================================

func TestBankSample_TimbreAndCycle(t *testing.T) {
	b := rampBank(t, 4, 3)

	assert.InDelta(t, 100.0, b.Sample(0, 0, 1, 0), 1e-12)
	assert.InDelta(t, 150.0, b.Sample(0, 0, 1.5, 0), 1e-12)
	assert.InDelta(t, 1200.0, b.Sample(0, 0, 2, 1), 1e-12)
	assert.InDelta(t, 1700.0, b.Sample(0, 0, 2, 1.5), 1e-12)
}

func TestBankSample_Wrapping(t *testing.T) {
	b := rampBank(t, 4, 3)

	// Timbre 3.5 fades between the last slot and slot 0.
	assert.InDelta(t, 150.0, b.Sample(0, 0, 3.5, 0), 1e-12)
	assert.InDelta(t, b.Sample(2, 0, 0, 0), b.Sample(2, 0, TimbreSlots, 0), 1e-12)
	assert.InDelta(t, b.Sample(2, 0, 1, 0), b.Sample(2, 0, 1-TimbreSlots, 0), 1e-12)

	// Cycle 2.5 fades between the last cycle slot and cycle 0.
	assert.InDelta(t, 1000.0, b.Sample(0, 0, 0, 2.5), 1e-12)
	assert.InDelta(t, b.Sample(0, 0, 0, 0), b.Sample(0, 0, 0, 3), 1e-12)
}

func TestBankSample_OctaveClamped(t *testing.T) {
	b := rampBank(t, 5, 1)
	maxOct := float64(b.Layout().MaxOctave())

	assert.InDelta(t, b.Sample(7, 0, 0, 0), b.Sample(7, -3, 0, 0), 1e-12)
	assert.InDelta(t, b.Sample(7, maxOct, 0, 0), b.Sample(7, 40, 0, 0), 1e-12)
	assert.InDelta(t, b.Sample(7, 0, 0, 0), b.Sample(7, math.NaN(), 0, 0), 1e-12)
}

func TestBankSample_DegenerateCoordinatesDoNotPanic(t *testing.T) {
	b := rampBank(t, 4, 2)
	coords := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e300, -0.0}
	assert.NotPanics(t, func() {
		for _, pos := range coords {
			for _, x := range coords {
				_ = b.Sample(pos, x, x, x)
			}
		}
	})
}
