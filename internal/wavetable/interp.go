package wavetable

import (
	"math"

	"github.com/tphakala/go-wavetable-synth/internal/mathutil"
)

// OctaveSample returns sample i of octave level k in the packed buffer w.
// i is in level-k units and wraps modulo the level length.
func (l *Layout) OctaveSample(w []float64, i, k int) float64 {
	return w[l.offsets[k]+(i&l.masks[k])]
}

// LinearSample interpolates level k at pos, given in level-0 address units.
func (l *Layout) LinearSample(w []float64, pos float64, k int) float64 {
	p := math.Ldexp(pos, -k)
	fl := math.Floor(p)
	i := int(fl)
	s0 := l.OctaveSample(w, i, k)
	s1 := l.OctaveSample(w, i+1, k)
	return mathutil.Lerp(s0, s1, p-fl)
}

// OctaveInterpSample cross-fades LinearSample between the two levels
// around octave. octave must lie in [0, MaxOctave()].
func (l *Layout) OctaveInterpSample(w []float64, pos, octave float64) float64 {
	fl := math.Floor(octave)
	k := int(fl)
	s0 := l.LinearSample(w, pos, k)
	s1 := l.LinearSample(w, pos, k+1)
	return mathutil.Lerp(s0, s1, octave-fl)
}

// Sample reconstructs one value from continuous coordinates:
// pos in level-0 address units, octave level, timbre slot and cycle slot.
// Timbre and cycle wrap around their slot counts; octave is clamped.
func (b *Bank) Sample(pos, octave, timbre, cycle float64) float64 {
	octave = mathutil.Clamp(octave, 0, b.maxOctave)
	t0, t1, tf := splitCoordinate(timbre, TimbreSlots)
	c0, c1, cf := splitCoordinate(cycle, b.cycles)

	s0 := b.timbreSample(c0, t0, t1, tf, pos, octave)
	s1 := b.timbreSample(c1, t0, t1, tf, pos, octave)
	return mathutil.Lerp(s0, s1, cf)
}

// timbreSample cross-fades two adjacent timbre slots of one cycle slot.
func (b *Bank) timbreSample(cycle, t0, t1 int, tf, pos, octave float64) float64 {
	s0 := b.layout.OctaveInterpSample(b.Table(cycle, t0), pos, octave)
	s1 := b.layout.OctaveInterpSample(b.Table(cycle, t1), pos, octave)
	return mathutil.Lerp(s0, s1, tf)
}

// splitCoordinate maps a continuous slot coordinate onto two adjacent
// slot indices (wrapping modulo n) and the fade between them.
func splitCoordinate(x float64, n int) (i0, i1 int, frac float64) {
	fl := math.Floor(x)
	frac = x - fl
	if !(frac >= 0 && frac < 1) {
		frac = 0
	}
	i0 = mathutil.Wrap(int(fl), n)
	i1 = i0 + 1
	if i1 == n {
		i1 = 0
	}
	return i0, i1, frac
}
