package wavetable

import (
	"fmt"
	"math"

	"github.com/tphakala/go-wavetable-synth/internal/mathutil"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// RandomSource supplies uniform values in [0, 1).
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// BankConfig holds wavetable bank geometry.
type BankConfig struct {
	// TableBits is log2 of the level-0 table length.
	TableBits int

	// Cycles is the number of cycle slots that can be cross-faded.
	Cycles int

	// HarmonicLimit is the highest harmonic kept in level 0. Each level
	// above keeps half as many, never fewer than the fundamental.
	HarmonicLimit int
}

// Validate checks if the bank configuration is valid.
func (c *BankConfig) Validate() error {
	if c.TableBits < MinTableBits || c.TableBits > MaxTableBits {
		return fmt.Errorf("%w: table bits must be %d-%d", ErrInvalidConfig, MinTableBits, MaxTableBits)
	}
	if c.Cycles < 1 || c.Cycles > MaxCycles {
		return fmt.Errorf("%w: cycles must be 1-%d", ErrInvalidConfig, MaxCycles)
	}
	if c.HarmonicLimit < 1 {
		return fmt.Errorf("%w: harmonic limit must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// HarmonicLimitFor returns the level-0 harmonic limit that keeps every level
// alias-free when octave 0 sits at baseFreq Hz. A level is read up to one
// octave above its nominal pitch while cross-fading into the next level, so
// its top harmonic must stay below Nyquist at twice the nominal frequency.
func HarmonicLimitFor(sampleRate, baseFreq float64) int {
	limit := int(math.Floor(sampleRate / (4 * baseFreq)))
	return max(limit, 1)
}

// Bank is a set of packed octave pyramids indexed by (cycle, timbre).
// It is written once by Generate and only read while rendering.
type Bank struct {
	layout    Layout
	cycles    int
	stride    int
	maxOctave float64
	harmonics []int
	data      []float64
}

// NewBank allocates an empty bank. Call Generate to fill it.
func NewBank(cfg BankConfig) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := NewLayout(cfg.TableBits)
	if err != nil {
		return nil, err
	}

	b := &Bank{
		layout:    layout,
		cycles:    cfg.Cycles,
		stride:    layout.BufferLen(),
		maxOctave: float64(layout.MaxOctave()),
		harmonics: make([]int, layout.Levels()),
	}
	b.data = make([]float64, cfg.Cycles*TimbreSlots*b.stride)

	for k := range b.harmonics {
		h := max(cfg.HarmonicLimit>>k, 1)
		h = min(h, layout.Len(k)/2-1)
		b.harmonics[k] = max(h, 0)
	}

	return b, nil
}

// Layout returns the packing layout shared by every table in the bank.
func (b *Bank) Layout() *Layout { return &b.layout }

// Cycles returns the number of cycle slots.
func (b *Bank) Cycles() int { return b.cycles }

// HarmonicsAt returns the number of harmonics kept in octave level k.
func (b *Bank) HarmonicsAt(k int) int { return b.harmonics[k] }

// Table returns the packed buffer for a (cycle, timbre) pair.
func (b *Bank) Table(cycle, timbre int) []float64 {
	start := (cycle*TimbreSlots + timbre) * b.stride
	return b.data[start : start+b.stride : start+b.stride]
}

// Level returns octave level k of a (cycle, timbre) table.
func (b *Bank) Level(cycle, timbre, k int) []float64 {
	w := b.Table(cycle, timbre)
	off := b.layout.Offset(k)
	return w[off : off+b.layout.Len(k)]
}

// Data exposes the whole bank storage, mainly for comparisons in tests.
func (b *Bank) Data() []float64 { return b.data }

// MemoryUsage returns the approximate bank size in bytes.
func (b *Bank) MemoryUsage() int64 {
	return int64(len(b.data)) * bytesPerFloat64
}

const bytesPerFloat64 = 8

// Generate fills every table. The only source of non-determinism is rng,
// which is consumed for the noise slot before anything else.
func (b *Bank) Generate(rng RandomSource) {
	n := b.layout.Size()
	levels := b.layout.Levels()

	noise := make([]float64, n)
	for i := range noise {
		noise[i] = rng.Float64() - noiseCenter
	}

	base := make([]float64, n)
	scratch := make([]float64, n)
	forward := fourier.NewFFT(n)
	spectrum := make([]complex128, n/2+1)

	inverse := make([]*fourier.FFT, levels)
	coeffs := make([][]complex128, levels)
	for k := range levels {
		inverse[k] = fourier.NewFFT(b.layout.Len(k))
		coeffs[k] = make([]complex128, b.layout.Len(k)/2+1)
	}

	norm := 1.0 / float64(n)
	for c := range b.cycles {
		for t := range TimbreSlots {
			fillBase(base, scratch, noise, t, c)
			spectrum = forward.Coefficients(spectrum, base)
			for k := range levels {
				dst := b.Level(c, t, k)
				synthesizeLevel(dst, inverse[k], coeffs[k], spectrum, b.harmonics[k], norm)
			}
		}
	}
}

// synthesizeLevel rebuilds one octave level from the first harmonics of the
// level-0 spectrum. Dropping DC and everything above the level's harmonic
// count is what band-limits the level.
func synthesizeLevel(dst []float64, fft *fourier.FFT, coeff, spectrum []complex128, harmonics int, norm float64) {
	if harmonics == 0 {
		clear(dst)
		return
	}
	clear(coeff)
	copy(coeff[1:harmonics+1], spectrum[1:harmonics+1])
	fft.Sequence(dst, coeff)
	f64.Scale(dst, dst, norm)
}

// fillBase writes level-0 content for a timbre slot into dst.
func fillBase(dst, scratch, noise []float64, slot, cycle int) {
	n := float64(len(dst))
	switch slot {
	case SlotSine:
		for i := range dst {
			dst[i] = math.Sin(contentPhase(i, n))
		}
	case SlotHarmonic:
		for i := range dst {
			x := contentPhase(i, n)
			var s float64
			for h := 1; h <= harmonicRichPartials; h++ {
				s += math.Sin(float64(h)*x) / float64(h)
			}
			dst[i] = s
		}
	case SlotRamp:
		for i := range dst {
			dst[i] = 2*mathutil.Frac(float64(i)/n+contentPhaseOffset) - 1
		}
	case SlotNoise:
		copy(dst, noise)
		for range cycle + 1 {
			smooth(dst, scratch)
		}
		normalizePeak(dst)
	}
}

// contentPhase is the level-0 phase of sample i in radians.
func contentPhase(i int, n float64) float64 {
	return 2 * math.Pi * (float64(i)/n + contentPhaseOffset)
}

// smooth applies one circular pass of the 3-tap (0.25, 0.5, 0.25) average.
func smooth(x, scratch []float64) {
	n := len(x)
	for i := range x {
		l := x[mathutil.Wrap(i-1, n)]
		r := x[mathutil.Wrap(i+1, n)]
		scratch[i] = smoothCenter*x[i] + smoothNeighbor*(l+r)
	}
	copy(x, scratch)
}

// normalizePeak scales x so its largest magnitude is 1.
func normalizePeak(x []float64) {
	var peak float64
	for _, v := range x {
		peak = max(peak, math.Abs(v))
	}
	if peak > 0 {
		f64.Scale(x, x, 1/peak)
	}
}
