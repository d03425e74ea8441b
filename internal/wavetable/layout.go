// Package wavetable builds mip-mapped, band-limited wavetable banks and
// reconstructs samples from them with phase, octave, timbre and cycle
// interpolation.
package wavetable

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates invalid wavetable geometry.
var ErrInvalidConfig = errors.New("invalid wavetable configuration")

// Layout describes how the octave levels of one table are packed into a
// single buffer. Level k holds Size()>>k samples and starts at
// 2*Size() - (2*Size()>>k).
type Layout struct {
	bits    int
	size    int
	offsets []int
	masks   []int
}

// NewLayout creates the packing layout for a level-0 table of 1<<bits samples.
func NewLayout(bits int) (Layout, error) {
	if bits < MinTableBits || bits > MaxTableBits {
		return Layout{}, fmt.Errorf("%w: table bits must be %d-%d, got %d",
			ErrInvalidConfig, MinTableBits, MaxTableBits, bits)
	}

	size := 1 << bits
	l := Layout{
		bits:    bits,
		size:    size,
		offsets: make([]int, bits),
		masks:   make([]int, bits),
	}
	span := packingFactor * size
	for k := range bits {
		l.offsets[k] = span - (span >> k)
		l.masks[k] = (size >> k) - 1
	}
	return l, nil
}

// Bits returns log2 of the level-0 table size.
func (l *Layout) Bits() int { return l.bits }

// Size returns the number of samples in level 0.
func (l *Layout) Size() int { return l.size }

// Levels returns the number of octave levels. The smallest holds two samples.
func (l *Layout) Levels() int { return l.bits }

// MaxOctave is the highest octave coordinate that still has a level above it
// to interpolate towards.
func (l *Layout) MaxOctave() int { return l.bits - 2 }

// BufferLen returns the length of one packed buffer.
func (l *Layout) BufferLen() int { return packingFactor * l.size }

// Offset returns the start of octave level k inside a packed buffer.
func (l *Layout) Offset(k int) int { return l.offsets[k] }

// Len returns the number of samples in octave level k.
func (l *Layout) Len(k int) int { return l.size >> k }

// Mask returns the index mask of octave level k.
func (l *Layout) Mask(k int) int { return l.masks[k] }
