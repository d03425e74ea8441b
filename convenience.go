package synth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tphakala/go-wavetable-synth/internal/mathutil"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// NewDefault creates an engine with the reference preset at 44.1 kHz.
func NewDefault() (*Engine, error) {
	return New(&Config{Preset: PresetSweep})
}

// NewWithPreset creates an engine from a preset at the given sample rate.
func NewWithPreset(preset Preset, sampleRate float64) (*Engine, error) {
	if preset == PresetCustom {
		return nil, fmt.Errorf("%w: custom preset needs a full Config", ErrInvalidConfig)
	}
	return New(&Config{Preset: preset, SampleRate: sampleRate})
}

// NoteFrequency returns the frequency in Hz of a fractional MIDI note,
// with note 69 at 440 Hz.
func NoteFrequency(note float64) float64 {
	return mathutil.NoteToFrequency(note)
}

// RenderNote renders n samples of a single held note on voice 0 of a fresh
// engine. The note starts from silence, so the first blocks carry the
// attack glide.
func RenderNote(config *Config, note, amplitude float64, n int) (left, right []int32, err error) {
	e, err := New(config)
	if err != nil {
		return nil, nil, err
	}
	if err := e.SetPitch(0, note); err != nil {
		return nil, nil, err
	}
	if err := e.SetAmplitude(0, amplitude); err != nil {
		return nil, nil, err
	}

	left = make([]int32, n)
	right = make([]int32, n)
	block := min(renderNoteBlock, e.MaxBlock())
	for start := 0; start < n; start += block {
		end := min(start+block, n)
		if err := e.Render(left[start:end], right[start:end]); err != nil {
			return nil, nil, err
		}
	}
	return left, right, nil
}

// Interleave writes left and right as L/R frames into dst, growing dst if
// needed, and returns it.
func Interleave(dst, left, right []int32) ([]int32, error) {
	if len(left) != len(right) {
		return nil, ErrChannelMismatch
	}
	frames := len(left)
	if cap(dst) < 2*frames {
		dst = make([]int32, 2*frames)
	}
	dst = dst[:2*frames]
	for i := range frames {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
	return dst, nil
}

// ErrNoNotes is returned by ParseNotes when the list holds no notes.
var ErrNoNotes = errors.New("no notes given")

// ParseNotes parses a comma-separated list of fractional MIDI notes.
// Empty fields are skipped.
func ParseNotes(s string) ([]float64, error) {
	var notes []float64
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note %q: %w", field, err)
		}
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}
	return notes, nil
}
