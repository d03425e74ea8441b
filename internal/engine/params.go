package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when engine parameters are out of range.
var ErrInvalidParams = errors.New("invalid engine parameters")

// Parameter indices within a voice.
const (
	ParamPitch = iota
	ParamAmplitude
	ParamTimbre0
	ParamTimbre1

	// NumParams is the number of smoothed parameters per voice.
	NumParams
)

// Shaper selects the output waveshaper.
type Shaper int

const (
	// ShaperArctan soft-clips with atan. This is the reference curve.
	ShaperArctan Shaper = iota

	// ShaperLinear scales and hard-clips at full scale.
	ShaperLinear
)

// String returns the shaper name.
func (s Shaper) String() string {
	switch s {
	case ShaperArctan:
		return "arctan"
	case ShaperLinear:
		return "linear"
	default:
		return fmt.Sprintf("Shaper(%d)", int(s))
	}
}

// Params is the fully resolved engine geometry and tuning.
type Params struct {
	SampleRate float64
	TableBits  int
	Cycles     int
	Voices     int
	Chorus     int
	MaxBlock   int

	// BaseNote is the MIDI note played from octave level 0.
	BaseNote float64

	// Rates holds the smoothing rate per parameter index.
	Rates [NumParams]float64

	// ChorusSpread is the semitone distance between chorus layers at timbre-0 = 1.
	ChorusSpread float64

	// LayerGain is the mix weight of one chorus layer at timbre-0 = 1.
	LayerGain float64

	// GainFloor is the fraction of LayerGain left at timbre-0 = 0. The layer
	// gain rises linearly from LayerGain*GainFloor to LayerGain as timbre-0
	// goes from 0 to 1. 0.5 keeps the voice audible at timbre-0 = 0; 0 makes
	// the gain proportional to timbre-0.
	GainFloor float64

	DriftStep  float64
	DriftDecay float64

	Shaper Shaper
	Drive  float64
	Peak   float64
}

// Validate checks if the parameters can build an engine.
func (p *Params) Validate() error {
	if !(p.SampleRate > 0) || math.IsInf(p.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParams, p.SampleRate)
	}
	if p.Voices < 1 || p.Chorus < 1 || p.MaxBlock < 1 {
		return fmt.Errorf("%w: voices, chorus and max block must be at least 1", ErrInvalidParams)
	}
	for i, r := range p.Rates {
		if !(r >= 0 && r < 1) {
			return fmt.Errorf("%w: rate %d must be in [0, 1), got %v", ErrInvalidParams, i, r)
		}
	}
	if !(p.DriftDecay >= 0 && p.DriftDecay < 1) || !(p.DriftStep >= 0) {
		return fmt.Errorf("%w: drift step must be >= 0 and decay in [0, 1)", ErrInvalidParams)
	}
	if p.Shaper != ShaperArctan && p.Shaper != ShaperLinear {
		return fmt.Errorf("%w: unknown shaper %v", ErrInvalidParams, p.Shaper)
	}
	if !(p.Drive > 0) || math.IsInf(p.Drive, 0) {
		return fmt.Errorf("%w: drive must be positive and finite", ErrInvalidParams)
	}
	if !(p.Peak >= 1 && p.Peak <= maxPeak) {
		return fmt.Errorf("%w: peak must be in [1, %d]", ErrInvalidParams, int64(maxPeak))
	}
	if !(p.GainFloor >= 0 && p.GainFloor <= 1) {
		return fmt.Errorf("%w: gain floor must be in [0, 1], got %v", ErrInvalidParams, p.GainFloor)
	}
	if math.IsNaN(p.ChorusSpread) || math.IsNaN(p.LayerGain) || math.IsNaN(p.BaseNote) {
		return fmt.Errorf("%w: chorus spread, layer gain and base note must be numbers", ErrInvalidParams)
	}
	return nil
}
