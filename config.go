package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-wavetable-synth/internal/engine"
	"github.com/tphakala/go-wavetable-synth/internal/wavetable"
)

// Preset enumerates predefined engine configurations.
type Preset int

const (
	// PresetSweep is the reference configuration: 2048-sample tables,
	// 16 cycle slots, 16 voices with 4 chorus layers and arctan output
	// into a 26-bit range. It is the zero value of Preset.
	PresetSweep Preset = iota

	// PresetCompact trades table resolution and polyphony for memory:
	// 512-sample tables, 4 cycle slots, 8 voices with 2 chorus layers.
	PresetCompact

	// PresetLinear uses the reference geometry with a hard-clipping
	// linear output stage sized for 16-bit PCM.
	PresetLinear

	// PresetCustom uses every field of Config as given.
	PresetCustom
)

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case PresetSweep:
		return "sweep"
	case PresetCompact:
		return "compact"
	case PresetLinear:
		return "linear"
	case PresetCustom:
		return "custom"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// ParsePreset maps a preset name to its value.
func ParsePreset(name string) (Preset, error) {
	for p := PresetSweep; p <= PresetCustom; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
}

// Shaper selects the output waveshaper.
type Shaper = engine.Shaper

const (
	// ShaperArctan maps the mix through atan(x*Drive)*2/pi*Peak.
	ShaperArctan = engine.ShaperArctan

	// ShaperLinear maps the mix through clamp(x*Drive, -1, 1)*Peak.
	ShaperLinear = engine.ShaperLinear
)

// Rates holds the per-block smoothing rate of each voice parameter.
// A rate r moves a parameter by (1-r) of its remaining distance per block:
// 0 jumps immediately, values close to 1 glide slowly.
type Rates struct {
	Pitch     float64
	Amplitude float64
	Timbre0   float64
	Timbre1   float64
}

// Config holds engine configuration.
type Config struct {
	// Preset selects a predefined configuration. Every preset other than
	// PresetCustom replaces the geometry, tuning and output fields below;
	// SampleRate, Seed and RandomSeed are always taken from the caller.
	Preset Preset

	// SampleRate is the output rate in Hz. Zero selects 44100.
	SampleRate float64

	// TableBits is log2 of the largest table length (4-16).
	TableBits int

	// Cycles is the number of cycle slots per timbre. Each slot holds an
	// independently generated variant of every timbre. Voices do not select
	// cycle slots directly: the cycle coordinate is 1 - frac(3*t1), where
	// t1 is the timbre-1 control, so rendering only reads slots 0-2. The remaining slots are generated
	// and can be read through the bank (see sweep-analyze -cycle).
	Cycles int

	// Voices is the number of independently controlled voices.
	Voices int

	// Chorus is the number of detuned layers per voice.
	Chorus int

	// MaxBlock is the largest block Render accepts.
	MaxBlock int

	// BaseNote is the MIDI note that plays from the largest table.
	BaseNote float64

	// Rates are the smoothing rates of the voice parameters.
	Rates Rates

	// ChorusSpread is the detune between adjacent layers in semitones,
	// scaled by timbre-0.
	ChorusSpread float64

	// LayerGain is the mix weight of one layer at timbre-0 = 1.
	LayerGain float64

	// GainFloor is the share of LayerGain kept at timbre-0 = 0, in [0, 1].
	// Presets use 0.5, so timbre-0 = 0 plays at half gain. 0 scales the
	// gain by timbre-0 and silences the voice at timbre-0 = 0.
	GainFloor float64

	// DriftStep and DriftDecay shape the per-layer random pitch walk.
	DriftStep  float64
	DriftDecay float64

	// Shaper, Drive and Peak define the output stage. Output samples
	// always lie in [-Peak, Peak].
	Shaper Shaper
	Drive  float64
	Peak   float64

	// Seed drives table noise and drift. Equal seeds render equal output.
	Seed uint64

	// RandomSeed draws a fresh seed on every Init instead of using Seed.
	RandomSeed bool
}

// Common errors returned by the engine.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid synth configuration")

	// ErrBlockTooLarge indicates a render block longer than MaxBlock.
	ErrBlockTooLarge = errors.New("block exceeds maximum block size")

	// ErrChannelMismatch indicates left and right buffers of different length.
	ErrChannelMismatch = errors.New("left and right buffers differ in length")

	// ErrVoiceOutOfRange indicates a voice index outside [0, Voices).
	ErrVoiceOutOfRange = errors.New("voice index out of range")

	// ErrTimbreOutOfRange indicates a timbre parameter other than 0 or 1.
	ErrTimbreOutOfRange = errors.New("timbre parameter out of range")
)

// GetPresetConfig returns the full configuration of a preset.
// PresetCustom returns an empty Config with only Preset set.
func GetPresetConfig(preset Preset) Config {
	base := Config{
		Preset:       preset,
		SampleRate:   defaultSampleRate,
		TableBits:    sweepTableBits,
		Cycles:       sweepCycles,
		Voices:       sweepVoices,
		Chorus:       sweepChorus,
		MaxBlock:     sweepMaxBlock,
		BaseNote:     defaultBaseNote,
		Rates:        DefaultRates(),
		ChorusSpread: defaultChorusSpread,
		LayerGain:    defaultLayerGain,
		GainFloor:    defaultGainFloor,
		DriftStep:    defaultDriftStep,
		DriftDecay:   defaultDriftDecay,
		Shaper:       ShaperArctan,
		Drive:        sweepDrive,
		Peak:         sweepPeak,
	}

	switch preset {
	case PresetSweep:
		return base

	case PresetCompact:
		base.TableBits = compactTableBits
		base.Cycles = compactCycles
		base.Voices = compactVoices
		base.Chorus = compactChorus
		base.MaxBlock = compactMaxBlock
		return base

	case PresetLinear:
		base.Shaper = ShaperLinear
		base.Drive = linearDrive
		base.Peak = linearPeak
		return base

	default:
		return Config{Preset: preset}
	}
}

// DefaultRates returns the reference smoothing rates.
func DefaultRates() Rates {
	return Rates{
		Pitch:     defaultPitchRate,
		Amplitude: defaultAmpRate,
		Timbre0:   defaultTimbreRate,
		Timbre1:   defaultTimbreRate,
	}
}

// resolved returns the configuration with the preset applied.
func (c *Config) resolved() Config {
	r := *c
	if c.Preset >= PresetSweep && c.Preset < PresetCustom {
		r = GetPresetConfig(c.Preset)
		r.Seed = c.Seed
		r.RandomSeed = c.RandomSeed
		if c.SampleRate > 0 {
			r.SampleRate = c.SampleRate
		}
	}
	if r.SampleRate == 0 {
		r.SampleRate = defaultSampleRate
	}
	return r
}

// Validate checks if the configuration, with its preset applied, is valid.
func (c *Config) Validate() error {
	if c.Preset < PresetSweep || c.Preset > PresetCustom {
		return fmt.Errorf("%w: unknown preset %d", ErrInvalidConfig, int(c.Preset))
	}
	r := c.resolved()

	if !(r.SampleRate > 0) || math.IsInf(r.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if r.TableBits < wavetable.MinTableBits || r.TableBits > wavetable.MaxTableBits {
		return fmt.Errorf("%w: table bits must be %d-%d", ErrInvalidConfig, wavetable.MinTableBits, wavetable.MaxTableBits)
	}

	if r.Cycles < 1 || r.Cycles > wavetable.MaxCycles {
		return fmt.Errorf("%w: cycles must be 1-%d", ErrInvalidConfig, wavetable.MaxCycles)
	}

	if r.Voices < 1 || r.Voices > maxVoices {
		return fmt.Errorf("%w: voices must be 1-%d", ErrInvalidConfig, maxVoices)
	}

	if r.Chorus < 1 || r.Chorus > maxChorus {
		return fmt.Errorf("%w: chorus layers must be 1-%d", ErrInvalidConfig, maxChorus)
	}

	if r.MaxBlock < 1 || r.MaxBlock > maxBlockLen {
		return fmt.Errorf("%w: max block must be 1-%d", ErrInvalidConfig, maxBlockLen)
	}

	for _, rate := range []float64{r.Rates.Pitch, r.Rates.Amplitude, r.Rates.Timbre0, r.Rates.Timbre1} {
		if !(rate >= 0 && rate < 1) {
			return fmt.Errorf("%w: smoothing rates must be in [0, 1), got %v", ErrInvalidConfig, rate)
		}
	}

	if !(r.DriftStep >= 0) || !(r.DriftDecay >= 0 && r.DriftDecay < 1) {
		return fmt.Errorf("%w: drift step must be >= 0 and drift decay in [0, 1)", ErrInvalidConfig)
	}

	if r.Shaper != ShaperArctan && r.Shaper != ShaperLinear {
		return fmt.Errorf("%w: unknown shaper %v", ErrInvalidConfig, r.Shaper)
	}

	if !(r.Drive > 0) || math.IsInf(r.Drive, 0) {
		return fmt.Errorf("%w: drive must be positive and finite", ErrInvalidConfig)
	}

	if !(r.Peak >= 1 && r.Peak <= math.MaxInt32) {
		return fmt.Errorf("%w: peak must be 1-%d", ErrInvalidConfig, math.MaxInt32)
	}

	if math.IsNaN(r.BaseNote) || math.IsInf(r.BaseNote, 0) {
		return fmt.Errorf("%w: base note must be finite", ErrInvalidConfig)
	}

	if !(r.GainFloor >= 0 && r.GainFloor <= 1) {
		return fmt.Errorf("%w: gain floor must be in [0, 1], got %v", ErrInvalidConfig, r.GainFloor)
	}

	if math.IsNaN(r.ChorusSpread) || math.IsNaN(r.LayerGain) {
		return fmt.Errorf("%w: chorus spread and layer gain must be numbers", ErrInvalidConfig)
	}

	return nil
}

// engineParams converts a resolved configuration.
func (c *Config) engineParams() engine.Params {
	return engine.Params{
		SampleRate: c.SampleRate,
		TableBits:  c.TableBits,
		Cycles:     c.Cycles,
		Voices:     c.Voices,
		Chorus:     c.Chorus,
		MaxBlock:   c.MaxBlock,
		BaseNote:   c.BaseNote,
		Rates: [engine.NumParams]float64{
			engine.ParamPitch:     c.Rates.Pitch,
			engine.ParamAmplitude: c.Rates.Amplitude,
			engine.ParamTimbre0:   c.Rates.Timbre0,
			engine.ParamTimbre1:   c.Rates.Timbre1,
		},
		ChorusSpread: c.ChorusSpread,
		LayerGain:    c.LayerGain,
		GainFloor:    c.GainFloor,
		DriftStep:    c.DriftStep,
		DriftDecay:   c.DriftDecay,
		Shaper:       c.Shaper,
		Drive:        c.Drive,
		Peak:         c.Peak,
	}
}
