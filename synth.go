package synth

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-wavetable-synth/internal/engine"
	"github.com/tphakala/go-wavetable-synth/internal/wavetable"
)

// Engine is a polyphonic wavetable synthesizer.
//
// One control goroutine may call SetPitch, SetAmplitude and SetTimbre while
// one render goroutine calls Render. Neither side blocks the other: setters
// only store targets, and Render picks them up at the next block boundary.
// New and Init must not run concurrently with Render.
type Engine struct {
	config  Config
	core    *engine.Engine
	samples atomic.Int64
}

// New creates an engine with the specified configuration and initialises it.
func New(config *Config) (*Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	resolved := config.resolved()
	core, err := engine.New(resolved.engineParams())
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	e := &Engine{
		config: resolved,
		core:   core,
	}
	e.Init()
	return e, nil
}

// Init regenerates the wavetables, silences every voice at phase 0 and
// resets the sample counter. With a fixed seed the result is identical on
// every call.
func (e *Engine) Init() {
	seed := e.config.Seed
	if e.config.RandomSeed {
		seed = rand.Uint64()
	}
	e.core.Init(seed)
	e.samples.Store(0)
}

// SetPitch sets the target pitch of a voice as a fractional MIDI note.
func (e *Engine) SetPitch(voice int, note float64) error {
	return e.setTarget(voice, engine.ParamPitch, note)
}

// SetAmplitude sets the target amplitude of a voice. Zero releases it.
func (e *Engine) SetAmplitude(voice int, amplitude float64) error {
	return e.setTarget(voice, engine.ParamAmplitude, amplitude)
}

// SetTimbre sets timbre parameter 0 (chorus width and level) or
// 1 (waveform position, dark to bright) of a voice.
func (e *Engine) SetTimbre(voice, param int, value float64) error {
	if param < 0 || param >= timbreParams {
		return ErrTimbreOutOfRange
	}
	return e.setTarget(voice, engine.ParamTimbre0+param, value)
}

func (e *Engine) setTarget(voice, param int, value float64) error {
	if voice < 0 || voice >= e.core.NumVoices() {
		return ErrVoiceOutOfRange
	}
	e.core.Voice(voice).Param(param).SetTarget(value)
	return nil
}

// Render fills left and right with the next len(left) samples.
// Both buffers must have the same length, at most MaxBlock. A zero-length
// block renders nothing and leaves every voice untouched.
// Render does not allocate.
func (e *Engine) Render(left, right []int32) error {
	if len(left) != len(right) {
		return ErrChannelMismatch
	}
	if len(left) > e.config.MaxBlock {
		return ErrBlockTooLarge
	}
	if len(left) == 0 {
		return nil
	}

	e.core.Render(left, right)
	e.samples.Add(int64(len(left)))
	return nil
}

// SampleCount returns the number of samples per channel rendered since Init.
func (e *Engine) SampleCount() int64 {
	return e.samples.Load()
}

// Seed returns the seed used by the last Init.
func (e *Engine) Seed() uint64 {
	return e.core.Seed()
}

// Config returns the resolved configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Voices returns the number of voices.
func (e *Engine) Voices() int {
	return e.core.NumVoices()
}

// MaxBlock returns the largest block Render accepts.
func (e *Engine) MaxBlock() int {
	return e.config.MaxBlock
}

// OutputRange returns the most negative and most positive sample Render
// can write.
func (e *Engine) OutputRange() (minVal, maxVal int32) {
	return e.core.OutputRange()
}

// VoiceActive reports whether a voice produced sound in the last block.
// Call it from the render goroutine.
func (e *Engine) VoiceActive(voice int) (bool, error) {
	if voice < 0 || voice >= e.core.NumVoices() {
		return false, ErrVoiceOutOfRange
	}
	return e.core.Voice(voice).Status() == engine.Active, nil
}

// Info describes an engine's table geometry and resource use.
type Info struct {
	// TableSize is the length of the largest table.
	TableSize int

	// Levels is the number of octave levels per table.
	Levels int

	// Cycles and Timbres are the cycle and timbre slot counts.
	Cycles  int
	Timbres int

	// HarmonicLimit is the highest harmonic kept in the largest table.
	HarmonicLimit int

	// Voices and Chorus describe polyphony.
	Voices int
	Chorus int

	// Shaper names the output waveshaper.
	Shaper string

	// MemoryUsage is the approximate memory usage in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// GetInfo returns information about the engine.
func (e *Engine) GetInfo() Info {
	bank := e.core.Bank()
	layout := bank.Layout()
	accumulators := int64(2*e.config.MaxBlock) * bytesPerSample
	return Info{
		TableSize:     layout.Size(),
		Levels:        layout.Levels(),
		Cycles:        bank.Cycles(),
		Timbres:       wavetable.TimbreSlots,
		HarmonicLimit: bank.HarmonicsAt(0),
		Voices:        e.config.Voices,
		Chorus:        e.config.Chorus,
		Shaper:        e.config.Shaper.String(),
		MemoryUsage:   bank.MemoryUsage() + accumulators,
		SIMDType:      cpu.Info(),
	}
}
