// Package engine implements the block renderer: voices, chorus layers and
// the output stage on top of a wavetable bank.
package engine

import (
	"math"
	"math/rand/v2"

	"github.com/tphakala/go-wavetable-synth/internal/mathutil"
	"github.com/tphakala/go-wavetable-synth/internal/wavetable"
)

// Engine renders stereo blocks from a fixed set of voices.
//
// Render and Init must be called from one goroutine. Parameter targets
// (Voice(i).Param(j).SetTarget) may be written from one other goroutine.
type Engine struct {
	params    Params
	bank      *wavetable.Bank
	voices    []Voice
	left      []float64
	right     []float64
	jitterSrc *rand.PCG
	jitter    *rand.Rand
	seed      uint64

	maxOctave float64
	tableSize float64
}

// New allocates an engine for the given parameters. The bank is empty and
// every voice is silent until Init is called.
func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bank, err := wavetable.NewBank(wavetable.BankConfig{
		TableBits:     p.TableBits,
		Cycles:        p.Cycles,
		HarmonicLimit: wavetable.HarmonicLimitFor(p.SampleRate, mathutil.NoteToFrequency(p.BaseNote)),
	})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		params:    p,
		bank:      bank,
		voices:    make([]Voice, p.Voices),
		left:      make([]float64, p.MaxBlock),
		right:     make([]float64, p.MaxBlock),
		jitterSrc: rand.NewPCG(0, jitterStream),
		maxOctave: float64(bank.Layout().MaxOctave()),
		tableSize: float64(bank.Layout().Size()),
	}
	e.jitter = rand.New(e.jitterSrc)
	for i := range e.voices {
		e.voices[i] = newVoice(p.Chorus)
	}
	return e, nil
}

// Init regenerates the bank from seed and resets every voice.
// Equal seeds give identical tables and identical subsequent output.
func (e *Engine) Init(seed uint64) {
	e.seed = seed
	e.bank.Generate(rand.New(rand.NewPCG(seed, tableStream)))
	e.jitterSrc.Seed(seed, jitterStream)
	for i := range e.voices {
		e.voices[i].reset(&e.params)
	}
}

// Params returns the engine parameters.
func (e *Engine) Params() Params { return e.params }

// Seed returns the seed passed to the last Init.
func (e *Engine) Seed() uint64 { return e.seed }

// Bank returns the wavetable bank.
func (e *Engine) Bank() *wavetable.Bank { return e.bank }

// NumVoices returns the number of voices.
func (e *Engine) NumVoices() int { return len(e.voices) }

// Voice returns voice i.
func (e *Engine) Voice(i int) *Voice { return &e.voices[i] }

// Render fills left and right with one block. Both slices must have the
// same length, at most MaxBlock; the caller checks this. Render does not
// allocate.
func (e *Engine) Render(left, right []int32) {
	n := len(left)
	if n == 0 {
		return
	}
	accL := e.left[:n]
	accR := e.right[:n]
	clear(accL)
	clear(accR)

	for i := range e.voices {
		v := &e.voices[i]
		v.interpolate()
		if v.status == Active {
			e.renderVoice(v, accL, accR)
		} else {
			v.silence()
		}
		v.finish(e.jitter)
	}

	e.shape(left, accL)
	e.shape(right, accR)
}

// renderVoice accumulates every chorus layer of an active voice.
// Even layers go to the left channel, odd layers to the right.
func (e *Engine) renderVoice(v *Voice, accL, accR []float64) {
	p := &e.params
	note := v.params[ParamPitch].Smoothed()
	t0 := v.params[ParamTimbre0].Smoothed()
	t1 := v.params[ParamTimbre1].Smoothed()
	amp := &v.params[ParamAmplitude]

	octave := mathutil.Clamp((note-p.BaseNote)/semitonesPerOctave, 0, e.maxOctave)
	timbre := t1 * timbreSpan
	cycle := 1 - mathutil.Frac(timbre)
	gain := p.LayerGain * mathutil.Lerp(p.GainFloor, 1, t0)
	center := float64(len(v.layers)-1) / 2

	for c := range v.layers {
		l := &v.layers[c]
		detune := (float64(c) - center) * p.ChorusSpread * t0
		// NaN and out-of-range pitches end up at 0 or Nyquist.
		freq := mathutil.NoteToFrequency(note+l.drift.Offset()+detune) / p.SampleRate
		l.freq = mathutil.Clamp(freq, 0, maxFreq)

		acc := accL
		if c%2 == 1 {
			acc = accR
		}
		e.renderLayer(l, acc, amp.Committed()*gain, amp.Smoothed()*gain, octave, timbre, cycle)
	}
}

// renderLayer integrates a linear frequency ramp from lastFreq to freq over
// the block and adds the amplitude-ramped table output into acc.
func (e *Engine) renderLayer(l *layer, acc []float64, amp0, amp1, octave, timbre, cycle float64) {
	n := float64(len(acc))
	invN := 1 / n
	diff := l.freq - l.lastFreq

	for i := range acc {
		fi := float64(i)
		phase := l.phase + l.lastFreq*fi + rampHalf*diff*fi*fi*invN
		acc[i] += mathutil.Lerp(amp0, amp1, fi*invN) * e.bank.Sample(phase*e.tableSize, octave, timbre, cycle)
	}

	// Tables are periodic in one cycle, so only the fractional phase is kept.
	phase := l.phase + l.lastFreq*n + rampHalf*diff*n
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		phase = 0
	}
	l.phase = phase - math.Floor(phase)
	l.lastFreq = l.freq
}
