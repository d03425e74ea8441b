package engine

import "github.com/tphakala/go-wavetable-synth/internal/smoothing"

// Status is a voice's per-block activity, derived once after interpolation.
type Status int

const (
	// Inactive voices generate nothing and hold their chorus phases at 0.
	Inactive Status = iota

	// Active voices render every chorus layer.
	Active
)

// String returns the status name.
func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// layer is one detuned chorus copy of a voice.
type layer struct {
	phase    float64 // cycles, carried across blocks
	lastFreq float64 // cycles per sample at the start of the block
	freq     float64 // cycles per sample at the end of the block
	drift    smoothing.Drift
}

// Voice holds the smoothed controls and oscillator state of one voice.
type Voice struct {
	params [NumParams]smoothing.Param
	layers []layer
	status Status
}

func newVoice(chorus int) Voice {
	return Voice{layers: make([]layer, chorus)}
}

// Param returns the smoothed parameter at index i (ParamPitch..ParamTimbre1).
func (v *Voice) Param(i int) *smoothing.Param { return &v.params[i] }

// Status returns the activity computed for the last rendered block.
func (v *Voice) Status() Status { return v.status }

// Layers returns the number of chorus layers.
func (v *Voice) Layers() int { return len(v.layers) }

// Phase returns the phase of chorus layer c in cycles.
func (v *Voice) Phase(c int) float64 { return v.layers[c].phase }

// reset returns the voice to silence at phase 0 with fresh rates.
func (v *Voice) reset(p *Params) {
	for i := range v.params {
		v.params[i].Reset(p.Rates[i])
	}
	for c := range v.layers {
		v.layers[c] = layer{drift: smoothing.NewDrift(p.DriftStep, p.DriftDecay)}
	}
	v.status = Inactive
}

// interpolate computes this block's smoothed values and the voice status.
func (v *Voice) interpolate() {
	for i := range v.params {
		v.params[i].Interpolate()
	}
	amp := &v.params[ParamAmplitude]
	if amp.BlockTarget() > 0 || amp.Committed() > 0 || amp.Smoothed() > 0 {
		v.status = Active
	} else {
		v.status = Inactive
	}
}

// silence resets every chorus phase. Frequencies are kept so that the
// next attack glides from the last pitch.
func (v *Voice) silence() {
	for c := range v.layers {
		v.layers[c].phase = 0
	}
}

// finish commits the smoothed values and advances every layer's drift.
func (v *Voice) finish(rng smoothing.RandomSource) {
	for i := range v.params {
		v.params[i].Commit()
	}
	for c := range v.layers {
		v.layers[c].drift.Advance(rng)
	}
}
