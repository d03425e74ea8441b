package smoothing

// RandomSource supplies uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Drift is a bounded random walk, in semitones, used to decorrelate chorus
// layers without a fixed LFO.
type Drift struct {
	offset float64
	step   float64
	decay  float64
}

// NewDrift creates a drift with a maximum per-block step and a per-block
// decay factor in [0, 1].
func NewDrift(step, decay float64) Drift {
	return Drift{step: step, decay: decay}
}

// Advance moves the walk by one block.
func (d *Drift) Advance(rng RandomSource) {
	d.offset += (rng.Float64() - 0.5) * d.step
	d.offset *= d.decay
}

// Offset returns the current detune in semitones.
func (d *Drift) Offset() float64 { return d.offset }

// Reset returns the walk to zero.
func (d *Drift) Reset() { d.offset = 0 }

// Bound returns the largest |Offset| the walk can ever reach.
// With decay 1 the walk is unbounded and Bound returns +Inf.
func (d *Drift) Bound() float64 {
	if d.decay >= 1 {
		return posInf
	}
	return d.step / 2 * d.decay / (1 - d.decay)
}
