// Package smoothing implements per-block parameter lag and chorus drift.
package smoothing

import (
	"math"
	"sync/atomic"
)

// Param is a one-pole lag between a control target and the value used for
// rendering. The target is the only field shared between goroutines: it has
// a single writer (control) and a single reader (render). Everything else
// belongs to the render goroutine.
type Param struct {
	target    atomic.Uint64 // math.Float64bits of the target
	rate      float64
	block     float64 // target as loaded by the last Interpolate
	committed float64
	smoothed  float64
}

// SetTarget sets the value the parameter moves towards. It never blocks.
func (p *Param) SetTarget(v float64) {
	p.target.Store(math.Float64bits(v))
}

// Target returns the most recently set target.
func (p *Param) Target() float64 {
	return math.Float64frombits(p.target.Load())
}

// Interpolate computes this block's smoothed value:
// smoothed = rate*committed + (1-rate)*target.
// A value closer than snapEpsilon to the target is set to the target, and
// so is a non-finite one, so a NaN left behind by an earlier target does not
// persist once a finite target is set.
//
// The target is loaded once; BlockTarget returns that value.
func (p *Param) Interpolate() {
	target := p.Target()
	p.block = target
	s := p.rate*p.committed + (1-p.rate)*target
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s-target) < snapEpsilon {
		s = target
	}
	p.smoothed = s
}

// BlockTarget returns the target seen by the last Interpolate.
func (p *Param) BlockTarget() float64 { return p.block }

// Commit makes the smoothed value the starting point for the next block.
func (p *Param) Commit() {
	p.committed = p.smoothed
}

// Committed returns the value carried over from the previous block.
func (p *Param) Committed() float64 { return p.committed }

// Smoothed returns the value computed by the last Interpolate.
func (p *Param) Smoothed() float64 { return p.smoothed }

// Rate returns the smoothing rate. 0 jumps to the target, values close to 1 glide slowly.
func (p *Param) Rate() float64 { return p.rate }

// Reset zeroes every value and sets a new rate.
func (p *Param) Reset(rate float64) {
	p.target.Store(0)
	p.rate = rate
	p.block = 0
	p.committed = 0
	p.smoothed = 0
}
