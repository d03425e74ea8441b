package engine

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// shape applies drive and the waveshaper, writing saturated integers to dst.
// acc is scaled in place.
func (e *Engine) shape(dst []int32, acc []float64) {
	f64.Scale(acc, acc, e.params.Drive)
	peak := e.params.Peak
	switch e.params.Shaper {
	case ShaperLinear:
		for i, x := range acc {
			dst[i] = saturate(shapeLinear(x), peak)
		}
	default:
		for i, x := range acc {
			dst[i] = saturate(shapeArctan(x), peak)
		}
	}
}

// shapeArctan maps any input onto (-1, 1) with a soft knee.
func shapeArctan(x float64) float64 {
	return math.Atan(x) * arctanScale
}

// shapeLinear hard-clips to [-1, 1].
func shapeLinear(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// saturate scales a unit-range value to peak and rounds it to int32.
// NaN becomes 0 and the result always lies in [-peak, peak].
func saturate(x, peak float64) int32 {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * peak)
	if v > peak {
		v = math.Floor(peak)
	} else if v < -peak {
		v = -math.Floor(peak)
	}
	return int32(v)
}

// OutputRange returns the most negative and most positive sample Render can produce.
func (e *Engine) OutputRange() (minVal, maxVal int32) {
	p := int32(math.Floor(e.params.Peak))
	return -p, p
}
