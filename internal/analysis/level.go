package analysis

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// ZeroCrossings counts sign changes in x. Exact zeros take the sign of the
// previous non-zero sample and are not counted as crossings on their own.
func ZeroCrossings(x []float64) int {
	count := 0
	prev := 0
	for _, v := range x {
		s := sign(v)
		if s == 0 {
			continue
		}
		if prev != 0 && s != prev {
			count++
		}
		prev = s
	}
	return count
}

// CircularZeroCrossings counts sign changes treating x as one period, so the
// wrap from the last sample back to the first is included.
func CircularZeroCrossings(x []float64) int {
	first, last := 0, 0
	for _, v := range x {
		if s := sign(v); s != 0 {
			if first == 0 {
				first = s
			}
			last = s
		}
	}
	count := ZeroCrossings(x)
	if first != 0 && first != last {
		count++
	}
	return count
}

// EstimateFrequency estimates the fundamental in Hz from the zero-crossing
// rate. A periodic signal with a clean fundamental crosses zero twice per
// period.
func EstimateFrequency(x []float64, sampleRate float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return float64(ZeroCrossings(x)) / 2 * sampleRate / float64(len(x))
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(x, x) / float64(len(x)))
}

// Mean returns the arithmetic mean of x.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return f64.Sum(x) / float64(len(x))
}

// Peak returns the largest magnitude in x.
func Peak(x []float64) float64 {
	var p float64
	for _, v := range x {
		p = max(p, math.Abs(v))
	}
	return p
}

// Int32ToFloat64 converts integer PCM to floats scaled by 1/fullScale.
// dst is grown if needed and returned.
func Int32ToFloat64(dst []float64, src []int32, fullScale float64) []float64 {
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	inv := 1.0 / fullScale
	for i, v := range src {
		dst[i] = float64(v) * inv
	}
	return dst
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
