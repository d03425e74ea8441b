package smoothing

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Param
// =============================================================================

func TestParam_InstantWithZeroRate(t *testing.T) {
	var p Param
	p.Reset(0)
	p.SetTarget(0.75)
	p.Interpolate()
	assert.InDelta(t, 0.75, p.Smoothed(), 0)
	assert.InDelta(t, 0.0, p.Committed(), 0, "commit happens only after the block")
	p.Commit()
	assert.InDelta(t, 0.75, p.Committed(), 0)
}

func TestParam_OneStep(t *testing.T) {
	var p Param
	p.Reset(0.95)
	p.SetTarget(1)
	p.Interpolate()
	assert.InDelta(t, 0.05, p.Smoothed(), 1e-15)
}

// TestParam_Convergence checks |committed - target| <= r^N |initial - target|.
func TestParam_Convergence(t *testing.T) {
	testCases := []struct {
		name    string
		rate    float64
		initial float64
		target  float64
	}{
		{"amplitude", 0.95, 0, 1},
		{"pitch", 0.125, 0, 69},
		{"timbre_down", 0.5, 1, 0.2},
		{"slow", 0.999, -3, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Param
			p.Reset(0)
			p.SetTarget(tc.initial)
			p.Interpolate()
			p.Commit()
			require.InDelta(t, tc.initial, p.Committed(), 0)

			p.rate = tc.rate
			p.SetTarget(tc.target)
			initialErr := math.Abs(tc.initial - tc.target)
			for n := 1; n <= 200; n++ {
				p.Interpolate()
				p.Commit()
				bound := math.Pow(tc.rate, float64(n)) * initialErr
				require.LessOrEqual(t, math.Abs(p.Committed()-tc.target), bound+1e-12,
					"block %d exceeds geometric bound", n)
			}
		})
	}
}

func TestParam_ReachesTarget(t *testing.T) {
	var p Param
	p.Reset(0)
	p.SetTarget(1)
	p.Interpolate()
	p.Commit()

	p.rate = 0.95
	p.SetTarget(0)
	blocks := 0
	for p.Committed() != 0 {
		p.Interpolate()
		p.Commit()
		blocks++
		require.Less(t, blocks, 1000, "release never reached zero")
	}
	t.Logf("released after %d blocks", blocks)
	assert.InDelta(t, math.Log(snapEpsilon)/math.Log(0.95), float64(blocks), 2)
}

func TestParam_NonFiniteRecovers(t *testing.T) {
	var p Param
	p.Reset(0.5)
	p.SetTarget(math.NaN())
	p.Interpolate()
	p.Commit()
	require.True(t, math.IsNaN(p.Committed()))

	p.SetTarget(2)
	p.Interpolate()
	assert.InDelta(t, 2.0, p.Smoothed(), 0)
	p.Commit()

	p.SetTarget(4)
	p.Interpolate()
	assert.InDelta(t, 3.0, p.Smoothed(), 1e-15, "smoothing resumes from the recovered value")

	p.Reset(0.5)
	p.SetTarget(math.Inf(1))
	p.Interpolate()
	p.Commit()
	p.SetTarget(1)
	p.Interpolate()
	assert.InDelta(t, 1.0, p.Smoothed(), 0)
}

func TestParam_BlockTarget(t *testing.T) {
	var p Param
	p.Reset(0.95)
	p.SetTarget(0.5)
	p.Interpolate()
	p.SetTarget(0.9)
	assert.InDelta(t, 0.5, p.BlockTarget(), 0, "target written after Interpolate waits for the next block")
	assert.InDelta(t, 0.9, p.Target(), 0)

	p.Interpolate()
	assert.InDelta(t, 0.9, p.BlockTarget(), 0)

	p.Reset(0.95)
	assert.InDelta(t, 0.0, p.BlockTarget(), 0)
}

func TestParam_ResetClearsTarget(t *testing.T) {
	var p Param
	p.Reset(0.5)
	p.SetTarget(3)
	p.Interpolate()
	p.Commit()
	p.Reset(0.25)
	assert.InDelta(t, 0.0, p.Target(), 0)
	assert.InDelta(t, 0.0, p.Committed(), 0)
	assert.InDelta(t, 0.0, p.Smoothed(), 0)
	assert.InDelta(t, 0.25, p.Rate(), 0)
}

func TestParam_ConcurrentTargetWrites(t *testing.T) {
	var p Param
	p.Reset(0.5)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 10000 {
			p.SetTarget(float64(i % 2))
		}
	}()
	for range 10000 {
		p.Interpolate()
		p.Commit()
		v := p.Committed()
		require.True(t, v >= 0 && v <= 1, "smoothed value %f escaped the target range", v)
	}
	wg.Wait()
}

// =============================================================================
// Drift
// =============================================================================

func TestDrift_Bounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewDrift(0.02, 0.999)
	bound := d.Bound()
	assert.InDelta(t, 0.01*0.999/0.001, bound, 1e-9)

	var peak float64
	for range 200000 {
		d.Advance(rng)
		peak = max(peak, math.Abs(d.Offset()))
		require.LessOrEqual(t, math.Abs(d.Offset()), bound+1e-12)
	}
	t.Logf("drift peak %.4f semitones (bound %.4f)", peak, bound)
}

func TestDrift_Deterministic(t *testing.T) {
	a := NewDrift(0.02, 0.999)
	b := NewDrift(0.02, 0.999)
	ra := rand.New(rand.NewPCG(7, 7))
	rb := rand.New(rand.NewPCG(7, 7))
	for range 100 {
		a.Advance(ra)
		b.Advance(rb)
	}
	assert.InDelta(t, a.Offset(), b.Offset(), 0)
	assert.NotZero(t, a.Offset())

	a.Reset()
	assert.InDelta(t, 0.0, a.Offset(), 0)
}

func TestDrift_ZeroStep(t *testing.T) {
	d := NewDrift(0, 0.999)
	rng := rand.New(rand.NewPCG(1, 1))
	for range 10 {
		d.Advance(rng)
	}
	assert.InDelta(t, 0.0, d.Offset(), 0)
	unbounded := NewDrift(1, 1)
	assert.True(t, math.IsInf(unbounded.Bound(), 1))
}
