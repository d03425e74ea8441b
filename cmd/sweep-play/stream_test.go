package main

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	synth "github.com/tphakala/go-wavetable-synth"
)

func newTestEngine(t *testing.T, preset synth.Preset) *synth.Engine {
	t.Helper()
	e, err := synth.New(&synth.Config{Preset: preset, Seed: 1})
	require.NoError(t, err)
	return e
}

func TestStream_ReadSilence(t *testing.T) {
	e := newTestEngine(t, synth.PresetCompact)
	s := newStream(e)

	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = 0xff
	}
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4096, n)
	assert.Equal(t, make([]byte, 4096), buf)
	assert.Equal(t, int64(1024), e.SampleCount())
}

func TestStream_ReadLargerThanMaxBlock(t *testing.T) {
	e := newTestEngine(t, synth.PresetCompact)
	require.NoError(t, e.SetPitch(0, 60))
	require.NoError(t, e.SetAmplitude(0, 1))
	s := newStream(e)

	frames := 3*e.MaxBlock() + 17
	buf := make([]byte, frames*bytesPerFrame+3)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, frames*bytesPerFrame, n, "partial frame is not filled")
	assert.Equal(t, int64(frames), e.SampleCount())

	var nonZero int
	for i := range frames {
		l := int16(binary.LittleEndian.Uint16(buf[i*bytesPerFrame:]))
		if l != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, frames/2)
}

func TestStream_ScaleToInt16(t *testing.T) {
	e := newTestEngine(t, synth.PresetSweep)
	s := newStream(e)
	_, peak := e.OutputRange()

	assert.Equal(t, int16(32767), s.toInt16(peak))
	assert.Equal(t, int16(-32767), s.toInt16(-peak))
	assert.Equal(t, int16(0), s.toInt16(0))

	linear := newStream(newTestEngine(t, synth.PresetLinear))
	assert.Equal(t, int16(1234), linear.toInt16(1234))
}

func TestStream_TinyBuffer(t *testing.T) {
	s := newStream(newTestEngine(t, synth.PresetCompact))
	n, err := s.Read(make([]byte, 3))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep_Timbres(t *testing.T) {
	s := &sweep{period: 4 * time.Second}

	t0, t1 := s.timbres(0)
	assert.InDelta(t, 0.0, t0, 1e-12)
	assert.InDelta(t, 0.0, t1, 1e-12)

	t0, t1 = s.timbres(2 * time.Second)
	assert.InDelta(t, 0.5, t0, 1e-12)
	assert.InDelta(t, 1.0, t1, 1e-12)

	t0, t1 = s.timbres(4 * time.Second)
	assert.InDelta(t, 1.0, t0, 1e-12)
	assert.InDelta(t, 0.0, t1, 1e-12)

	zero := &sweep{}
	t0, t1 = zero.timbres(time.Second)
	assert.Zero(t, t0)
	assert.Zero(t, t1)
}

func TestSweep_ApplyAndRelease(t *testing.T) {
	e := newTestEngine(t, synth.PresetCompact)
	s := &sweep{notes: []float64{57, 64}, amp: 1, period: time.Second}
	require.NoError(t, s.apply(e, 250*time.Millisecond))

	left := make([]int32, 256)
	right := make([]int32, 256)
	require.NoError(t, e.Render(left, right))
	active, err := e.VoiceActive(1)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, s.release(e))
	for range 500 {
		require.NoError(t, e.Render(left, right))
	}
	active, err = e.VoiceActive(1)
	require.NoError(t, err)
	assert.False(t, active, "amplitude decays to zero after release")

	tooMany := &sweep{notes: make([]float64, 9)}
	require.ErrorIs(t, tooMany.apply(e, 0), synth.ErrVoiceOutOfRange)
}
