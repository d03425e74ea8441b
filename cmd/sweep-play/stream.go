package main

import (
	"encoding/binary"
	"math"

	synth "github.com/tphakala/go-wavetable-synth"
)

const (
	stereoChannels = 2
	bytesPerSample = 2 // 16-bit PCM
	bytesPerFrame  = stereoChannels * bytesPerSample
	maxInt16       = 32767.0
)

// stream is the io.Reader oto pulls from. Every Read renders as many frames
// as the device asks for, split into blocks the engine accepts, so the
// goroutine calling Read is the engine's render goroutine.
type stream struct {
	engine *synth.Engine
	left   []int32
	right  []int32
	scale  float64
}

func newStream(e *synth.Engine) *stream {
	_, peak := e.OutputRange()
	return &stream{
		engine: e,
		left:   make([]int32, e.MaxBlock()),
		right:  make([]int32, e.MaxBlock()),
		scale:  maxInt16 / float64(peak),
	}
}

// Read fills buf with interleaved signed 16-bit little-endian stereo frames.
// A trailing partial frame is left unfilled.
func (s *stream) Read(buf []byte) (int, error) {
	frames := len(buf) / bytesPerFrame
	done := 0
	for done < frames {
		n := min(frames-done, len(s.left))
		if err := s.engine.Render(s.left[:n], s.right[:n]); err != nil {
			return done * bytesPerFrame, err
		}
		out := buf[done*bytesPerFrame:]
		for i := range n {
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(s.toInt16(s.left[i])))
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+bytesPerSample:], uint16(s.toInt16(s.right[i])))
		}
		done += n
	}
	return frames * bytesPerFrame, nil
}

func (s *stream) toInt16(v int32) int16 {
	return int16(math.Round(float64(v) * s.scale))
}
