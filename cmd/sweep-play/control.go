package main

import (
	"math"
	"time"

	synth "github.com/tphakala/go-wavetable-synth"
)

// sweep is the control-side gesture: a held chord whose waveform position
// moves back and forth while chorus width breathes at a slower rate.
type sweep struct {
	notes  []float64
	amp    float64
	period time.Duration
}

// timbres returns timbre 0 and 1 at time elapsed. Timbre 1 is a triangle
// over one period; timbre 0 is a raised cosine over two periods.
func (s *sweep) timbres(elapsed time.Duration) (t0, t1 float64) {
	if s.period <= 0 {
		return 0, 0
	}
	phase := math.Mod(elapsed.Seconds()/s.period.Seconds(), 1)
	t1 = 1 - math.Abs(2*phase-1)
	slow := math.Mod(elapsed.Seconds()/(2*s.period.Seconds()), 1)
	t0 = (1 - math.Cos(2*math.Pi*slow)) / 2
	return t0, t1
}

// apply writes every voice's targets for time elapsed.
func (s *sweep) apply(e *synth.Engine, elapsed time.Duration) error {
	t0, t1 := s.timbres(elapsed)
	for v, note := range s.notes {
		if err := e.SetPitch(v, note); err != nil {
			return err
		}
		if err := e.SetAmplitude(v, s.amp); err != nil {
			return err
		}
		if err := e.SetTimbre(v, 0, t0); err != nil {
			return err
		}
		if err := e.SetTimbre(v, 1, t1); err != nil {
			return err
		}
	}
	return nil
}

// release silences every voice.
func (s *sweep) release(e *synth.Engine) error {
	for v := range s.notes {
		if err := e.SetAmplitude(v, 0); err != nil {
			return err
		}
	}
	return nil
}
