// Package synth is a real-time polyphonic wavetable synthesizer in pure Go.
//
// The engine renders band-limited audio from a small set of per-voice
// controls (pitch, amplitude and two timbre parameters) into caller-owned
// stereo int32 buffers, one block at a time, the way an audio callback pulls
// samples from a driver.
//
// # Features
//
//   - Mip-mapped wavetables: each octave level keeps only the harmonics
//     that stay below Nyquist, so high notes do not alias
//   - Four timbre slots from dark to bright (sine, harmonic, ramp, noise)
//     and a set of cycle slots, all cross-faded continuously
//   - Detuned chorus layers with a slow random pitch drift, panned
//     alternately left and right
//   - Per-block exponential smoothing of every control, with frequency and
//     amplitude ramped inside each block
//   - Arctan or linear output stage that saturates and never wraps
//   - No allocation and no locking in the render path
//
// # Quick Start
//
//	e, err := synth.NewDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = e.SetPitch(0, 69)     // A4
//	_ = e.SetAmplitude(0, 1)
//	_ = e.SetTimbre(0, 1, 0.3) // towards the harmonic slot
//
//	left := make([]int32, 256)
//	right := make([]int32, 256)
//	for block := range blocks {
//	    if err := e.Render(left, right); err != nil {
//	        log.Fatal(err)
//	    }
//	    write(block, left, right)
//	}
//
// # Presets
//
//   - [PresetSweep]: reference geometry, 16 voices with 4 chorus layers,
//     arctan output into a 26-bit range.
//   - [PresetCompact]: smaller tables and fewer voices for constrained targets.
//   - [PresetLinear]: reference geometry with 16-bit linear output.
//   - [PresetCustom]: every field of [Config] used as given.
//
// # Concurrency
//
// One control goroutine and one render goroutine may use an [Engine] at the
// same time. Setters store atomic targets; Render reads them once per block.
package synth
