// Command sweep-play plays a sweeping chord through the wavetable synth in
// real time.
//
// The audio device pulls samples from the engine (the render side) while
// the main goroutine moves the timbre controls (the control side).
//
// Usage:
//
//	sweep-play
//	sweep-play -notes 40,47,52,56 -period 6s -seconds 30
//	sweep-play -preset compact -latency 50ms
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"

	synth "github.com/tphakala/go-wavetable-synth"
)

const (
	defaultNotes   = "45,52,57,61,64"
	defaultAmp     = 0.6
	defaultPeriod  = 8 * time.Second
	defaultLatency = 100 * time.Millisecond
	defaultRateHz  = 44100
	controlTick    = 10 * time.Millisecond
	releaseTail    = 1500 * time.Millisecond
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	notes := flag.String("notes", defaultNotes, "Comma-separated MIDI notes, one voice each")
	amp := flag.Float64("amp", defaultAmp, "Voice amplitude")
	period := flag.Duration("period", defaultPeriod, "Timbre sweep period")
	seconds := flag.Float64("seconds", 0, "Play time in seconds (0 = until interrupted)")
	preset := flag.String("preset", "sweep", "Preset: sweep, compact, linear")
	rate := flag.Int("rate", defaultRateHz, "Device sample rate in Hz")
	latency := flag.Duration("latency", defaultLatency, "Device buffer length")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	p, err := synth.ParsePreset(*preset)
	if err != nil {
		return err
	}
	noteList, err := synth.ParseNotes(*notes)
	if err != nil {
		return err
	}

	e, err := synth.New(&synth.Config{Preset: p, SampleRate: float64(*rate), RandomSeed: true})
	if err != nil {
		return err
	}
	if len(noteList) > e.Voices() {
		return fmt.Errorf("%d notes but preset %s has %d voices", len(noteList), p, e.Voices())
	}

	if *verbose {
		info := e.GetInfo()
		log.Printf("Preset: %s, seed %d", p, e.Seed())
		log.Printf("Tables: %d samples, %d levels, %d cycles, harmonic limit %d",
			info.TableSize, info.Levels, info.Cycles, info.HarmonicLimit)
		log.Printf("SIMD: %s", info.SIMDType)
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: stereoChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   *latency,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	s := &sweep{notes: noteList, amp: *amp, period: *period}
	if err := s.apply(e, 0); err != nil {
		return err
	}

	player := otoCtx.NewPlayer(newStream(e))
	defer func() { _ = player.Close() }()
	player.Play()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*seconds*float64(time.Second)))
		defer cancel()
	}

	fmt.Printf("Playing %v (ctrl-C to stop)\n", noteList)
	start := time.Now()
	ticker := time.NewTicker(controlTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.release(e); err != nil {
				return err
			}
			time.Sleep(releaseTail)
			fmt.Printf("Played %.1fs (%d frames)\n", time.Since(start).Seconds(), e.SampleCount())
			return nil
		case <-ticker.C:
			if err := s.apply(e, time.Since(start)); err != nil {
				return err
			}
		}
	}
}
