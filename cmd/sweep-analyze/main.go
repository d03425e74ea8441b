// Command sweep-analyze prints the spectral layout of a wavetable bank and
// checks a rendered test note.
//
// Usage:
//
//	sweep-analyze
//	sweep-analyze -preset compact -cycle 3 -note 81
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	synth "github.com/tphakala/go-wavetable-synth"
	"github.com/tphakala/go-wavetable-synth/internal/analysis"
	"github.com/tphakala/go-wavetable-synth/internal/mathutil"
	"github.com/tphakala/go-wavetable-synth/internal/wavetable"
)

const (
	// Display limits
	maxLevelsToShow = 8
	harmonicFloor   = 1e-12 // Power below this counts as absent

	// Test note rendering
	testBlock    = 256
	warmupBlocks = 40
	testBlocks   = 32

	centsPerSemitone = 100
)

var slotNames = [wavetable.TimbreSlots]string{"sine", "harmonic", "ramp", "noise"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	preset := flag.String("preset", "sweep", "Preset: sweep, compact, linear")
	seed := flag.Uint64("seed", 1, "Random seed")
	cycle := flag.Int("cycle", 0, "Cycle slot to analyze")
	note := flag.Float64("note", 69, "MIDI note for the render check")
	flag.Parse()

	p, err := synth.ParsePreset(*preset)
	if err != nil {
		return err
	}
	e, err := synth.New(&synth.Config{Preset: p, Seed: *seed})
	if err != nil {
		return err
	}
	cfg := e.Config()
	info := e.GetInfo()
	if *cycle < 0 || *cycle >= info.Cycles {
		return fmt.Errorf("cycle must be 0-%d", info.Cycles-1)
	}

	fmt.Println("=== Wavetable Bank ===")
	fmt.Printf("  Table size: %d, levels: %d, cycles: %d\n", info.TableSize, info.Levels, info.Cycles)
	fmt.Printf("  Harmonic limit: %d at %.0f Hz\n", info.HarmonicLimit, cfg.SampleRate)
	fmt.Printf("  Memory: %.1f KiB, SIMD: %s\n\n", float64(info.MemoryUsage)/1024, info.SIMDType)

	bank, err := buildBank(&cfg)
	if err != nil {
		return err
	}
	printLevels(bank, *cycle)

	fmt.Println("=== Render Check ===")
	freq, rms, err := renderCheck(e, *note)
	if err != nil {
		return err
	}
	want := synth.NoteFrequency(*note)
	fmt.Printf("  Note %.2f: expected %.2f Hz, estimated %.2f Hz (note %.2f, %+.1f cents)\n",
		*note, want, freq, mathutil.FrequencyToNote(freq), pitchErrorCents(*note, freq))
	fmt.Printf("  Left RMS: %.4f of full scale\n", rms)
	return nil
}

// buildBank generates a bank with the same geometry and seed as the engine.
func buildBank(cfg *synth.Config) (*wavetable.Bank, error) {
	bank, err := wavetable.NewBank(wavetable.BankConfig{
		TableBits:     cfg.TableBits,
		Cycles:        cfg.Cycles,
		HarmonicLimit: wavetable.HarmonicLimitFor(cfg.SampleRate, synth.NoteFrequency(cfg.BaseNote)),
	})
	if err != nil {
		return nil, err
	}
	bank.Generate(rand.New(rand.NewPCG(cfg.Seed, 1)))
	return bank, nil
}

// levelStats summarises one octave level of one table.
type levelStats struct {
	length    int
	kept      int
	highest   int
	centroid  float64
	crossings int
	peak      float64
}

func analyzeLevel(bank *wavetable.Bank, cycle, timbre, k int) levelStats {
	level := bank.Level(cycle, timbre, k)
	return levelStats{
		length:    len(level),
		kept:      bank.HarmonicsAt(k),
		highest:   analysis.HighestHarmonic(level, harmonicFloor),
		centroid:  analysis.SpectralCentroid(level),
		crossings: analysis.CircularZeroCrossings(level),
		peak:      analysis.Peak(level),
	}
}

func printLevels(bank *wavetable.Bank, cycle int) {
	levels := min(bank.Layout().Levels(), maxLevelsToShow)
	for timbre := range wavetable.TimbreSlots {
		fmt.Printf("--- Slot %d (%s), cycle %d ---\n", timbre, slotNames[timbre], cycle)
		fmt.Printf("  %5s %6s %6s %7s %9s %6s %7s\n", "level", "len", "kept", "highest", "centroid", "zc", "peak")
		for k := range levels {
			s := analyzeLevel(bank, cycle, timbre, k)
			fmt.Printf("  %5d %6d %6d %7d %9.2f %6d %7.4f\n",
				k, s.length, s.kept, s.highest, s.centroid, s.crossings, s.peak)
		}
		fmt.Println()
	}
}

// pitchErrorCents returns how far freq lies from note, in cents.
func pitchErrorCents(note, freq float64) float64 {
	return centsPerSemitone * (mathutil.FrequencyToNote(freq) - note)
}

// renderCheck plays note on voice 0 and measures the settled left channel.
func renderCheck(e *synth.Engine, note float64) (freq, rms float64, err error) {
	e.Init()
	if err := e.SetPitch(0, note); err != nil {
		return 0, 0, err
	}
	if err := e.SetAmplitude(0, 1); err != nil {
		return 0, 0, err
	}

	_, peak := e.OutputRange()
	left := make([]int32, testBlock)
	right := make([]int32, testBlock)
	var tail []float64
	for b := range warmupBlocks + testBlocks {
		if err := e.Render(left, right); err != nil {
			return 0, 0, err
		}
		if b >= warmupBlocks {
			tail = append(tail, analysis.Int32ToFloat64(nil, left, float64(peak))...)
		}
	}
	return analysis.EstimateFrequency(tail, e.Config().SampleRate), analysis.RMS(tail), nil
}
