package main

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	synth "github.com/tphakala/go-wavetable-synth"
	"github.com/tphakala/go-wavetable-synth/internal/analysis"
)

const (
	stereoChannels  = 2
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	maxInt16        = 32767.0
	maxInt24        = 8388607.0
	wavFormatPCM    = 1

	// Block sizes are drawn from their own PCG stream so they never
	// disturb the engine's tables or drift.
	blockStream = 3

	progressInterval = 10
	percentScale     = 100
)

// maxValueForBits returns the positive full-scale value of a PCM bit depth.
func maxValueForBits(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d (use 16 or 24)", bitDepth)
	}
}

// performance describes what the control side plays.
type performance struct {
	notes   []float64
	amp     float64
	t0      float64
	t1      float64
	sweep   bool
	seconds float64
	release float64
}

// frames returns the total length and the frame at which the release starts.
func (p *performance) frames(sampleRate float64) (total, releaseAt int) {
	total = int(p.seconds * sampleRate)
	releaseAt = total - int(p.release*sampleRate)
	return total, max(releaseAt, 0)
}

// apply sets every voice's targets for the block starting at frame.
func (p *performance) apply(e *synth.Engine, frame, total, releaseAt int) error {
	amp := p.amp
	if frame >= releaseAt {
		amp = 0
	}
	t1 := p.t1
	if p.sweep && total > 0 {
		t1 = float64(frame) / float64(total)
	}

	for v, note := range p.notes {
		if err := e.SetPitch(v, note); err != nil {
			return err
		}
		if err := e.SetAmplitude(v, amp); err != nil {
			return err
		}
		if err := e.SetTimbre(v, 0, p.t0); err != nil {
			return err
		}
		if err := e.SetTimbre(v, 1, t1); err != nil {
			return err
		}
	}
	return nil
}

// blockSizer yields render block lengths, fixed or uniformly random in [1, maxLen].
type blockSizer struct {
	maxLen int
	rng    *rand.Rand
}

func newBlockSizer(maxLen int, vary bool, seed uint64) *blockSizer {
	s := &blockSizer{maxLen: maxLen}
	if vary {
		s.rng = rand.New(rand.NewPCG(seed, blockStream))
	}
	return s
}

// Next returns the next block length.
func (s *blockSizer) Next() int {
	if s.rng == nil {
		return s.maxLen
	}
	return 1 + s.rng.IntN(s.maxLen)
}

// wavSink converts engine blocks to PCM and writes them with go-audio/wav.
type wavSink struct {
	file        *os.File
	encoder     *wav.Encoder
	buf         *audio.IntBuffer
	left        []float64
	right       []float64
	inter       []float64
	engineScale float64
	fullScale   float64
	peak        float64
}

// createWAVSink creates a stereo WAV file for blocks of up to maxBlock frames
// whose samples span [-enginePeak, enginePeak].
func createWAVSink(path string, sampleRate, bitDepth, maxBlock int, enginePeak float64) (*wavSink, error) {
	fullScale, err := maxValueForBits(bitDepth)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavSink{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, stereoChannels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: stereoChannels, SampleRate: sampleRate},
			Data:           make([]int, stereoChannels*maxBlock),
			SourceBitDepth: bitDepth,
		},
		left:        make([]float64, maxBlock),
		right:       make([]float64, maxBlock),
		inter:       make([]float64, stereoChannels*maxBlock),
		engineScale: enginePeak,
		fullScale:   fullScale,
	}, nil
}

// WriteBlock rescales one stereo block to the file's bit depth and writes it.
func (w *wavSink) WriteBlock(left, right []int32) error {
	n := len(left)
	l := analysis.Int32ToFloat64(w.left, left, w.engineScale)
	r := analysis.Int32ToFloat64(w.right, right, w.engineScale)
	inter := w.inter[:stereoChannels*n]
	f64.Interleave2(inter, l, r)
	w.peak = max(w.peak, analysis.Peak(inter))
	f64.Scale(inter, inter, w.fullScale)

	data := w.buf.Data[:stereoChannels*n]
	for i, v := range inter {
		data[i] = int(math.Round(v))
	}
	w.buf.Data = data
	err := w.encoder.Write(w.buf)
	w.buf.Data = w.buf.Data[:cap(w.buf.Data)]
	if err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// PeakDB returns the largest magnitude written so far in dBFS.
func (w *wavSink) PeakDB() float64 {
	if w.peak == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(w.peak)
}

// Close finalises the WAV header and closes the file.
func (w *wavSink) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalise WAV file: %w", err)
	}
	return w.file.Close()
}

type renderOptions struct {
	outputPath  string
	config      synth.Config
	performance performance
	block       int
	vary        bool
	bitDepth    int
	verbose     bool
}

type renderStats struct {
	frames     int64
	blocks     int
	sampleRate int
	bitDepth   int
	peakDB     float64
}

// renderToWAV runs the control and render sides in lockstep and writes the result.
func renderToWAV(opts *renderOptions) (stats *renderStats, err error) {
	e, err := synth.New(&opts.config)
	if err != nil {
		return nil, err
	}
	cfg := e.Config()
	if len(opts.performance.notes) > e.Voices() {
		return nil, fmt.Errorf("%d notes but preset %s has %d voices", len(opts.performance.notes), cfg.Preset, e.Voices())
	}
	if opts.block < 1 || opts.block > e.MaxBlock() {
		return nil, fmt.Errorf("block size must be 1-%d", e.MaxBlock())
	}

	_, enginePeak := e.OutputRange()
	sampleRate := int(cfg.SampleRate)
	sink, err := createWAVSink(opts.outputPath, sampleRate, opts.bitDepth, opts.block, float64(enginePeak))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := sink.Close(); err == nil {
			err = closeErr
		}
	}()

	total, releaseAt := opts.performance.frames(cfg.SampleRate)
	sizes := newBlockSizer(opts.block, opts.vary, cfg.Seed)
	left := make([]int32, opts.block)
	right := make([]int32, opts.block)
	stats = &renderStats{sampleRate: sampleRate, bitDepth: opts.bitDepth}
	lastProgress := 0

	for frame := 0; frame < total; {
		n := min(sizes.Next(), total-frame)
		if err := opts.performance.apply(e, frame, total, releaseAt); err != nil {
			return nil, err
		}
		if err := e.Render(left[:n], right[:n]); err != nil {
			return nil, err
		}
		if err := sink.WriteBlock(left[:n], right[:n]); err != nil {
			return nil, err
		}
		frame += n
		stats.blocks++

		if opts.verbose {
			progress := frame * percentScale / total
			if progress >= lastProgress+progressInterval {
				log.Printf("Progress: %d%%", progress)
				lastProgress = progress
			}
		}
	}

	stats.frames = e.SampleCount()
	stats.peakDB = sink.PeakDB()
	return stats, nil
}
