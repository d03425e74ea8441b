package synth

// Sample rate used when Config.SampleRate is zero.
const defaultSampleRate = 44100.0

// Limits on engine geometry
const (
	maxVoices   = 1024
	maxChorus   = 64
	maxBlockLen = 1 << 16
)

// Reference (PresetSweep) geometry
const (
	sweepTableBits = 11
	sweepCycles    = 16
	sweepVoices    = 16
	sweepChorus    = 4
	sweepMaxBlock  = 4096
	sweepDrive     = 0.3
	sweepPeak      = 0x2ffffff // 26-bit headroom inside int32
)

// Compact preset geometry
const (
	compactTableBits = 9
	compactCycles    = 4
	compactVoices    = 8
	compactChorus    = 2
	compactMaxBlock  = 1024
)

// Linear preset output stage, sized for 16-bit PCM
const (
	linearDrive = 0.25
	linearPeak  = 32767
)

// Voice defaults shared by every preset
const (
	defaultBaseNote     = 36.0 // C2 plays from octave level 0
	defaultPitchRate    = 0.125
	defaultAmpRate      = 0.95
	defaultTimbreRate   = 0.5
	defaultChorusSpread = 0.025 // semitones between adjacent layers
	defaultLayerGain    = 0.5
	defaultGainFloor    = 0.5 // timbre-0 = 0 keeps half the layer gain
	defaultDriftStep    = 0.02
	defaultDriftDecay   = 0.999
)

// Block length RenderNote uses when MaxBlock allows it.
const renderNoteBlock = 256

// Number of timbre parameters per voice.
const timbreParams = 2

// Size of one float64 accumulator sample in bytes.
const bytesPerSample = 8
