package wavetable

// Timbre slots, ordered from dark to bright.
const (
	SlotSine     = iota // single sine
	SlotHarmonic        // first seven harmonics at 1/h
	SlotRamp            // rising ramp
	SlotNoise           // smoothed noise, brightness varies by cycle slot

	// TimbreSlots is the number of parallel waveforms per cycle slot.
	TimbreSlots
)

// Table geometry limits
const (
	MinTableBits = 4  // Smallest table: 16 samples, 4 octave levels
	MaxTableBits = 16 // Largest table: 65536 samples
	MaxCycles    = 256
)

// Level-0 content constants
const (
	harmonicRichPartials = 7   // Partials summed into the harmonic-rich slot
	noiseCenter          = 0.5 // Uniform [0,1) shifted to [-0.5, 0.5)
	contentPhaseOffset   = 1.0 / 8.0

	// 3-tap smoothing kernel applied to the noise slot, once per pass.
	smoothCenter   = 0.5
	smoothNeighbor = 0.25
)

// packingFactor is the ratio between a packed buffer and its level-0 table.
// The geometric series Size + Size/2 + ... stays below 2*Size.
const packingFactor = 2
