package mathutil

// Equal-tempered tuning constants
const (
	concertPitchHz   = 440.0 // A4
	concertPitchNote = 69.0  // MIDI note number of A4
	semitonesPerOct  = 12.0  // Semitones per octave
)
