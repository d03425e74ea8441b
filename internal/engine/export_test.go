package engine

// Export internal state for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// LayerFrequencies returns the start and end frequency of chorus layer c.
func (v *Voice) LayerFrequencies(c int) (lastFreq, freq float64) {
	return v.layers[c].lastFreq, v.layers[c].freq
}

// LayerDrift returns the drift offset of chorus layer c.
func (v *Voice) LayerDrift(c int) float64 {
	return v.layers[c].drift.Offset()
}

// ExportedShapeArctan wraps shapeArctan for testing
func ExportedShapeArctan(x float64) float64 { return shapeArctan(x) }

// ExportedSaturate wraps saturate for testing
func ExportedSaturate(x, peak float64) int32 { return saturate(x, peak) }
