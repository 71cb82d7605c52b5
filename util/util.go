package util

import (
	"github.com/matt-g-everett/ledtween/easing"
)

// GenerateLut builds a symmetric look-up table that rises through fn to 1 at
// its centre and falls back again.
func GenerateLut(fn easing.Func, length int) []float64 {
	if length <= 0 {
		return nil
	}

	half := (length + 1) / 2
	increment := 1.0 / float64(half)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := fn.Apply(float64(i+1) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

// SampleCurve evaluates fn at samples evenly spaced points from 0 to 1
// inclusive.
func SampleCurve(fn easing.Func, samples int) []float64 {
	if samples < 2 {
		samples = 2
	}

	out := make([]float64, samples)
	step := 1.0 / float64(samples-1)
	for i := range out {
		out[i] = fn.Apply(float64(i) * step)
	}
	out[samples-1] = fn.Apply(1)
	return out
}
