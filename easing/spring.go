package easing

import (
	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultSpringFrequency is a lively angular frequency that settles within
	// the curve.
	DefaultSpringFrequency = 12.0
	// DefaultSpringDamping overshoots by about a quarter.
	DefaultSpringDamping = 0.4

	springSteps = 240
)

// Spring returns a curve that follows a damped spring released from 0 towards
// 1 over the unit interval. Damping below 1 overshoots. The simulated spring
// is sampled once; the curve interpolates between samples and is pinned to 1
// at the end. Springs that have not settled by then jump to 1, so pick a
// frequency and damping that settle within the unit interval. Spring curves
// are not part of the named catalog.
func Spring(angularFrequency, dampingRatio float64) Func {
	s := harmonica.NewSpring(harmonica.FPS(springSteps), angularFrequency, dampingRatio)

	samples := make([]float64, springSteps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSteps; i++ {
		pos, vel = s.Update(pos, vel, 1)
		samples[i] = pos
	}

	return func(x float64) float64 {
		switch {
		case x <= 0:
			return 0
		case x >= 1:
			return 1
		}
		at := x * springSteps
		i := int(at)
		return samples[i] + (samples[i+1]-samples[i])*(at-float64(i))
	}
}
