// Package tween computes in-between values for the value kinds an animation can
// carry. Each function takes both endpoints, a fraction in [0, 1] and the easing
// applied to that fraction. A nil easing is linear.
package tween

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/constraints"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/keyframes"
)

// Lerp linearly interpolates between from and to. Integer results are
// truncated; use Int for rounding.
func Lerp[T constraints.Integer | constraints.Float](from, to T, t float64) T {
	switch t {
	case 0:
		return from
	case 1:
		return to
	default:
		return T(float64(from) + float64(to-from)*t)
	}
}

// Int interpolates between two integers, rounding to the nearest one.
func Int(from, to int, fraction float64, ease easing.Func) int {
	return int(math.Round(float64(to-from)*ease.Apply(fraction))) + from
}

// Float interpolates between two reals.
func Float(from, to float64, fraction float64, ease easing.Func) float64 {
	return Lerp(from, to, ease.Apply(fraction))
}

// Point interpolates each axis independently. A nil easeY reuses easeX.
func Point(from, to keyframes.Point, fraction float64, easeX, easeY easing.Func) keyframes.Point {
	if easeY == nil {
		easeY = easeX
	}
	return keyframes.Point{
		X: Int(from.X, to.X, fraction, easeX),
		Y: Int(from.Y, to.Y, fraction, easeY),
	}
}

// Dim interpolates width and height independently. A nil easeHeight reuses
// easeWidth.
func Dim(from, to keyframes.Dim, fraction float64, easeWidth, easeHeight easing.Func) keyframes.Dim {
	if easeHeight == nil {
		easeHeight = easeWidth
	}
	return keyframes.Dim{
		Width:  Int(from.Width, to.Width, fraction, easeWidth),
		Height: Int(from.Height, to.Height, fraction, easeHeight),
	}
}

// Colour blends two colours in HCL space.
func Colour(from, to colorful.Color, fraction float64, ease easing.Func) colorful.Color {
	return from.BlendHcl(to, ease.Apply(fraction)).Clamped()
}
