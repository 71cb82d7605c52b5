// Package easing provides progress-remapping curves for animations.
//
// Every curve in the catalog maps [0, 1] onto a range starting at 0 and ending
// at 1. Back and elastic curves overshoot in between. Custom curves may be any
// Func with the same boundary behaviour; they are not validated.
package easing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// Func maps a linear progress fraction onto an eased one.
type Func func(float64) float64

// Apply calls f, treating a nil Func as Linear.
func (f Func) Apply(fraction float64) float64 {
	if f == nil {
		return fraction
	}
	return f(fraction)
}

// Polynomial, sine, exponential, circular and back curves.
var (
	Linear Func = ease.Linear

	InSine    Func = ease.InSine
	OutSine   Func = ease.OutSine
	InOutSine Func = ease.InOutSine

	InQuad    Func = ease.InQuad
	OutQuad   Func = ease.OutQuad
	InOutQuad Func = ease.InOutQuad

	InCubic    Func = ease.InCubic
	OutCubic   Func = ease.OutCubic
	InOutCubic Func = ease.InOutCubic

	InQuart    Func = ease.InQuart
	OutQuart   Func = ease.OutQuart
	InOutQuart Func = ease.InOutQuart

	InQuint    Func = ease.InQuint
	OutQuint   Func = ease.OutQuint
	InOutQuint Func = ease.InOutQuint

	InExpo    Func = ease.InExpo
	OutExpo   Func = ease.OutExpo
	InOutExpo Func = ease.InOutExpo

	InCirc    Func = ease.InCirc
	OutCirc   Func = ease.OutCirc
	InOutCirc Func = ease.InOutCirc
)

// Back, elastic and bounce curves, and the out-in variants of every family.
var (
	InBack    = penner(gease.InBack)
	OutBack   = penner(gease.OutBack)
	InOutBack = penner(gease.InOutBack)

	InElastic    = penner(gease.InElastic)
	OutElastic   = penner(gease.OutElastic)
	InOutElastic = penner(gease.InOutElastic)

	InBounce    = penner(gease.InBounce)
	OutBounce   = penner(gease.OutBounce)
	InOutBounce = penner(gease.InOutBounce)

	OutInSine    = penner(gease.OutInSine)
	OutInQuad    = penner(gease.OutInQuad)
	OutInCubic   = penner(gease.OutInCubic)
	OutInQuart   = penner(gease.OutInQuart)
	OutInQuint   = penner(gease.OutInQuint)
	OutInExpo    = penner(gease.OutInExpo)
	OutInCirc    = penner(gease.OutInCirc)
	OutInBack    = penner(gease.OutInBack)
	OutInElastic = penner(gease.OutInElastic)
	OutInBounce  = penner(gease.OutInBounce)
)

// penner adapts a Penner-style tween function over the unit range. The ends
// are pinned to 0 and 1 so single precision rounding never leaks into them.
func penner(fn gease.TweenFunc) Func {
	return func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return float64(fn(float32(x), 0, 1, 1))
	}
}

var catalog = map[string]Func{
	"Linear":       Linear,
	"InSine":       InSine,
	"OutSine":      OutSine,
	"InOutSine":    InOutSine,
	"InQuad":       InQuad,
	"OutQuad":      OutQuad,
	"InOutQuad":    InOutQuad,
	"InCubic":      InCubic,
	"OutCubic":     OutCubic,
	"InOutCubic":   InOutCubic,
	"InQuart":      InQuart,
	"OutQuart":     OutQuart,
	"InOutQuart":   InOutQuart,
	"InQuint":      InQuint,
	"OutQuint":     OutQuint,
	"InOutQuint":   InOutQuint,
	"InExpo":       InExpo,
	"OutExpo":      OutExpo,
	"InOutExpo":    InOutExpo,
	"InCirc":       InCirc,
	"OutCirc":      OutCirc,
	"InOutCirc":    InOutCirc,
	"InBack":       InBack,
	"OutBack":      OutBack,
	"InOutBack":    InOutBack,
	"InElastic":    InElastic,
	"OutElastic":   OutElastic,
	"InOutElastic": InOutElastic,
	"InBounce":     InBounce,
	"OutBounce":    OutBounce,
	"InOutBounce":  InOutBounce,
	"OutInSine":    OutInSine,
	"OutInQuad":    OutInQuad,
	"OutInCubic":   OutInCubic,
	"OutInQuart":   OutInQuart,
	"OutInQuint":   OutInQuint,
	"OutInExpo":    OutInExpo,
	"OutInCirc":    OutInCirc,
	"OutInBack":    OutInBack,
	"OutInElastic": OutInElastic,
	"OutInBounce":  OutInBounce,
}

var normalised = func() map[string]Func {
	m := make(map[string]Func, len(catalog))
	for name, fn := range catalog {
		m[normalise(name)] = fn
	}
	return m
}()

// normalise folds "EASE_IN_OUT_QUAD", "in-out-quad" and "InOutQuad" onto the
// same key. "sin" is accepted for "sine".
func normalise(name string) string {
	n := strings.ToLower(name)
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	n = strings.TrimPrefix(n, "ease")
	if strings.HasSuffix(n, "sin") {
		n += "e"
	}
	return n
}

// Lookup returns the catalog curve with the given name. An empty name is
// Linear.
func Lookup(name string) (Func, error) {
	if name == "" {
		return Linear, nil
	}
	fn, ok := normalised[normalise(name)]
	if !ok {
		return nil, fmt.Errorf("easing: unknown function %q", name)
	}
	return fn, nil
}

// Names lists the catalog in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
