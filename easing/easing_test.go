package easing

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func TestCatalogBoundaries(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", name, err)
			}
			if v := fn(0); math.Abs(v) > tolerance {
				t.Errorf("%s(0) = %v, expected 0", name, v)
			}
			if v := fn(1); math.Abs(v-1) > tolerance {
				t.Errorf("%s(1) = %v, expected 1", name, v)
			}
		})
	}
}

func TestBounceReflection(t *testing.T) {
	for x := 0.0; x <= 1.0; x += 0.01 {
		if got, want := InBounce(x), 1-OutBounce(1-x); math.Abs(got-want) > tolerance {
			t.Errorf("InBounce(%v) = %v, expected %v", x, got, want)
		}
	}

	for x := 0.0; x < 0.5; x += 0.01 {
		if got, want := InOutBounce(x), InBounce(2*x)/2; math.Abs(got-want) > tolerance {
			t.Errorf("InOutBounce(%v) = %v, expected %v", x, got, want)
		}
	}
}

func TestOutBounceIntervals(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1 / 2.75, 1},
		{1.5 / 2.75, 0.75},
		{2.25 / 2.75, 0.9375},
		{2.625 / 2.75, 0.984375},
	}

	for _, tt := range tests {
		if got := OutBounce(tt.input); math.Abs(got-tt.expected) > tolerance {
			t.Errorf("OutBounce(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		fn       Func
		input    float64
		expected float64
	}{
		{"Linear", Linear, 0.5, 0.5},
		{"InQuad", InQuad, 0.5, 0.25},
		{"OutQuad", OutQuad, 0.5, 0.75},
		{"InOutQuad", InOutQuad, 0.25, 0.125},
		{"InCubic", InCubic, 0.5, 0.125},
		{"OutCubic", OutCubic, 0.5, 0.875},
		{"InOutCubic", InOutCubic, 0.25, 0.0625},
		{"InQuart", InQuart, 0.5, 0.0625},
		{"InQuint", InQuint, 0.5, 0.03125},
		{"InOutSine", InOutSine, 0.5, 0.5},
		{"InExpo", InExpo, 0.5, math.Pow(2, -5)},
		{"OutExpo", OutExpo, 0.5, 1 - math.Pow(2, -5)},
		{"InOutCirc", InOutCirc, 0.5, 0.5},
		{"InBack", InBack, 0.5, 2.70158*0.125 - 1.70158*0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); math.Abs(got-tt.expected) > tolerance {
				t.Errorf("%s(%v) = %v, expected %v", tt.name, tt.input, got, tt.expected)
			}
		})
	}
}

func TestOvershoot(t *testing.T) {
	if v := InBack(0.2); v >= 0 {
		t.Errorf("InBack(0.2) = %v, expected a value below 0", v)
	}
	if v := OutBack(0.8); v <= 1 {
		t.Errorf("OutBack(0.8) = %v, expected a value above 1", v)
	}
	if v := OutElastic(0.1); v <= 1 {
		t.Errorf("OutElastic(0.1) = %v, expected a value above 1", v)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		expected Func
	}{
		{"", Linear},
		{"linear", Linear},
		{"InOutQuad", InOutQuad},
		{"in-out-quad", InOutQuad},
		{"EASE_IN_OUT_QUAD", InOutQuad},
		{"EASE_IN_SIN", InSine},
		{"ease-out-bounce", OutBounce},
		{"out-in-elastic", OutInElastic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.name, err)
			}
			for _, x := range []float64{0.1, 0.3, 0.7} {
				if fn(x) != tt.expected(x) {
					t.Errorf("Lookup(%q) returned a different curve at %v", tt.name, x)
				}
			}
		})
	}

	if _, err := Lookup("wobble"); err == nil {
		t.Error("expected an error for an unknown easing name")
	}
}

func TestNilApply(t *testing.T) {
	var fn Func
	if v := fn.Apply(0.3); v != 0.3 {
		t.Errorf("nil Func applied to 0.3 = %v, expected 0.3", v)
	}
	if v := InQuad.Apply(0.5); v != 0.25 {
		t.Errorf("InQuad.Apply(0.5) = %v, expected 0.25", v)
	}
}

func TestOutInMidpoints(t *testing.T) {
	for _, name := range []string{"OutInQuad", "OutInCubic", "OutInSine", "OutInCirc", "OutInBounce"} {
		fn, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if v := fn(0.5); math.Abs(v-0.5) > tolerance {
			t.Errorf("%s(0.5) = %v, expected 0.5", name, v)
		}
	}

	if v := OutInQuad(0.25); math.Abs(v-0.375) > tolerance {
		t.Errorf("OutInQuad(0.25) = %v, expected 0.375", v)
	}
}

func TestSpring(t *testing.T) {
	fn := Spring(DefaultSpringFrequency, DefaultSpringDamping)

	if fn(0) != 0 || fn(1) != 1 {
		t.Errorf("Spring boundaries = %v, %v, expected 0, 1", fn(0), fn(1))
	}
	if fn(0.05) <= 0 {
		t.Errorf("Spring(0.05) = %v, expected movement towards 1", fn(0.05))
	}

	peak := 0.0
	for x := 0.0; x < 1; x += 0.01 {
		peak = math.Max(peak, fn(x))
	}
	if peak <= 1 {
		t.Errorf("underdamped spring peaked at %v, expected an overshoot", peak)
	}
	if v := fn(0.99); math.Abs(v-1) > 0.05 {
		t.Errorf("Spring(0.99) = %v, expected the spring to have settled near 1", v)
	}

	critical := Spring(DefaultSpringFrequency, 1)
	for x := 0.0; x < 1; x += 0.01 {
		if v := critical(x); v > 1+tolerance {
			t.Fatalf("critically damped spring overshot to %v at %v", v, x)
		}
	}
}
