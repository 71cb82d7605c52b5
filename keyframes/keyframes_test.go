package keyframes

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParsePercent(t *testing.T) {
	k, err := Parse("{0%: 0; 100%: 100}")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if k.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", k.Len())
	}
	if k.Type() != TypeInt {
		t.Errorf("Type() = %s, expected int", k.Type())
	}
	if k.Unit() != Percent {
		t.Errorf("Unit() = %s, expected percent", k.Unit())
	}
	if v := k.InstantAt(0); v != 0 {
		t.Errorf("InstantAt(0) = %v, expected 0", v)
	}
	if v := k.InstantAt(1); v != 1 {
		t.Errorf("InstantAt(1) = %v, expected 1", v)
	}
	if v, _ := k.IntAt(1); v != 100 {
		t.Errorf("IntAt(1) = %d, expected 100", v)
	}
}

func TestParseValueKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   Type
		unit  Unit
		last  any
	}{
		{"seconds points", "{0s: point(0,0); 1.5s: point(100, 50)}", TypePoint, Second, Point{100, 50}},
		{"dims", "{0%: dim(10, 20); 100%: dim(30, 40)}", TypeDim, Percent, Dim{30, 40}},
		{"reals", "{0%: 0.5; 100%: 2.25}", TypeFloat, Percent, 2.25},
		{"mixed reals", "{0%: 0.0; 50%: 3; 100%: 1.5}", TypeFloat, Percent, 1.5},
		{"negative ints", "{0%: -5; 100%: 5}", TypeInt, Percent, 5},
		{"colours", "{0%: colour(#ff0000); 100%: color(#0000ff)}", TypeColour, Percent, colorful.Color{R: 0, G: 0, B: 1}},
		{"no braces", "0%: 1; 100%: 2", TypeInt, Percent, 2},
		{"unit omitted after first", "{0s: 1; 2: 3; 4.5: 6}", TypeInt, Second, 6},
		{"trailing separators", "{0%: 1;; 100%: 2; ;}", TypeInt, Percent, 2},
		{"multi line", "{\n\t0%: 1;\n\t100%: 2;\n}", TypeInt, Percent, 2},
		{"unsorted", "{100%: 2; 0%: 1; 50%: 7}", TypeInt, Percent, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if k.Type() != tt.typ {
				t.Errorf("Type() = %s, expected %s", k.Type(), tt.typ)
			}
			if k.Unit() != tt.unit {
				t.Errorf("Unit() = %s, expected %s", k.Unit(), tt.unit)
			}
			if v := k.ValueAt(k.Len() - 1); v != tt.last {
				t.Errorf("last value = %v, expected %v", v, tt.last)
			}
		})
	}
}

func TestParseMixedRealsArePromoted(t *testing.T) {
	k := MustParse("{0%: 0.0; 50%: 3; 100%: 1.5}")
	v, err := k.FloatAt(1)
	if err != nil {
		t.Fatalf("FloatAt(1) failed: %v", err)
	}
	if v != 3 {
		t.Errorf("FloatAt(1) = %v, expected 3", v)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", ErrFormat},
		{"blank", "   \n ", ErrFormat},
		{"unclosed", "{0%: 1; 100%: 2", ErrFormat},
		{"unopened", "0%: 1; 100%: 2}", ErrFormat},
		{"no colon", "{0% 1}", ErrFormat},
		{"two colons", "{0%: 1: 2}", ErrFormat},
		{"bad instant", "{zero%: 1}", ErrFormat},
		{"bad value", "{0%: one}", ErrFormat},
		{"first without unit", "{0: 1; 100%: 2}", ErrFormat},
		{"unit mismatch", "{0%: 1; 2s: 2}", ErrFormat},
		{"type mismatch", "{0%: 1; 100%: point(1, 2)}", ErrFormat},
		{"real in int collection", "{0%: 1; 100%: 2.5}", ErrFormat},
		{"only separators", "{;;}", ErrFormat},
		{"missing initial", "{50%: 1; 100%: 2}", ErrInstant},
		{"out of range", "{0%: 0; 150%: 1}", ErrInstant},
		{"negative percent", "{0%: 0; -5%: 1}", ErrInstant},
		{"negative seconds", "{0s: 0; -1s: 1}", ErrInstant},
		{"duplicate initial", "{0%: 0; 0%: 1}", ErrInstant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, expected an error", tt.input, k)
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Parse(%q) error = %v, expected %v", tt.input, err, tt.expected)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustParse to panic")
		}
	}()
	MustParse("{50%: 1}")
}

func TestAdd(t *testing.T) {
	k := New(TypePoint, Second)
	if err := k.Add(2, Point{20, 20}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := k.Add(0, Point{0, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := k.Add(1, Point{10, 5}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for i, expected := range []float64{0, 1, 2} {
		if v := k.InstantAt(i); v != expected {
			t.Errorf("InstantAt(%d) = %v, expected %v", i, v, expected)
		}
	}
	if err := k.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	if err := k.Add(3, 5); !errors.Is(err, ErrFormat) {
		t.Errorf("Add with an int value error = %v, expected ErrFormat", err)
	}
	if err := k.Add(-1, Point{}); !errors.Is(err, ErrInstant) {
		t.Errorf("Add at -1s error = %v, expected ErrInstant", err)
	}

	p := New(TypeInt, Percent)
	if err := p.Add(101, 1); !errors.Is(err, ErrInstant) {
		t.Errorf("Add at 101%% error = %v, expected ErrInstant", err)
	}
	if err := p.Add(50, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := p.Validate(); !errors.Is(err, ErrInstant) {
		t.Errorf("Validate without an initial instant = %v, expected ErrInstant", err)
	}
	if err := New(TypeInt, Percent).Validate(); !errors.Is(err, ErrInstant) {
		t.Errorf("Validate on an empty collection = %v, expected ErrInstant", err)
	}
}

func TestAccessorTypeMismatch(t *testing.T) {
	k := MustParse("{0%: 1; 100%: 2}")
	if _, err := k.FloatAt(0); !errors.Is(err, ErrType) {
		t.Errorf("FloatAt error = %v, expected ErrType", err)
	}
	if _, err := k.PointAt(0); !errors.Is(err, ErrType) {
		t.Errorf("PointAt error = %v, expected ErrType", err)
	}
	if _, err := k.DimAt(0); !errors.Is(err, ErrType) {
		t.Errorf("DimAt error = %v, expected ErrType", err)
	}
	if _, err := k.ColourAt(0); !errors.Is(err, ErrType) {
		t.Errorf("ColourAt error = %v, expected ErrType", err)
	}
}

func TestStringParsesBack(t *testing.T) {
	inputs := []string{
		"{0%: 0; 25%: 50; 50%: 100; 100%: 200}",
		"{0s: point(0, 0); 1.5s: point(100, -50)}",
		"{0%: dim(1, 2); 100%: dim(3, 4)}",
		"{0%: 1.0; 100%: 2.5}",
		"{0%: colour(#ff8000); 100%: colour(#0080ff)}",
	}

	for _, input := range inputs {
		k := MustParse(input)
		again, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", k.String(), err)
		}
		if again.Len() != k.Len() || again.Type() != k.Type() || again.Unit() != k.Unit() {
			t.Fatalf("%q parsed back as a different collection", k.String())
		}
		for i := 0; i < k.Len(); i++ {
			if again.InstantAt(i) != k.InstantAt(i) || again.ValueAt(i) != k.ValueAt(i) {
				t.Errorf("keyframe %d of %q differs after parsing back", i, input)
			}
		}
	}
}

func TestCursorResolve(t *testing.T) {
	k := MustParse("{0%: 0; 50%: 255; 100%: 0}")
	c := NewCursor(k)

	tests := []struct {
		fraction float64
		index    int
		local    float64
	}{
		{0, 0, 0},
		{0.25, 0, 0.5},
		{0.5, 0, 1},
		{0.75, 1, 0.5},
		{1, 1, 1},
		{0.25, 0, 0.5},
		{0, 0, 0},
	}

	for _, tt := range tests {
		index, local := c.Resolve(tt.fraction, time.Second)
		if index != tt.index || math.Abs(local-tt.local) > 1e-9 {
			t.Errorf("Resolve(%v) = (%d, %v), expected (%d, %v)", tt.fraction, index, local, tt.index, tt.local)
		}
	}
}

func TestCursorSkipsSegments(t *testing.T) {
	c := NewCursor(MustParse("{0%: 0; 10%: 1; 20%: 2; 30%: 3; 100%: 4}"))
	index, local := c.Resolve(0.65, time.Second)
	if index != 3 || math.Abs(local-0.5) > 1e-9 {
		t.Errorf("Resolve(0.65) = (%d, %v), expected (3, 0.5)", index, local)
	}
}

func TestCursorHoldsOutsideUnitInterval(t *testing.T) {
	c := NewCursor(MustParse("{0%: 0; 50%: 100; 100%: 200}"))

	tests := []struct {
		fraction float64
		index    int
		local    float64
	}{
		{-0.1, 0, 0},
		{0.75, 1, 0.5},
		{1.1, 2, 1},
		{-0.05, 0, 0},
	}

	for _, tt := range tests {
		index, local := c.Resolve(tt.fraction, time.Second)
		if index != tt.index || math.Abs(local-tt.local) > 1e-9 {
			t.Errorf("Resolve(%v) = (%d, %v), expected (%d, %v)", tt.fraction, index, local, tt.index, tt.local)
		}
	}
}

func TestCursorSeconds(t *testing.T) {
	c := NewCursor(MustParse("{0s: 0; 1s: 10; 3s: 30}"))
	duration := 4 * time.Second

	tests := []struct {
		fraction float64
		index    int
		local    float64
	}{
		{0.125, 0, 0.5},
		{0.5, 1, 0.5},
		{0.875, 2, 0.5},
	}

	for _, tt := range tests {
		index, local := c.Resolve(tt.fraction, duration)
		if index != tt.index || math.Abs(local-tt.local) > 1e-9 {
			t.Errorf("Resolve(%v) = (%d, %v), expected (%d, %v)", tt.fraction, index, local, tt.index, tt.local)
		}
	}
}

func TestAsFloat(t *testing.T) {
	k := MustParse("{0%: 0; 50%: 3; 100%: 1}")
	f, err := k.AsFloat()
	if err != nil {
		t.Fatalf("AsFloat failed: %v", err)
	}
	if f.Type() != TypeFloat || f.Unit() != Percent || f.Len() != 3 {
		t.Fatalf("AsFloat() = %s/%s with %d keyframes", f.Type(), f.Unit(), f.Len())
	}
	if v, _ := f.FloatAt(1); v != 3 {
		t.Errorf("FloatAt(1) = %v, expected 3", v)
	}
	if f.InstantAt(1) != 0.5 {
		t.Errorf("InstantAt(1) = %v, expected 0.5", f.InstantAt(1))
	}
	if k.Type() != TypeInt {
		t.Errorf("source collection changed to %s", k.Type())
	}

	if _, err := MustParse("{0%: point(0, 0)}").AsFloat(); !errors.Is(err, ErrType) {
		t.Errorf("AsFloat on points: error = %v, expected ErrType", err)
	}
}
