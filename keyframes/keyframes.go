// Package keyframes describes animations as ordered (instant, value) pairs.
//
// A collection holds values of a single Type and instants of a single Unit.
// Collections are built with New and Add, or parsed from text with Parse:
//
//	{
//	    0%: point(100, 50);
//	    25%: point(150, 50);
//	    100%: point(200, 100);
//	}
//
// Every collection must contain exactly one keyframe at instant 0.
package keyframes

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrFormat is returned for malformed keyframe text and value/unit mismatches.
	ErrFormat = errors.New("keyframes: invalid format")
	// ErrInstant is returned for instants outside their unit's range and for a
	// missing or repeated initial instant.
	ErrInstant = errors.New("keyframes: invalid instant")
	// ErrType is returned when a value is requested as a type the collection
	// does not hold.
	ErrType = errors.New("keyframes: type mismatch")
)

// Unit is the unit keyframe instants are expressed in.
type Unit int

const (
	// Percent instants are a percentage of the animation duration, 0 to 100.
	Percent Unit = iota
	// Second instants are absolute seconds from the start of the animation.
	Second
)

func (u Unit) String() string {
	switch u {
	case Percent:
		return "percent"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

func (u Unit) check(instant float64) bool {
	if u == Percent {
		return instant >= 0 && instant <= 100
	}
	return instant >= 0
}

func (u Unit) rangeString() string {
	if u == Percent {
		return "0 <= x <= 100"
	}
	return "x >= 0"
}

func (u Unit) suffix() string {
	if u == Percent {
		return "%"
	}
	return "s"
}

// Type is the kind of value held by a collection.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypePoint
	TypeDim
	TypeColour
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypePoint:
		return "point"
	case TypeDim:
		return "dim"
	case TypeColour:
		return "colour"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Point is a 2D position.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Dim is a 2D extent.
type Dim struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// TypeOf returns the Type matching a Go value.
func TypeOf(value any) (Type, bool) {
	switch value.(type) {
	case int:
		return TypeInt, true
	case float64:
		return TypeFloat, true
	case Point:
		return TypePoint, true
	case Dim:
		return TypeDim, true
	case colorful.Color:
		return TypeColour, true
	default:
		return 0, false
	}
}

func (t Type) format(value any) string {
	switch v := value.(type) {
	case Point:
		return fmt.Sprintf("point(%d, %d)", v.X, v.Y)
	case Dim:
		return fmt.Sprintf("dim(%d, %d)", v.Width, v.Height)
	case colorful.Color:
		return fmt.Sprintf("colour(%s)", v.Hex())
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// Keyframe is a value at an instant.
type Keyframe struct {
	Instant float64
	Value   any
}

// Keyframes is an ordered collection of keyframes sharing one Type and Unit.
// It must not be modified once bound to a running animation.
type Keyframes struct {
	frames []Keyframe
	typ    Type
	unit   Unit
}

// New creates an empty collection of the given value type and instant unit.
func New(typ Type, unit Unit) *Keyframes {
	k := new(Keyframes)
	k.typ = typ
	k.unit = unit
	return k
}

// Add inserts a keyframe, keeping the collection sorted by instant.
func (k *Keyframes) Add(instant float64, value any) error {
	if t, ok := TypeOf(value); !ok || t != k.typ {
		return fmt.Errorf("%w: all keyframes must have a value of type %s, got %T", ErrFormat, k.typ, value)
	}

	if !k.unit.check(instant) {
		return fmt.Errorf("%w: instant out of range (%s): %v", ErrInstant, k.unit.rangeString(), instant)
	}

	i := sort.Search(len(k.frames), func(i int) bool { return k.frames[i].Instant > instant })
	k.frames = append(k.frames, Keyframe{})
	copy(k.frames[i+1:], k.frames[i:])
	k.frames[i] = Keyframe{Instant: instant, Value: value}

	return nil
}

// Validate checks that the collection is non-empty and has exactly one
// keyframe at instant 0.
func (k *Keyframes) Validate() error {
	if len(k.frames) == 0 || k.frames[0].Instant != 0 {
		return fmt.Errorf("%w: missing initial instant (add a value for 0%% or 0s)", ErrInstant)
	}
	if len(k.frames) > 1 && k.frames[1].Instant == 0 {
		return fmt.Errorf("%w: more than one initial instant", ErrInstant)
	}
	return nil
}

// AsFloat returns the collection with its values as reals. Int collections are
// copied and promoted; float collections are returned as is.
func (k *Keyframes) AsFloat() (*Keyframes, error) {
	switch k.typ {
	case TypeFloat:
		return k, nil
	case TypeInt:
		out := New(TypeFloat, k.unit)
		out.frames = make([]Keyframe, len(k.frames))
		for i, f := range k.frames {
			out.frames[i] = Keyframe{Instant: f.Instant, Value: float64(f.Value.(int))}
		}
		return out, nil
	default:
		return nil, k.expect(TypeFloat)
	}
}

// Type returns the value type held by the collection.
func (k *Keyframes) Type() Type {
	return k.typ
}

// Unit returns the unit instants are expressed in.
func (k *Keyframes) Unit() Unit {
	return k.unit
}

// Len returns the number of keyframes.
func (k *Keyframes) Len() int {
	return len(k.frames)
}

// InstantAt returns the instant of keyframe i. Percent instants are returned
// as a fraction of the duration, second instants as seconds.
func (k *Keyframes) InstantAt(i int) float64 {
	if k.unit == Percent {
		return k.frames[i].Instant / 100
	}
	return k.frames[i].Instant
}

// ValueAt returns the raw value of keyframe i.
func (k *Keyframes) ValueAt(i int) any {
	return k.frames[i].Value
}

func (k *Keyframes) expect(t Type) error {
	if k.typ != t {
		return fmt.Errorf("%w: collection holds %s, requested %s", ErrType, k.typ, t)
	}
	return nil
}

// IntAt returns the value of keyframe i of a TypeInt collection.
func (k *Keyframes) IntAt(i int) (int, error) {
	if err := k.expect(TypeInt); err != nil {
		return 0, err
	}
	return k.frames[i].Value.(int), nil
}

// FloatAt returns the value of keyframe i of a TypeFloat collection.
func (k *Keyframes) FloatAt(i int) (float64, error) {
	if err := k.expect(TypeFloat); err != nil {
		return 0, err
	}
	return k.frames[i].Value.(float64), nil
}

// PointAt returns the value of keyframe i of a TypePoint collection.
func (k *Keyframes) PointAt(i int) (Point, error) {
	if err := k.expect(TypePoint); err != nil {
		return Point{}, err
	}
	return k.frames[i].Value.(Point), nil
}

// DimAt returns the value of keyframe i of a TypeDim collection.
func (k *Keyframes) DimAt(i int) (Dim, error) {
	if err := k.expect(TypeDim); err != nil {
		return Dim{}, err
	}
	return k.frames[i].Value.(Dim), nil
}

// ColourAt returns the value of keyframe i of a TypeColour collection.
func (k *Keyframes) ColourAt(i int) (colorful.Color, error) {
	if err := k.expect(TypeColour); err != nil {
		return colorful.Color{}, err
	}
	return k.frames[i].Value.(colorful.Color), nil
}

// String renders the collection in the format accepted by Parse.
func (k *Keyframes) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, f := range k.frames {
		b.WriteString("\t")
		b.WriteString(strconv.FormatFloat(f.Instant, 'f', -1, 64))
		b.WriteString(k.unit.suffix())
		b.WriteString(": ")
		b.WriteString(k.typ.format(f.Value))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
