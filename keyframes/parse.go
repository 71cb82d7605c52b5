package keyframes

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	instantRegex = regexp.MustCompile(`^(-?\d*\.?\d+)\s*(%|s)?$`)
	pointRegex   = regexp.MustCompile(`^point\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)
	dimRegex     = regexp.MustCompile(`^dim\(\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	colourRegex  = regexp.MustCompile(`^colou?r\(\s*(#[0-9a-fA-F]{6})\s*\)$`)
)

// Parse reads a collection from its textual form. Each keyframe is written as
// "instant: value" and keyframes are separated by semicolons, optionally
// wrapped in braces:
//
//	{0%: 0; 25%: 50; 50%: 100; 100%: 200}
//	{0s: point(0, 0); 1.5s: point(100, 50)}
//
// The instant unit (% or s) is required on the first keyframe and may be
// omitted on the rest. Values are integers, reals (written with a '.'),
// point(x, y), dim(w, h) or colour(#rrggbb). The value type is taken from the
// first keyframe; integers are accepted in a real collection.
func Parse(s string) (*Keyframes, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: keyframes cannot be blank", ErrFormat)
	}

	body, err := unwrap(strings.ReplaceAll(s, "\n", " "))
	if err != nil {
		return nil, err
	}

	p := new(parser)
	for _, clause := range strings.Split(body, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		parts := strings.Split(clause, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: expected \"instant: value\", got %q", ErrFormat, clause)
		}

		if err := p.add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}

	if p.k == nil {
		return nil, fmt.Errorf("%w: no keyframes found", ErrFormat)
	}

	sort.SliceStable(p.k.frames, func(i, j int) bool {
		return p.k.frames[i].Instant < p.k.frames[j].Instant
	})

	if err := p.k.Validate(); err != nil {
		return nil, err
	}

	return p.k, nil
}

// MustParse is like Parse but panics on error. It is meant for keyframes
// written into the program.
func MustParse(s string) *Keyframes {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

func unwrap(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.IndexByte(s, '}')

	switch {
	case start == -1 && end == -1:
		return s, nil
	case end == -1:
		return "", fmt.Errorf("%w: unclosed braces", ErrFormat)
	case start == -1 || end < start:
		return "", fmt.Errorf("%w: unopened braces", ErrFormat)
	}

	outside := s[:start] + s[end+1:]
	if strings.TrimSpace(outside) != "" {
		return "", fmt.Errorf("%w: unexpected text outside braces: %q", ErrFormat, strings.TrimSpace(outside))
	}
	inner := s[start+1 : end]
	if strings.ContainsAny(inner, "{}") {
		return "", fmt.Errorf("%w: nested braces", ErrFormat)
	}

	return inner, nil
}

type parser struct {
	k *Keyframes
}

func (p *parser) add(instantText, valueText string) error {
	m := instantRegex.FindStringSubmatch(instantText)
	if m == nil {
		return fmt.Errorf("%w: invalid instant %q", ErrFormat, instantText)
	}

	value, typ, err := parseValue(valueText)
	if err != nil {
		return err
	}

	// The first keyframe decides the unit and type of the collection.
	if p.k == nil {
		if m[2] == "" {
			return fmt.Errorf("%w: the first instant needs a unit (%% or s): %q", ErrFormat, instantText)
		}
		unit := Percent
		if m[2] == "s" {
			unit = Second
		}
		p.k = New(typ, unit)
	}

	if m[2] != "" && m[2] != p.k.unit.suffix() {
		return fmt.Errorf("%w: unit mismatch, expected %s, got %q", ErrFormat, p.k.unit, instantText)
	}

	instant, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid instant %q", ErrFormat, instantText)
	}
	if !p.k.unit.check(instant) {
		return fmt.Errorf("%w: instant out of range (%s): %q", ErrInstant, p.k.unit.rangeString(), instantText)
	}

	if typ == TypeInt && p.k.typ == TypeFloat {
		value = float64(value.(int))
		typ = TypeFloat
	}
	if typ != p.k.typ {
		return fmt.Errorf("%w: value type mismatch, expected %s, got %s: %q", ErrFormat, p.k.typ, typ, valueText)
	}

	p.k.frames = append(p.k.frames, Keyframe{Instant: instant, Value: value})
	return nil
}

func parseValue(v string) (any, Type, error) {
	if m := pointRegex.FindStringSubmatch(v); m != nil {
		x, errX := strconv.Atoi(m[1])
		y, errY := strconv.Atoi(m[2])
		if errX != nil || errY != nil {
			return nil, 0, fmt.Errorf("%w: invalid point %q", ErrFormat, v)
		}
		return Point{X: x, Y: y}, TypePoint, nil
	}

	if m := dimRegex.FindStringSubmatch(v); m != nil {
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW != nil || errH != nil {
			return nil, 0, fmt.Errorf("%w: invalid dim %q", ErrFormat, v)
		}
		return Dim{Width: w, Height: h}, TypeDim, nil
	}

	if m := colourRegex.FindStringSubmatch(v); m != nil {
		c, err := colorful.Hex(m[1])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid colour %q", ErrFormat, v)
		}
		return c, TypeColour, nil
	}

	if strings.Contains(v, ".") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid value %q", ErrFormat, v)
		}
		return f, TypeFloat, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid value %q", ErrFormat, v)
	}
	return i, TypeInt, nil
}
