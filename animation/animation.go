// Package animation binds keyframes to an animator, turning the animator's
// progress into typed, interpolated values.
//
//	kf := keyframes.MustParse("{0%: point(0, 0); 50%: point(100, 0); 100%: point(100, 100)}")
//	a, err := animation.New(kf, 2*time.Second, 0, func(p keyframes.Point) {
//	    sprite.MoveTo(p)
//	})
//	if err != nil {
//	    return err
//	}
//	a.Play(true)
package animation

import (
	"fmt"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/animator"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/keyframes"
	"github.com/matt-g-everett/ledtween/tween"
)

// Value is the set of Go types an animation can produce.
type Value interface {
	int | float64 | keyframes.Point | keyframes.Dim | colorful.Color
}

// Animation plays a keyframe collection and delivers interpolated values. The
// embedded Animator provides the playback controls.
type Animation[T Value] struct {
	*animator.Animator

	keyframes *keyframes.Keyframes
	values    []T
	mu        sync.Mutex
	cursor    *keyframes.Cursor
	easeX     easing.Func
	easeY     easing.Func
	update    func(T)
}

// New creates an idle animation over kf. The collection's type must match T.
// kf must not be modified afterwards. Options configure the underlying
// Animator.
func New[T Value](kf *keyframes.Keyframes, duration, delay time.Duration, update func(T), opts ...animator.Option) (*Animation[T], error) {
	if err := kf.Validate(); err != nil {
		return nil, err
	}

	values := make([]T, kf.Len())
	for i := range values {
		v, ok := kf.ValueAt(i).(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: keyframes hold %s, animation produces %T", keyframes.ErrType, kf.Type(), zero)
		}
		values[i] = v
	}

	a := new(Animation[T])
	a.keyframes = kf
	a.values = values
	a.cursor = keyframes.NewCursor(kf)
	a.easeX = easing.Linear
	a.update = update
	a.Animator = animator.New(duration, delay, a.frame, opts...)

	return a, nil
}

// Keyframes returns the collection being played.
func (a *Animation[T]) Keyframes() *keyframes.Keyframes {
	return a.keyframes
}

// SetAxisEasing sets the easing used within each segment. Points and dims ease
// their axes independently; a nil y reuses x. Scalars and colours use x.
func (a *Animation[T]) SetAxisEasing(x, y easing.Func) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.easeX = x
	a.easeY = y
}

// ValueAt resolves the value for an eased animation fraction. Instants in
// seconds are placed using the duration of the current run.
func (a *Animation[T]) ValueAt(fraction float64) T {
	duration := a.RunDuration()

	a.mu.Lock()
	defer a.mu.Unlock()
	index, local := a.cursor.Resolve(fraction, duration)

	from := a.values[index]
	to := from
	if index+1 < len(a.values) {
		to = a.values[index+1]
	}

	return interpolate(from, to, local, a.easeX, a.easeY)
}

func (a *Animation[T]) frame(fraction float64) {
	v := a.ValueAt(fraction)
	if a.update != nil {
		a.update(v)
	}
}

func interpolate[T Value](from, to T, fraction float64, easeX, easeY easing.Func) T {
	var out any
	switch f := any(from).(type) {
	case int:
		out = tween.Int(f, any(to).(int), fraction, easeX)
	case float64:
		out = tween.Float(f, any(to).(float64), fraction, easeX)
	case keyframes.Point:
		out = tween.Point(f, any(to).(keyframes.Point), fraction, easeX, easeY)
	case keyframes.Dim:
		out = tween.Dim(f, any(to).(keyframes.Dim), fraction, easeX, easeY)
	case colorful.Color:
		out = tween.Colour(f, any(to).(colorful.Color), fraction, easeX)
	}
	return out.(T)
}
