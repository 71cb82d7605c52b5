package stream

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/animation"
	"github.com/matt-g-everett/ledtween/animator"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/keyframes"
)

var (
	// ErrUnknownAnimation is returned for commands naming no configured animation.
	ErrUnknownAnimation = errors.New("unknown animation")
	// ErrUnknownAction is returned for commands with an unsupported action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrConfig is returned when the animations cannot be built from config.
	ErrConfig = errors.New("invalid animation config")
)

// Control is the playback surface shared by animations of every value type.
type Control interface {
	Play(skipDelay bool)
	Forward(skipDelay bool)
	Backward(skipDelay bool)
	Pause()
	Stop()
	Cancel()
	Revert()
	State() animator.State
	Fraction() float64
	IsGoingBackward() bool
	IsLoop() bool
	SetOnFinish(fn func())
}

// Command is a control request received over MQTT or HTTP.
type Command struct {
	Name      string `json:"name"`
	Action    string `json:"action"`
	SkipDelay bool   `json:"skipDelay"`
}

// Status is a snapshot of one animation.
type Status struct {
	Name      string  `json:"name"`
	Layer     string  `json:"layer"`
	State     string  `json:"state"`
	Fraction  float64 `json:"fraction"`
	Direction string  `json:"direction"`
	Loop      bool    `json:"loop"`
	Next      string  `json:"next,omitempty"`
}

type entry struct {
	name     string
	kind     string
	next     string
	autoplay bool
	control  Control
	layer    Layer
}

// Controller owns the configured animations and composes their layers into
// frames.
type Controller struct {
	entries []*entry
	byName  map[string]*entry

	mu       sync.Mutex
	onFinish func(name string)
}

// NewController builds one animation per config entry. Options are passed to
// every animator.
func NewController(animations []AnimationConfig, opts ...animator.Option) (*Controller, error) {
	c := new(Controller)
	c.byName = make(map[string]*entry)

	for _, cfg := range animations {
		if cfg.Name == "" {
			return nil, fmt.Errorf("%w: animation without a name", ErrConfig)
		}
		if _, found := c.byName[cfg.Name]; found {
			return nil, fmt.Errorf("%w: duplicate animation %q", ErrConfig, cfg.Name)
		}

		e, err := newEntry(cfg, opts)
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", cfg.Name, err)
		}

		name := e.name
		e.control.SetOnFinish(func() { c.finished(name) })
		c.entries = append(c.entries, e)
		c.byName[e.name] = e
	}

	for _, e := range c.entries {
		if _, found := c.byName[e.next]; e.next != "" && !found {
			return nil, fmt.Errorf("%w: animation %q chains to unknown animation %q", ErrConfig, e.name, e.next)
		}
	}

	return c, nil
}

func newEntry(cfg AnimationConfig, opts []animator.Option) (*entry, error) {
	kf, err := keyframes.Parse(cfg.Keyframes)
	if err != nil {
		return nil, err
	}

	ease, err := easing.Lookup(cfg.Easing)
	if err != nil {
		return nil, err
	}
	if cfg.Spring != nil {
		frequency, damping := cfg.Spring.Frequency, cfg.Spring.Damping
		if frequency <= 0 {
			frequency = easing.DefaultSpringFrequency
		}
		if damping <= 0 {
			damping = easing.DefaultSpringDamping
		}
		ease = easing.Spring(frequency, damping)
	}
	opts = append(opts[:len(opts):len(opts)], animator.WithEasing(ease), animator.WithLoop(cfg.Loop))

	colour := colorful.Color{R: 1, G: 1, B: 1}
	if cfg.Layer.Colour != "" {
		colour, err = colorful.Hex(cfg.Layer.Colour)
		if err != nil {
			return nil, fmt.Errorf("%w: colour %q: %v", ErrConfig, cfg.Layer.Colour, err)
		}
	}

	e := &entry{name: cfg.Name, kind: cfg.Layer.Kind, next: cfg.Next, autoplay: cfg.Autoplay}
	switch cfg.Layer.Kind {
	case "fill":
		l := NewFillLayer(colour)
		e.layer = l
		e.control, err = bind(kf, cfg, l.Set, opts)
	case "cursor":
		l := NewCursorLayer(colour, cfg.Layer.Width)
		e.layer = l
		e.control, err = bind(kf, cfg, l.Set, opts)
	case "brightness":
		l := NewBrightnessLayer()
		e.layer = l
		if kf, err = kf.AsFloat(); err == nil {
			e.control, err = bind(kf, cfg, l.Set, opts)
		}
	case "span":
		l := NewSpanLayer(colour)
		e.layer = l
		e.control, err = bind(kf, cfg, l.Set, opts)
	case "trail":
		l := NewTrailLayer(cfg.Layer.Gradient, cfg.Layer.Width)
		e.layer = l
		if kf, err = kf.AsFloat(); err == nil {
			e.control, err = bind(kf, cfg, l.Set, opts)
		}
	default:
		return nil, fmt.Errorf("%w: unknown layer kind %q", ErrConfig, cfg.Layer.Kind)
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

func bind[T animation.Value](kf *keyframes.Keyframes, cfg AnimationConfig, update func(T), opts []animator.Option) (Control, error) {
	a, err := animation.New(kf, cfg.DurationTime(), cfg.DelayTime(), update, opts...)
	if err != nil {
		return nil, err
	}

	a.Freeze(cfg.Freeze)
	a.SetBackToStart(cfg.BackToStart)
	if cfg.Reverse {
		a.Revert()
	}
	return a, nil
}

// SetOnFinish registers a callback run after an animation finishes and any
// chained animation has been started.
func (c *Controller) SetOnFinish(fn func(name string)) {
	c.mu.Lock()
	c.onFinish = fn
	c.mu.Unlock()
}

func (c *Controller) finished(name string) {
	e := c.byName[name]
	if e.next != "" {
		log.Printf("Animation %s finished, playing %s", name, e.next)
		c.byName[e.next].control.Play(false)
	} else {
		log.Printf("Animation %s finished", name)
	}

	c.mu.Lock()
	fn := c.onFinish
	c.mu.Unlock()
	if fn != nil {
		fn(name)
	}
}

// Start plays every animation marked for autoplay.
func (c *Controller) Start() {
	for _, e := range c.entries {
		if e.autoplay {
			log.Printf("Autoplaying %s", e.name)
			e.control.Play(false)
		}
	}
}

// Animation returns the playback controls of the named animation.
func (c *Controller) Animation(name string) (Control, bool) {
	e, found := c.byName[name]
	if !found {
		return nil, false
	}
	return e.control, true
}

// HandleCommand applies a control command.
func (c *Controller) HandleCommand(cmd Command) error {
	e, found := c.byName[cmd.Name]
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, cmd.Name)
	}

	a := e.control
	switch cmd.Action {
	case "play":
		a.Play(cmd.SkipDelay)
	case "forward":
		a.Forward(cmd.SkipDelay)
	case "backward":
		a.Backward(cmd.SkipDelay)
	case "pause":
		a.Pause()
	case "stop":
		a.Stop()
	case "cancel":
		a.Cancel()
	case "revert":
		a.Revert()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	return nil
}

// Status returns a snapshot of every animation in config order.
func (c *Controller) Status() []Status {
	out := make([]Status, 0, len(c.entries))
	for _, e := range c.entries {
		direction := "forward"
		if e.control.IsGoingBackward() {
			direction = "backward"
		}
		out = append(out, Status{
			Name:      e.name,
			Layer:     e.kind,
			State:     e.control.State().String(),
			Fraction:  e.control.Fraction(),
			Direction: direction,
			Loop:      e.control.IsLoop(),
			Next:      e.next,
		})
	}
	return out
}

// Render draws every layer onto f in config order, starting from black.
func (c *Controller) Render(f *Frame) {
	f.Fill(colorful.Color{})
	for _, e := range c.entries {
		e.layer.Render(f)
	}
}

// CalculateFrame renders a new frame of numPixels pixels.
func (c *Controller) CalculateFrame(numPixels int) *Frame {
	f := NewFrame(numPixels)
	c.Render(f)
	return f
}
