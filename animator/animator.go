// Package animator drives a progress fraction from 0 to 1 over a duration.
//
// An Animator registers a recurring tick on a Scheduler. Each tick advances
// the fraction by the share of the duration that one tick represents, scaled
// by the time actually elapsed since the previous tick when frame skip is
// enabled. The eased fraction is handed to the update callback through a
// Dispatcher, which decides the goroutine callbacks run on.
//
// Updates for one Animator are never delivered concurrently. While an update
// is still being processed, further ticks are skipped; the next tick that runs
// makes up for the skipped time.
package animator

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/ledtween/easing"
)

// State is the run state of an Animator.
type State int

const (
	// Idle animators are not scheduled. New and cancelled animators are idle.
	Idle State = iota
	// Running animators tick.
	Running
	// Paused animators are not scheduled and resume from their fraction.
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures an Animator.
type Option func(*Animator)

// WithScheduler ticks the animator on s instead of DefaultScheduler.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) { a.scheduler = s }
}

// WithClock measures elapsed time with c instead of SystemClock.
func WithClock(c Clock) Option {
	return func(a *Animator) { a.clock = c }
}

// WithDispatcher delivers callbacks through d instead of DefaultDispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(a *Animator) { a.dispatcher = d }
}

// WithSettings reads the tick rate and frame skip flag from s instead of
// GlobalSettings.
func WithSettings(s *Settings) Option {
	return func(a *Animator) { a.settings = s }
}

// WithEasing sets the easing applied to the fraction before each update.
func WithEasing(e easing.Func) Option {
	return func(a *Animator) { a.easing = e }
}

// WithLoop makes the animation loop.
func WithLoop(loop bool) Option {
	return func(a *Animator) { a.loops = loop }
}

// WithFinish registers the callback run when the animation finishes.
func WithFinish(fn func()) Option {
	return func(a *Animator) { a.onFinish = fn }
}

// Animator is the timing state machine behind an animation.
type Animator struct {
	scheduler  Scheduler
	clock      Clock
	dispatcher Dispatcher
	settings   *Settings

	update   func(fraction float64)
	pending  atomic.Bool
	mu       sync.Mutex
	onFinish func()

	duration    time.Duration
	delay       time.Duration
	easing      easing.Func
	loops       bool
	freeze      bool
	backToStart bool
	reverse     bool

	state         State
	running       bool
	ticker        Handle
	generation    uint64
	fraction      float64
	fractionDelta float64
	runDuration   time.Duration
	expectedDelay time.Duration
	frameSkip     bool
	lastTick      time.Time
}

// New creates an idle Animator. update receives the eased fraction on every
// tick and 0 whenever the animation is cancelled or stopped.
func New(duration, delay time.Duration, update func(fraction float64), opts ...Option) *Animator {
	a := new(Animator)
	a.duration = duration
	a.runDuration = duration
	a.delay = delay
	a.update = update
	a.easing = easing.Linear

	for _, opt := range opts {
		opt(a)
	}

	if a.scheduler == nil {
		a.scheduler = DefaultScheduler()
	}
	if a.clock == nil {
		a.clock = SystemClock
	}
	if a.dispatcher == nil {
		a.dispatcher = DefaultDispatcher()
	}
	if a.settings == nil {
		a.settings = GlobalSettings()
	}

	return a
}

// Play starts the animation in its current direction. It does nothing if the
// animation is already running. A frozen animation that reached its end is
// cancelled first, so it plays again from the start. Unless skipDelay is set,
// the first tick waits for the configured delay.
func (a *Animator) Play(skipDelay bool) {
	a.mu.Lock()
	if a.ticker != nil {
		a.mu.Unlock()
		return
	}
	restart := a.freeze && a.fraction == 1
	if restart {
		a.fraction = 0
		a.state = Idle
	}
	a.mu.Unlock()

	if restart {
		a.deliver(0)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ticker != nil {
		return
	}

	fps := a.settings.FPSTarget()
	a.frameSkip = a.settings.FrameSkip()
	a.expectedDelay = time.Second / time.Duration(fps)
	a.runDuration = a.duration
	if a.duration > 0 {
		a.fractionDelta = 1 / (float64(fps) * a.duration.Seconds())
	} else {
		a.fractionDelta = 1
	}

	delay := a.delay
	if skipDelay {
		delay = 0
	}

	a.running = true
	a.state = Running
	a.lastTick = time.Time{}
	a.generation++
	generation := a.generation
	a.ticker = a.scheduler.Schedule(delay, a.expectedDelay, func() { a.tick(generation) })
}

// Forward plays the animation towards the end. It does nothing if the
// animation is already running forward.
func (a *Animator) Forward(skipDelay bool) {
	a.direct(false, skipDelay)
}

// Backward plays the animation towards the start. It does nothing if the
// animation is already running backward.
func (a *Animator) Backward(skipDelay bool) {
	a.direct(true, skipDelay)
}

func (a *Animator) direct(reverse, skipDelay bool) {
	a.mu.Lock()
	if a.running && a.reverse == reverse {
		a.mu.Unlock()
		return
	}
	a.pauseLocked()
	a.reverse = reverse
	a.mu.Unlock()

	a.Play(skipDelay)
}

// Revert flips the direction. A running animation keeps running the other
// way; an idle or paused one only remembers the direction for the next Play.
func (a *Animator) Revert() {
	a.mu.Lock()
	if !a.running {
		a.reverse = !a.reverse
		a.mu.Unlock()
		return
	}
	reverse := !a.reverse
	a.mu.Unlock()

	a.direct(reverse, true)
}

// Pause stops ticking and keeps the fraction so Play resumes from it.
func (a *Animator) Pause() {
	a.mu.Lock()
	a.pauseLocked()
	a.mu.Unlock()
}

func (a *Animator) pauseLocked() {
	if a.ticker == nil {
		return
	}
	a.ticker.Cancel()
	a.ticker = nil
	a.running = false
	a.state = Paused
	a.lastTick = time.Time{}
}

// Cancel stops the animation, resets the fraction to 0 and delivers a final
// update of 0 without calling the finish callback.
func (a *Animator) Cancel() {
	a.mu.Lock()
	a.cancelLocked()
	a.mu.Unlock()

	a.deliver(0)
}

func (a *Animator) cancelLocked() {
	a.pauseLocked()
	a.fraction = 0
	a.state = Idle
}

// Stop cancels the animation and calls the finish callback.
func (a *Animator) Stop() {
	a.Cancel()
	a.finish()
}

type outcome int

const (
	proceeding outcome = iota
	stopped
	frozen
)

func (a *Animator) tick(generation uint64) {
	if a.pending.Load() {
		return
	}

	a.mu.Lock()
	if a.ticker == nil || a.generation != generation {
		a.mu.Unlock()
		return
	}

	now := a.clock.Now()
	multiplier := 1.0
	if a.frameSkip && !a.lastTick.IsZero() {
		multiplier = float64(now.Sub(a.lastTick)) / float64(a.expectedDelay)
	}

	step := a.fractionDelta * multiplier
	if a.reverse {
		a.fraction -= step
	} else {
		a.fraction += step
	}

	result := proceeding
	switch {
	case a.loops:
		if a.backToStart && a.reverse && a.fraction <= 0 {
			a.cancelLocked()
			result = stopped
		} else {
			a.fraction = wrap(a.fraction)
		}
	case a.fraction > 1:
		a.fraction = 1
		if a.freeze {
			a.pauseLocked()
			result = frozen
		} else {
			a.cancelLocked()
			result = stopped
		}
	case a.fraction < 0:
		a.cancelLocked()
		result = stopped
	}

	fraction := a.fraction
	ease := a.easing
	if a.running {
		a.lastTick = now
	}
	a.mu.Unlock()

	switch result {
	case stopped:
		a.deliver(0)
		a.finish()
	case frozen:
		a.deliver(ease.Apply(1))
		a.finish()
	default:
		a.deliverTick(ease.Apply(fraction))
	}
}

// wrap folds a looping fraction into [0, 1).
func wrap(fraction float64) float64 {
	m := math.Mod(fraction, 1)
	if m < 0 {
		m = 1 + m
	}
	if m >= 1 {
		m = 0
	}
	return m
}

func (a *Animator) deliver(fraction float64) {
	if a.update == nil {
		return
	}
	a.dispatcher.Dispatch(func() { a.update(fraction) })
}

func (a *Animator) deliverTick(fraction float64) {
	if a.update == nil {
		return
	}
	a.pending.Store(true)
	a.dispatcher.Dispatch(func() {
		defer a.pending.Store(false)
		a.update(fraction)
	})
}

func (a *Animator) finish() {
	a.mu.Lock()
	fn := a.onFinish
	a.mu.Unlock()

	if fn != nil {
		a.dispatcher.Dispatch(fn)
	}
}

// SetOnFinish sets the callback run when a non-looping animation reaches its
// end, and on Stop. It is commonly used to chain animations.
func (a *Animator) SetOnFinish(fn func()) {
	a.mu.Lock()
	a.onFinish = fn
	a.mu.Unlock()
}

// SetDuration sets the animation duration. It applies from the next Play
// after a pause or stop.
func (a *Animator) SetDuration(d time.Duration) {
	a.mu.Lock()
	a.duration = d
	a.mu.Unlock()
}

// Duration returns the animation duration.
func (a *Animator) Duration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.duration
}

// RunDuration returns the duration the current or last run was started with.
// It only follows SetDuration once Play starts a new run.
func (a *Animator) RunDuration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runDuration
}

// SetDelay sets the wait before the first tick when playing without skipping
// the delay.
func (a *Animator) SetDelay(d time.Duration) {
	a.mu.Lock()
	a.delay = d
	a.mu.Unlock()
}

// Delay returns the initial delay.
func (a *Animator) Delay() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.delay
}

// SetEasing sets the easing applied to the fraction. Curves should map 0 to 0
// and 1 to 1; nil is linear.
func (a *Animator) SetEasing(e easing.Func) {
	a.mu.Lock()
	a.easing = e
	a.mu.Unlock()
}

// Loop sets whether the animation loops. A looping animation never finishes
// by itself.
func (a *Animator) Loop(loop bool) {
	a.mu.Lock()
	a.loops = loop
	a.mu.Unlock()
}

// IsLoop reports whether the animation loops.
func (a *Animator) IsLoop() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loops
}

// Freeze sets whether a finished animation holds its end state instead of
// returning to the start. It has no effect on looping animations.
func (a *Animator) Freeze(freeze bool) {
	a.mu.Lock()
	a.freeze = freeze
	a.mu.Unlock()
}

// IsFrozen reports whether the animation holds its end state.
func (a *Animator) IsFrozen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freeze
}

// SetBackToStart makes a looping animation running backward stop at the start
// instead of looping backwards.
func (a *Animator) SetBackToStart(backToStart bool) {
	a.mu.Lock()
	a.backToStart = backToStart
	a.mu.Unlock()
}

// IsBackToStart reports whether a looping animation stops at the start when
// running backward.
func (a *Animator) IsBackToStart() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backToStart
}

// IsRunning reports whether the animation is ticking.
func (a *Animator) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// IsGoingForward reports whether the animation runs towards the end.
func (a *Animator) IsGoingForward() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.reverse
}

// IsGoingBackward reports whether the animation runs towards the start.
func (a *Animator) IsGoingBackward() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reverse
}

// State returns the run state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Fraction returns the current progress before easing.
func (a *Animator) Fraction() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fraction
}
