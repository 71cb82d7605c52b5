package keyframes

import "time"

// Cursor tracks the active segment of a collection while an animation plays.
// The segment between keyframe i and i+1 is cached so each frame only moves
// the index by the keyframes it crossed since the previous one.
type Cursor struct {
	k     *Keyframes
	index int
}

// NewCursor creates a cursor positioned on the first segment of k.
func NewCursor(k *Keyframes) *Cursor {
	c := new(Cursor)
	c.k = k
	return c
}

// Index returns the keyframe index that starts the active segment.
func (c *Cursor) Index() int {
	return c.index
}

// position returns the instant of keyframe i as a fraction of duration.
func (c *Cursor) position(i int, seconds float64) float64 {
	if c.k.unit == Second {
		if seconds <= 0 {
			return 0
		}
		return c.k.InstantAt(i) / seconds
	}
	return c.k.InstantAt(i)
}

// Resolve maps the animation fraction onto the active segment. It returns the
// index of the keyframe starting the segment and the fraction travelled
// within it. A fraction of exactly 0 resets the cursor to the first segment.
//
// The cursor steps forward past every keyframe the fraction has exceeded and
// back past every keyframe it has fallen below, so playing backwards and
// overshooting easings resolve to the right segment.
func (c *Cursor) Resolve(fraction float64, duration time.Duration) (int, float64) {
	if fraction == 0 {
		c.index = 0
		return 0, 0
	}

	seconds := duration.Seconds()
	n := c.k.Len()

	for c.index+1 < n && fraction > c.position(c.index+1, seconds) {
		c.index++
	}
	for c.index > 0 && fraction < c.position(c.index, seconds) {
		c.index--
	}

	previous := c.position(c.index, seconds)
	next := 1.0
	if c.index+1 < n {
		next = c.position(c.index+1, seconds)
	}

	if next <= previous {
		return c.index, 1
	}

	// Eased fractions outside [0, 1] hold the first or last value.
	local := (fraction - previous) / (next - previous)
	switch {
	case local < 0:
		return c.index, 0
	case local > 1:
		return c.index, 1
	}
	return c.index, local
}
