package anim

import "time"

// Unlimited configures a clock that loops forever.
const Unlimited = -1

// Clock converts host-supplied wall-clock readings into a frame index,
// tracking loops and pause state. It never reads a system clock itself:
// every method that needs the time takes it as an argument, so a host
// drives it from its render tick and tests drive it with synthetic
// timestamps.
//
// A Clock is owned by a single animation instance and must not be shared
// between goroutines.
type Clock struct {
	frames *Frames

	index      int
	frameStart time.Time
	paused     bool
	pausedAt   time.Time
	loops      int
	loopLimit  int
	ended      bool
}

// NewClock creates a clock over the given store. loopLimit is the number
// of completed loops after which playback ends; Unlimited never ends.
func NewClock(frames *Frames, loopLimit int) *Clock {
	c := new(Clock)
	c.frames = frames
	c.loopLimit = loopLimit
	return c
}

// Index returns the frame currently due for display.
func (c *Clock) Index() int { return c.index }

// Paused reports whether the clock has been paused by the host. It stays
// false when playback ended by reaching the loop limit.
func (c *Clock) Paused() bool { return c.paused }

// Ended reports whether playback has exceeded the loop limit.
func (c *Clock) Ended() bool { return c.ended }

// Loops returns the number of completed traversals of the sequence.
func (c *Clock) Loops() int { return c.loops }

// Advance moves the clock to the frame due at time now and returns its
// index. While paused or ended it returns the current index unchanged.
// The first call after creation or reset only establishes the time
// baseline; the index starts moving from the second call on.
func (c *Clock) Advance(now time.Time) int {
	if c.paused || c.ended {
		return c.index
	}
	if c.frameStart.IsZero() {
		c.frameStart = now
		return c.index
	}
	if now.Sub(c.frameStart) >= c.frames.Duration(c.index) {
		n := c.frames.Len()
		if c.index == n-1 {
			c.loops++
		}
		c.index = (c.index + 1) % n
		c.frameStart = now
		// Strictly greater: one loop beyond the limit completes
		// before playback ends. Kept for compatibility with the
		// established behaviour.
		if c.loopLimit != Unlimited && c.loops > c.loopLimit {
			c.ended = true
			c.pausedAt = now
		}
	}
	return c.index
}

// Pause freezes the clock at time now. Idempotent; pausing while already
// paused keeps the original pause point.
func (c *Clock) Pause(now time.Time) {
	if !c.paused {
		c.pausedAt = now
	}
	c.paused = true
}

// Resume restarts a paused or ended clock at time now. The frame baseline
// is shifted by the time spent paused, so the in-frame time remaining
// when Pause was called is exactly the time remaining after Resume.
func (c *Clock) Resume(now time.Time) {
	if (c.paused || c.ended) && !c.frameStart.IsZero() {
		c.frameStart = c.frameStart.Add(now.Sub(c.pausedAt))
	}
	c.paused = false
	c.ended = false
}

// Reset returns the clock to its initial state: frame zero, no baseline,
// not paused, not ended, zero completed loops.
func (c *Clock) Reset() {
	c.index = 0
	c.frameStart = time.Time{}
	c.pausedAt = time.Time{}
	c.paused = false
	c.ended = false
	c.loops = 0
}
