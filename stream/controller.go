package stream

import (
	"fmt"
	"image"
	"time"

	"github.com/matt-g-everett/gifplay/anim"
	"github.com/matt-g-everett/gifplay/util"
)

// transitionSteps is the resolution of the eased transition curve.
const transitionSteps = 256

// Controller drives one animation and crossfades to a replacement when
// the host swaps animations. It implements Source; the streamer owns it
// and calls it from a single goroutine.
type Controller struct {
	animation     *anim.Animation
	nextAnimation *anim.Animation

	transition          float64
	transitionIncrement float64
	lut                 []float64
}

// NewController creates a controller playing a. frameRate is the host
// tick rate; transitionTimeSecs is how long a crossfade between two
// animations takes.
func NewController(a *anim.Animation, frameRate, transitionTimeSecs float64) *Controller {
	c := new(Controller)
	c.animation = a
	c.nextAnimation = nil
	c.transition = 0.0
	c.transitionIncrement = 1.0 / (frameRate * transitionTimeSecs)
	c.lut = util.EaseLut(transitionSteps)
	return c
}

// Swap starts a crossfade from the playing animation to next. The two
// animations must have the same frame size.
func (c *Controller) Swap(next *anim.Animation) error {
	if next.Bounds().Size() != c.animation.Bounds().Size() {
		return fmt.Errorf("stream: mismatched animation bounds: %v != %v", next.Bounds(), c.animation.Bounds())
	}
	c.nextAnimation = next
	c.transition = 0.0
	return nil
}

// Frame advances the playing animation (and, mid-crossfade, its
// replacement) to time now and returns the image to display.
func (c *Controller) Frame(now time.Time) image.Image {
	f := c.animation.Advance(now)
	img := applyAlpha(f.Image, f.Alpha)
	if c.nextAnimation == nil {
		return img
	}

	g := c.nextAnimation.Advance(now)
	img = interpolateFrames(img, applyAlpha(g.Image, g.Alpha), c.eased(c.transition))
	if c.animation.Paused() {
		// The crossfade holds with playback; it picks up on resume.
		return img
	}
	c.transition += c.transitionIncrement
	if c.transition >= 1.0 {
		c.animation = c.nextAnimation
		c.nextAnimation = nil
		c.transition = 0.0
	}
	return img
}

// Pause freezes playback at time now.
func (c *Controller) Pause(now time.Time) {
	c.animation.Pause(now)
	if c.nextAnimation != nil {
		c.nextAnimation.Pause(now)
	}
}

// Resume restarts playback at time now.
func (c *Controller) Resume(now time.Time) {
	c.animation.Resume(now)
	if c.nextAnimation != nil {
		c.nextAnimation.Resume(now)
	}
}

// Reset restarts playback from the first frame.
func (c *Controller) Reset(full bool) {
	c.animation.Reset(full)
	if c.nextAnimation != nil {
		c.nextAnimation.Reset(full)
	}
}

// Animation returns the animation currently playing.
func (c *Controller) Animation() *anim.Animation {
	return c.animation
}

// eased maps linear transition progress onto the precomputed ease curve.
func (c *Controller) eased(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return c.lut[int(t*float64(len(c.lut)-1))]
}
