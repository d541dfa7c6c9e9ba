// Package anim plays a sequence of decoded animation frames against
// wall-clock time supplied by a host application.
//
// An Animation owns a frame store and a playback clock. On every render
// tick the host calls Advance with the current time and blits the frame
// it gets back; the package itself never draws, sleeps or reads a clock.
package anim

import (
	"image"
	"time"

	"golang.org/x/image/draw"
)

// An Animation is one playable animated image: an ordered frame sequence
// and the clock that advances through it. Instances are independent; a
// host animating several at once may advance them in any order within a
// tick.
type Animation struct {
	frames *Frames
	clock  *Clock
}

// New creates an Animation from decoded frames. loops is the number of
// completed loops to play before ending; Unlimited plays forever.
func New(frames []Frame, loops int) (*Animation, error) {
	fs, err := NewFrames(frames)
	if err != nil {
		return nil, err
	}
	a := new(Animation)
	a.frames = fs
	a.clock = NewClock(fs, loops)
	return a, nil
}

// Frames returns the animation's frame store.
func (a *Animation) Frames() *Frames { return a.frames }

// Advance moves playback to time now and returns the frame due for
// display. The returned frame is ready to blit.
func (a *Animation) Advance(now time.Time) Frame {
	return a.frames.frames[a.clock.Advance(now)]
}

// Index returns the index of the frame currently due for display.
func (a *Animation) Index() int { return a.clock.Index() }

// Paused reports whether the host has paused playback.
func (a *Animation) Paused() bool { return a.clock.Paused() }

// Ended reports whether playback has exceeded its loop limit.
func (a *Animation) Ended() bool { return a.clock.Ended() }

// Loops returns the number of completed loops so far.
func (a *Animation) Loops() int { return a.clock.Loops() }

// Pause freezes playback at time now.
func (a *Animation) Pause(now time.Time) { a.clock.Pause(now) }

// Resume restarts paused or ended playback at time now, preserving the
// time remaining in the current frame from when playback stopped.
func (a *Animation) Resume(now time.Time) { a.clock.Resume(now) }

// Reset restarts playback from frame zero. With full set, frame data
// modified since load (images, durations, alphas) is also restored to the
// load-time sequence.
func (a *Animation) Reset(full bool) {
	if full {
		a.frames.Restore()
	}
	a.clock.Reset()
}

// Bounds returns the bounds of the first frame.
func (a *Animation) Bounds() image.Rectangle {
	return a.frames.frames[0].Image.Bounds()
}

// Width returns the width of the first frame.
func (a *Animation) Width() int { return a.Bounds().Dx() }

// Height returns the height of the first frame.
func (a *Animation) Height() int { return a.Bounds().Dy() }

// Size returns the width and height of the first frame.
func (a *Animation) Size() (w, h int) {
	b := a.Bounds()
	return b.Dx(), b.Dy()
}

// Copy returns an animation with the same frames and loop limit but fresh
// playback state. Frame images are deep-copied so transforms applied to
// the copy do not touch the original.
func (a *Animation) Copy() *Animation {
	frames := make([]Frame, len(a.frames.frames))
	for i, f := range a.frames.frames {
		frames[i] = Frame{Image: cloneImage(f.Image), Duration: f.Duration, Alpha: f.Alpha}
	}
	cp, _ := New(frames, a.clock.loopLimit)
	return cp
}

// cloneImage copies src into a new RGBA image.
func cloneImage(src image.Image) image.Image {
	dst := image.NewRGBA(src.Bounds())
	draw.Copy(dst, src.Bounds().Min, src, src.Bounds(), draw.Src, nil)
	return dst
}
