package anim

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrNoFrames is returned when a store is created from an empty sequence.
var ErrNoFrames = errors.New("anim: animation has no frames")

// ErrNoValidUpdates is returned by batch mutators when every entry in the
// batch was skipped.
var ErrNoValidUpdates = errors.New("anim: no valid updates in batch")

// ErrFrameRange is returned when a single-frame selection addresses an
// index outside the store.
var ErrFrameRange = errors.New("anim: frame index out of range")

// Frames is the ordered frame sequence of one animation. It is populated
// once at load time and addressed by index afterwards. A Frames value is
// owned by a single animation instance and is not safe for concurrent
// mutation.
type Frames struct {
	frames []Frame
	orig   []Frame
}

// NewFrames creates a store from the decoded frame sequence. The original
// sequence is retained so a full reset can restore load-time data.
func NewFrames(frames []Frame) (*Frames, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	f := new(Frames)
	f.frames = make([]Frame, len(frames))
	copy(f.frames, frames)
	f.orig = make([]Frame, len(frames))
	copy(f.orig, frames)
	return f, nil
}

// Len returns the number of frames in the store.
func (f *Frames) Len() int {
	return len(f.frames)
}

// Duration returns the display duration of frame i. The index must be
// valid; the playback clock maintains that invariant itself, so a bad
// index here is a programming error and panics.
func (f *Frames) Duration(i int) time.Duration {
	return f.frames[i].Duration
}

// Restore reinstates the frame sequence captured at load time, discarding
// any images, durations or alphas set since.
func (f *Frames) Restore() {
	f.frames = make([]Frame, len(f.orig))
	copy(f.frames, f.orig)
}

// selectFrames resolves an index list against the store. With no indices
// it returns every frame in order. Out-of-range indices are skipped and
// reported; they are warnings, not errors.
func (f *Frames) selectFrames(indices []int) ([]Frame, []Skipped) {
	if len(indices) == 0 {
		out := make([]Frame, len(f.frames))
		copy(out, f.frames)
		return out, nil
	}
	var (
		out     []Frame
		skipped []Skipped
	)
	for pos, i := range indices {
		if i < 0 || i >= len(f.frames) {
			skipped = append(skipped, Skipped{Pos: pos, Index: i, Reason: NotFound})
			continue
		}
		out = append(out, f.frames[i])
	}
	return out, skipped
}

// Select returns the frames at the given indices, in the order the indices
// were given, or every frame when no indices are given.
func (f *Frames) Select(indices ...int) ([]Frame, []Skipped) {
	return f.selectFrames(indices)
}

// Images returns the images of the selected frames.
func (f *Frames) Images(indices ...int) ([]image.Image, []Skipped) {
	frames, skipped := f.selectFrames(indices)
	imgs := make([]image.Image, len(frames))
	for i, fr := range frames {
		imgs[i] = fr.Image
	}
	return imgs, skipped
}

// Durations returns the durations of the selected frames.
func (f *Frames) Durations(indices ...int) ([]time.Duration, []Skipped) {
	frames, skipped := f.selectFrames(indices)
	durs := make([]time.Duration, len(frames))
	for i, fr := range frames {
		durs[i] = fr.Duration
	}
	return durs, skipped
}

// Alphas returns the per-frame opacities of the selected frames.
func (f *Frames) Alphas(indices ...int) ([]uint8, []Skipped) {
	frames, skipped := f.selectFrames(indices)
	alphas := make([]uint8, len(frames))
	for i, fr := range frames {
		alphas[i] = fr.Alpha
	}
	return alphas, skipped
}

// apply runs a batch of index-addressed updates. Entries addressing an
// index outside the store are skipped as NotFound; entries repeating an
// index already applied in the same call are skipped as Duplicate, so the
// first occurrence wins. The call fails only when nothing was applied.
func (f *Frames) apply(n int, index func(int) int, set func(int)) ([]Skipped, error) {
	applied := make(map[int]bool)
	var skipped []Skipped
	for pos := 0; pos < n; pos++ {
		i := index(pos)
		if i < 0 || i >= len(f.frames) {
			skipped = append(skipped, Skipped{Pos: pos, Index: i, Reason: NotFound})
			continue
		}
		if applied[i] {
			skipped = append(skipped, Skipped{Pos: pos, Index: i, Reason: Duplicate})
			continue
		}
		set(pos)
		applied[i] = true
	}
	if len(applied) == 0 {
		return skipped, fmt.Errorf("%w: %d entries skipped", ErrNoValidUpdates, len(skipped))
	}
	return skipped, nil
}

// SetImages replaces frame images by index.
func (f *Frames) SetImages(updates []ImageUpdate) ([]Skipped, error) {
	return f.apply(len(updates),
		func(pos int) int { return updates[pos].Index },
		func(pos int) { f.frames[updates[pos].Index].Image = updates[pos].Image })
}

// SetDurations replaces frame durations by index.
func (f *Frames) SetDurations(updates []DurationUpdate) ([]Skipped, error) {
	return f.apply(len(updates),
		func(pos int) int { return updates[pos].Index },
		func(pos int) { f.frames[updates[pos].Index].Duration = updates[pos].Duration })
}

// SetAlphas replaces frame opacities by index.
func (f *Frames) SetAlphas(updates []AlphaUpdate) ([]Skipped, error) {
	return f.apply(len(updates),
		func(pos int) int { return updates[pos].Index },
		func(pos int) { f.frames[updates[pos].Index].Alpha = updates[pos].Alpha })
}

// SetFrames replaces frame images and durations by index. The frames'
// alphas are left unchanged.
func (f *Frames) SetFrames(updates []FrameUpdate) ([]Skipped, error) {
	return f.apply(len(updates),
		func(pos int) int { return updates[pos].Index },
		func(pos int) {
			u := updates[pos]
			f.frames[u.Index].Image = u.Image
			f.frames[u.Index].Duration = u.Duration
		})
}

// Range returns a sub-sequence of the store. When sel is non-nil it is the
// single frame at *sel, and first and last are ignored. Otherwise first
// and last bound a half-open slice, each defaulting to its end of the
// sequence when nil. One inherited oddity is kept for compatibility: when
// both bounds are given with last < first and first == 0, the whole
// sequence is returned instead of an empty one.
func (f *Frames) Range(sel, first, last *int) ([]Frame, error) {
	n := len(f.frames)
	switch {
	case sel != nil:
		if *sel < 0 || *sel >= n {
			return nil, fmt.Errorf("%w: %d", ErrFrameRange, *sel)
		}
		return []Frame{f.frames[*sel]}, nil
	case first != nil && last != nil:
		if *last < *first && *first == 0 {
			return f.slice(0, n), nil
		}
		return f.slice(*first, *last), nil
	case first != nil:
		return f.slice(*first, n), nil
	case last != nil:
		return f.slice(0, *last), nil
	default:
		return f.slice(0, n), nil
	}
}

// slice copies frames[lo:hi] with both bounds clamped to the store, so
// out-of-range bounds narrow the result rather than panic.
func (f *Frames) slice(lo, hi int) []Frame {
	n := len(f.frames)
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return nil
	}
	out := make([]Frame, hi-lo)
	copy(out, f.frames[lo:hi])
	return out
}
