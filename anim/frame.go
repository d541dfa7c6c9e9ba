package anim

import (
	"image"
	"time"
)

// A Frame is one decoded still image together with the time it stays on
// screen before the player moves to the next frame.
type Frame struct {
	// Image is the decoded frame. The package never inspects pixels; it
	// only hands the value back to the host for blitting.
	Image image.Image

	// Duration is how long the frame is displayed. Decoders substitute
	// one second when the source file carries no timing metadata.
	Duration time.Duration

	// Alpha is the per-frame opacity, 255 on load. Hosts apply it at
	// blit time.
	Alpha uint8
}

// An ImageUpdate replaces the image of the frame at Index.
type ImageUpdate struct {
	Image image.Image
	Index int
}

// A DurationUpdate replaces the duration of the frame at Index.
type DurationUpdate struct {
	Duration time.Duration
	Index    int
}

// An AlphaUpdate replaces the opacity of the frame at Index.
type AlphaUpdate struct {
	Alpha uint8
	Index int
}

// A FrameUpdate replaces both the image and the duration of the frame at
// Index. The frame's alpha is left as it was.
type FrameUpdate struct {
	Image    image.Image
	Duration time.Duration
	Index    int
}

// Reason classifies why a batch entry was skipped.
type Reason int

const (
	// NotFound marks an entry whose index is outside the store.
	NotFound Reason = iota
	// Duplicate marks an entry whose index was already applied earlier
	// in the same call.
	Duplicate
)

// String returns a human readable form of the reason.
func (r Reason) String() string {
	switch r {
	case NotFound:
		return "not found"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// A Skipped records one entry of a batch call that was not applied. It is
// a warning, not an error; the call it belongs to has still succeeded for
// its other entries.
type Skipped struct {
	// Pos is the entry's position in the call's argument list.
	Pos int
	// Index is the frame index the entry addressed.
	Index int
	// Reason says why the entry was skipped.
	Reason Reason
}
