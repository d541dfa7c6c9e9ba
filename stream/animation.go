package stream

import (
	"image"
	"time"
)

// A Source produces the image that should be on the display at a given
// time. The streamer calls it once per tick with the tick time.
type Source interface {
	Frame(now time.Time) image.Image
}
