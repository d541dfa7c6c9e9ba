package decode

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/draw"

	"github.com/matt-g-everett/gifplay/anim"
)

// defaultDuration is used for frames whose source carries no usable
// timing metadata.
const defaultDuration = time.Second

// decodeGIF decodes every frame of a GIF and composites each onto a
// persistent canvas, honouring the frame disposal methods, so the
// resulting frames are full renderable images.
func decodeGIF(r io.Reader) ([]anim.Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if g.Delay != nil && len(g.Image) != len(g.Delay) {
		return nil, fmt.Errorf("gif: mismatched image count and delay count: %d != %d", len(g.Image), len(g.Delay))
	}
	if g.Disposal != nil && len(g.Image) != len(g.Disposal) {
		return nil, fmt.Errorf("gif: mismatched image count and disposal count: %d != %d", len(g.Image), len(g.Disposal))
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]anim.Frame, 0, len(g.Image))
	for i, src := range g.Image {
		var restore *image.RGBA
		if g.Disposal != nil && g.Disposal[i] == gif.DisposalPrevious {
			restore = image.NewRGBA(src.Bounds())
			draw.Copy(restore, src.Bounds().Min, canvas, src.Bounds(), draw.Src, nil)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, anim.Frame{
			Image:    snapshot(canvas),
			Duration: gifDelay(g.Delay, i),
			Alpha:    0xff,
		})

		if g.Disposal == nil {
			continue
		}
		switch g.Disposal[i] {
		case gif.DisposalBackground:
			clearRect(canvas, src.Bounds())
		case gif.DisposalPrevious:
			draw.Copy(canvas, restore.Bounds().Min, restore, restore.Bounds(), draw.Src, nil)
		}
	}
	return frames, nil
}

// gifDelay converts a GIF delay (100ths of a second) to a duration,
// substituting the default for absent or non-positive delays.
func gifDelay(delay []int, i int) time.Duration {
	if delay == nil || delay[i] <= 0 {
		return defaultDuration
	}
	return time.Duration(delay[i]) * 10 * time.Millisecond
}

// snapshot copies the canvas so later compositing does not mutate frames
// already emitted.
func snapshot(canvas *image.RGBA) image.Image {
	out := image.NewRGBA(canvas.Bounds())
	copy(out.Pix, canvas.Pix)
	return out
}

// clearRect resets a region of the canvas to transparent.
func clearRect(canvas *image.RGBA, r image.Rectangle) {
	draw.Draw(canvas, r, image.Transparent, image.Point{}, draw.Src)
}
