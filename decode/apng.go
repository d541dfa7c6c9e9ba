package decode

import (
	"image"
	"io"
	"time"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"

	"github.com/matt-g-everett/gifplay/anim"
)

// decodeAPNG decodes every animation frame of an APNG, compositing frame
// regions onto a persistent canvas according to their dispose and blend
// operations. The default image, when present, is not part of the
// animation and is skipped. A plain PNG decodes to a single one-second
// frame.
func decodeAPNG(r io.Reader) ([]anim.Frame, error) {
	a, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(apngBounds(a))
	frames := make([]anim.Frame, 0, len(a.Frames))
	var def image.Image
	for _, src := range a.Frames {
		if src.IsDefault {
			def = src.Image
			continue
		}
		region := src.Image.Bounds().Add(image.Pt(src.XOffset, src.YOffset))

		var restore *image.RGBA
		if src.DisposeOp == apng.DISPOSE_OP_PREVIOUS {
			restore = image.NewRGBA(region)
			draw.Copy(restore, region.Min, canvas, region, draw.Src, nil)
		}

		op := draw.Over
		if src.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, region, src.Image, src.Image.Bounds().Min, op)
		frames = append(frames, anim.Frame{
			Image:    snapshot(canvas),
			Duration: apngDelay(src),
			Alpha:    0xff,
		})

		switch src.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			clearRect(canvas, region)
		case apng.DISPOSE_OP_PREVIOUS:
			draw.Copy(canvas, restore.Bounds().Min, restore, restore.Bounds(), draw.Src, nil)
		}
	}
	// A plain PNG carries only the default image: play it as a single
	// frame.
	if len(frames) == 0 && def != nil {
		draw.Draw(canvas, def.Bounds(), def, def.Bounds().Min, draw.Src)
		frames = append(frames, anim.Frame{
			Image:    snapshot(canvas),
			Duration: defaultDuration,
			Alpha:    0xff,
		})
	}
	return frames, nil
}

// apngBounds returns the full canvas size of the animation: the bounds of
// the default image when present, otherwise the union of all frame
// regions.
func apngBounds(a apng.APNG) image.Rectangle {
	var b image.Rectangle
	for _, f := range a.Frames {
		if f.IsDefault {
			return f.Image.Bounds()
		}
		b = b.Union(f.Image.Bounds().Add(image.Pt(f.XOffset, f.YOffset)))
	}
	return b
}

// apngDelay converts an APNG frame delay fraction to a duration. A zero
// denominator means hundredths of a second per the APNG specification; a
// zero numerator means the source carries no timing, so the default is
// substituted.
func apngDelay(f apng.Frame) time.Duration {
	if f.DelayNumerator == 0 {
		return defaultDuration
	}
	den := f.DelayDenominator
	if den == 0 {
		den = 100
	}
	return time.Duration(f.DelayNumerator) * time.Second / time.Duration(den)
}
