package stream

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// MarshalFrame converts an image into the wire format consumed by the
// display device: little-endian uint16 width and height, then RGB
// triplets in row-major order. Transparent pixels are sent as black.
func MarshalFrame(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, 4, w*h*3+4)
	binary.LittleEndian.PutUint16(data, uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b uint8
			if p, ok := colorful.MakeColor(img.At(x, y)); ok {
				r, g, b = p.Clamped().RGB255()
			}
			data = append(data, r, g, b)
		}
	}
	return data
}

// interpolateFrames merges two equally sized frames, blending each pixel
// pair in HCL space at the given transition point.
func interpolateFrames(a, b image.Image, transitionPoint float64) image.Image {
	bounds := a.Bounds()
	out := image.NewRGBA(bounds)
	offset := b.Bounds().Min.Sub(bounds.Min)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p1 := pixel(a.At(x, y))
			p2 := pixel(b.At(x+offset.X, y+offset.Y))
			out.Set(x, y, p1.BlendHcl(p2, transitionPoint).Clamped())
		}
	}
	return out
}

// pixel converts a colour for blending. Fully transparent pixels
// contribute black.
func pixel(c color.Color) colorful.Color {
	if p, ok := colorful.MakeColor(c); ok {
		return p
	}
	return colorful.Color{}
}

// applyAlpha scales an image by a per-frame opacity, leaving alpha 255
// images untouched.
func applyAlpha(img image.Image, alpha uint8) image.Image {
	if alpha == 0xff {
		return img
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(out, bounds, img, bounds.Min, mask, image.Point{}, draw.Src)
	return out
}
