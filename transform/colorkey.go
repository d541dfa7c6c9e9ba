package transform

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/gifplay/anim"
)

// Colorkey makes pixels of the selected frames transparent when their
// colour lies within tolerance of key, measured as CIE76 distance in Lab
// space. Zero keys only exact matches; larger tolerances key increasingly
// distant colours, with extreme pairs sitting a little beyond 1. Pixels
// that are already fully transparent are left alone.
func Colorkey(f *anim.Frames, key color.Color, tolerance float64, indices ...int) ([]anim.Skipped, error) {
	k := color.NRGBAModel.Convert(key).(color.NRGBA)
	k.A = 0xff // the key is a colour, not a coverage
	want, _ := colorful.MakeColor(k)
	return apply(f, indices, func(img image.Image) image.Image {
		b := img.Bounds()
		out := image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				if c.A != 0 {
					got, ok := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
					if ok && got.DistanceCIE76(want) <= tolerance {
						c.A = 0
					}
				}
				out.SetNRGBA(x, y, c)
			}
		}
		return out
	})
}
