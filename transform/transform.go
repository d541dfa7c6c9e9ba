// Package transform applies pixel transforms to selected frames of an
// animation. The pixel work itself is delegated to external imaging
// libraries; this package only selects frames, applies the operation and
// writes the results back through the frame store, so the store's
// skip/duplicate diagnostics govern partial application and a full reset
// undoes any transform.
package transform

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	bildtransform "github.com/anthonynsimon/bild/transform"
	"github.com/nfnt/resize"

	"github.com/matt-g-everett/gifplay/anim"
)

// apply runs op over the frames at the given indices (all frames when
// none are given) and stores the results. Indices outside the store are
// reported by the returned diagnostics, matching the store's batch
// semantics.
func apply(f *anim.Frames, indices []int, op func(image.Image) image.Image) ([]anim.Skipped, error) {
	if len(indices) == 0 {
		indices = make([]int, f.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	updates := make([]anim.ImageUpdate, len(indices))
	for pos, i := range indices {
		updates[pos] = anim.ImageUpdate{Index: i}
		if i < 0 || i >= f.Len() {
			continue // reported by SetImages
		}
		imgs, _ := f.Images(i)
		updates[pos].Image = op(imgs[0])
	}
	return f.SetImages(updates)
}

// Flip mirrors the selected frames horizontally and/or vertically.
func Flip(f *anim.Frames, flipX, flipY bool, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		if flipX {
			img = bildtransform.FlipH(img)
		}
		if flipY {
			img = bildtransform.FlipV(img)
		}
		return img
	})
}

// Scale resizes the selected frames to w×h with nearest-neighbour
// sampling.
func Scale(f *anim.Frames, w, h int, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return bildtransform.Resize(img, w, h, bildtransform.NearestNeighbor)
	})
}

// ScaleBy resizes the selected frames by a factor of their own size with
// nearest-neighbour sampling.
func ScaleBy(f *anim.Frames, factor float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		b := img.Bounds()
		return bildtransform.Resize(img, scaled(b.Dx(), factor), scaled(b.Dy(), factor), bildtransform.NearestNeighbor)
	})
}

// Scale2x doubles the selected frames.
func Scale2x(f *anim.Frames, indices ...int) ([]anim.Skipped, error) {
	return ScaleBy(f, 2, indices...)
}

// Smoothscale resizes the selected frames to w×h with filtered sampling.
func Smoothscale(f *anim.Frames, w, h int, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
	})
}

// SmoothscaleBy resizes the selected frames by a factor of their own size
// with filtered sampling.
func SmoothscaleBy(f *anim.Frames, factor float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		b := img.Bounds()
		return resize.Resize(uint(scaled(b.Dx(), factor)), uint(scaled(b.Dy(), factor)), img, resize.Lanczos3)
	})
}

// Rotate rotates the selected frames counter-clockwise by angle degrees,
// growing the frame bounds to fit.
func Rotate(f *anim.Frames, angle float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return bildtransform.Rotate(img, angle, &bildtransform.RotationOptions{ResizeBounds: true})
	})
}

// Rotozoom rotates the selected frames by angle degrees and scales them
// by factor with filtered sampling.
func Rotozoom(f *anim.Frames, angle, factor float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		rotated := bildtransform.Rotate(img, angle, &bildtransform.RotationOptions{ResizeBounds: true})
		b := rotated.Bounds()
		return resize.Resize(uint(scaled(b.Dx(), factor)), uint(scaled(b.Dy(), factor)), rotated, resize.Lanczos3)
	})
}

// BoxBlur blurs the selected frames with a box kernel of the given
// radius.
func BoxBlur(f *anim.Frames, radius float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return blur.Box(img, radius)
	})
}

// GaussianBlur blurs the selected frames with a gaussian kernel of the
// given radius.
func GaussianBlur(f *anim.Frames, radius float64, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return blur.Gaussian(img, radius)
	})
}

// Grayscale converts the selected frames to grayscale.
func Grayscale(f *anim.Frames, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return effect.Grayscale(img)
	})
}

// Invert inverts the colours of the selected frames.
func Invert(f *anim.Frames, indices ...int) ([]anim.Skipped, error) {
	return apply(f, indices, func(img image.Image) image.Image {
		return effect.Invert(img)
	})
}

// scaled multiplies a dimension by factor, keeping at least one pixel.
func scaled(d int, factor float64) int {
	n := int(float64(d) * factor)
	if n < 1 {
		n = 1
	}
	return n
}
