package transform

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matt-g-everett/gifplay/anim"
)

// solidFrames builds a store with one solid-colour frame per colour.
func solidFrames(t *testing.T, w, h int, colours ...color.RGBA) *anim.Frames {
	t.Helper()
	frames := make([]anim.Frame, len(colours))
	for i, c := range colours {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		frames[i] = anim.Frame{Image: img, Duration: time.Second, Alpha: 0xff}
	}
	f, err := anim.NewFrames(frames)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	return f
}

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func frameAt(t *testing.T, f *anim.Frames, i int) image.Image {
	t.Helper()
	imgs, skipped := f.Images(i)
	if len(skipped) != 0 {
		t.Fatalf("frame %d missing: %v", i, skipped)
	}
	return imgs[0]
}

func TestFlipHorizontal(t *testing.T) {
	f := solidFrames(t, 2, 1, red)
	img := frameAt(t, f, 0).(*image.RGBA)
	img.SetRGBA(1, 0, blue)

	if _, err := Flip(f, true, false); err != nil {
		t.Fatalf("Flip: %v", err)
	}

	got := frameAt(t, f, 0)
	if c := color.RGBAModel.Convert(got.At(0, 0)); c != blue {
		t.Errorf("flipped pixel (0,0): got %v, want blue", c)
	}
	if c := color.RGBAModel.Convert(got.At(1, 0)); c != red {
		t.Errorf("flipped pixel (1,0): got %v, want red", c)
	}
}

func TestScaleBounds(t *testing.T) {
	f := solidFrames(t, 2, 2, red, blue)

	if _, err := Scale(f, 4, 6); err != nil {
		t.Fatalf("Scale: %v", err)
	}
	for i := 0; i < f.Len(); i++ {
		if got := frameAt(t, f, i).Bounds(); got.Dx() != 4 || got.Dy() != 6 {
			t.Errorf("frame %d bounds after scale: got %v, want 4x6", i, got)
		}
	}
}

func TestScaleSelectedFrameOnly(t *testing.T) {
	f := solidFrames(t, 2, 2, red, blue)

	if _, err := Scale(f, 4, 4, 1); err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if got := frameAt(t, f, 0).Bounds().Dx(); got != 2 {
		t.Errorf("unselected frame was scaled: width %d", got)
	}
	if got := frameAt(t, f, 1).Bounds().Dx(); got != 4 {
		t.Errorf("selected frame was not scaled: width %d", got)
	}
}

func TestScaleReportsBadIndices(t *testing.T) {
	f := solidFrames(t, 2, 2, red)

	skipped, err := Scale(f, 4, 4, 0, 7)
	if err != nil {
		t.Fatalf("Scale with one valid index failed: %v", err)
	}
	want := []anim.Skipped{{Pos: 1, Index: 7, Reason: anim.NotFound}}
	if diff := cmp.Diff(want, skipped); diff != "" {
		t.Errorf("unexpected diagnostics (-want +got):\n%s", diff)
	}

	_, err = Scale(f, 4, 4, 7)
	if !errors.Is(err, anim.ErrNoValidUpdates) {
		t.Errorf("Scale with only bad indices: got %v, want ErrNoValidUpdates", err)
	}
}

func TestSmoothscaleByBounds(t *testing.T) {
	f := solidFrames(t, 4, 4, red)

	if _, err := SmoothscaleBy(f, 0.5); err != nil {
		t.Fatalf("SmoothscaleBy: %v", err)
	}
	if got := frameAt(t, f, 0).Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Errorf("bounds after half scale: got %v, want 2x2", got)
	}
}

func TestRotateGrowsBounds(t *testing.T) {
	f := solidFrames(t, 4, 4, red)

	if _, err := Rotate(f, 45); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	// A 45 degree rotation needs a wider canvas to fit the corners.
	if got := frameAt(t, f, 0).Bounds(); got.Dx() <= 4 || got.Dy() <= 4 {
		t.Errorf("bounds did not grow to fit the rotation: got %v", got)
	}
}

func TestGrayscale(t *testing.T) {
	f := solidFrames(t, 2, 2, red)

	if _, err := Grayscale(f); err != nil {
		t.Fatalf("Grayscale: %v", err)
	}
	c := color.RGBAModel.Convert(frameAt(t, f, 0).At(0, 0)).(color.RGBA)
	if c.R != c.G || c.G != c.B {
		t.Errorf("pixel not grayscale: %v", c)
	}
}

func TestInvert(t *testing.T) {
	f := solidFrames(t, 1, 1, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff})

	if _, err := Invert(f); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	c := color.RGBAModel.Convert(frameAt(t, f, 0).At(0, 0)).(color.RGBA)
	if c.R != 0x00 || c.B != 0xff {
		t.Errorf("pixel not inverted: %v", c)
	}
}

func TestColorkey(t *testing.T) {
	f := solidFrames(t, 2, 1, red)
	img := frameAt(t, f, 0).(*image.RGBA)
	img.SetRGBA(1, 0, blue)

	if _, err := Colorkey(f, blue, 0); err != nil {
		t.Fatalf("Colorkey: %v", err)
	}

	got := frameAt(t, f, 0)
	if _, _, _, a := got.At(1, 0).RGBA(); a != 0 {
		t.Errorf("keyed pixel still opaque: alpha %d", a)
	}
	if _, _, _, a := got.At(0, 0).RGBA(); a == 0 {
		t.Error("unkeyed pixel became transparent")
	}
}
