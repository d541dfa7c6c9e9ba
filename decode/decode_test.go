package decode

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/kettek/apng"

	"github.com/matt-g-everett/gifplay/anim"
)

var testPalette = color.Palette{
	color.RGBA{A: 0x00},
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
}

// palettedFrame fills rect with the palette colour at index ci.
func palettedFrame(rect image.Rectangle, ci uint8) *image.Paletted {
	p := image.NewPaletted(rect, testPalette)
	for i := range p.Pix {
		p.Pix[i] = ci
	}
	return p
}

func encodeGIF(t *testing.T, g *gif.GIF) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encoding test GIF: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestDecodeGIFDurations(t *testing.T) {
	r := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{
			palettedFrame(image.Rect(0, 0, 4, 4), 1),
			palettedFrame(image.Rect(0, 0, 4, 4), 2),
		},
		// 100ths of a second; zero means the file carries no timing.
		Delay: []int{50, 0},
	})

	a, err := Decode(r, anim.Unlimited)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := a.Frames().Len(); got != 2 {
		t.Fatalf("frame count: got %d, want 2", got)
	}
	durs, _ := a.Frames().Durations()
	want := []time.Duration{500 * time.Millisecond, time.Second}
	if diff := cmp.Diff(want, durs); diff != "" {
		t.Errorf("unexpected durations (-want +got):\n%s", diff)
	}
}

func TestDecodeGIFCompositesFrames(t *testing.T) {
	// Frame 1 covers the full canvas in red; frame 2 only paints one
	// pixel blue. With no disposal between them the decoded second
	// frame must still show red outside the painted region.
	r := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{
			palettedFrame(image.Rect(0, 0, 4, 4), 1),
			palettedFrame(image.Rect(0, 0, 1, 1), 2),
		},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalNone},
	})

	a, err := Decode(r, anim.Unlimited)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	imgs, _ := a.Frames().Images(1)
	second := imgs[0]

	if got := color.RGBAModel.Convert(second.At(0, 0)); got != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("painted pixel: got %v, want blue", got)
	}
	if got := color.RGBAModel.Convert(second.At(3, 3)); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("unpainted pixel: got %v, want red carried over from frame 1", got)
	}
}

func rgbaFrame(rect image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeAPNGDurations(t *testing.T) {
	var buf bytes.Buffer
	err := apng.Encode(&buf, apng.APNG{
		Frames: []apng.Frame{
			{
				Image:            rgbaFrame(image.Rect(0, 0, 4, 4), color.RGBA{R: 0xff, A: 0xff}),
				DelayNumerator:   1,
				DelayDenominator: 2,
			},
			{
				Image: rgbaFrame(image.Rect(0, 0, 4, 4), color.RGBA{B: 0xff, A: 0xff}),
				// No timing metadata in the source.
				DelayNumerator: 0,
			},
		},
	})
	if err != nil {
		t.Fatalf("encoding test APNG: %v", err)
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()), anim.Unlimited)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := a.Frames().Len(); got != 2 {
		t.Fatalf("frame count: got %d, want 2", got)
	}
	durs, _ := a.Frames().Durations()
	want := []time.Duration{500 * time.Millisecond, time.Second}
	if diff := cmp.Diff(want, durs); diff != "" {
		t.Errorf("unexpected durations (-want +got):\n%s", diff)
	}
	if got := a.Bounds(); got != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds: got %v, want 4x4", got)
	}
}

func TestDecodePlainPNG(t *testing.T) {
	// A non-animated PNG has only a default image; it must play as a
	// single frame with the default duration.
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgbaFrame(image.Rect(0, 0, 4, 4), color.RGBA{R: 0xff, A: 0xff})); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()), anim.Unlimited)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := a.Frames().Len(); got != 1 {
		t.Fatalf("frame count: got %d, want 1", got)
	}
	durs, _ := a.Frames().Durations()
	if durs[0] != time.Second {
		t.Errorf("duration: got %v, want 1s", durs[0])
	}
	imgs, _ := a.Frames().Images(0)
	if got := color.RGBAModel.Convert(imgs[0].At(2, 2)); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("pixel: got %v, want red", got)
	}
}

func TestDecodeUnrecognisedFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"), anim.Unlimited)
	if err == nil {
		t.Fatal("decoding junk succeeded")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/no-such-file.gif", anim.Unlimited)
	if err == nil {
		t.Fatal("opening a missing file succeeded")
	}
}

func TestGIFDelayDefaults(t *testing.T) {
	tests := []struct {
		name  string
		delay []int
		want  time.Duration
	}{
		{name: "absent", delay: nil, want: time.Second},
		{name: "zero", delay: []int{0}, want: time.Second},
		{name: "negative", delay: []int{-3}, want: time.Second},
		{name: "present", delay: []int{7}, want: 70 * time.Millisecond},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := gifDelay(test.delay, 0); got != test.want {
				t.Errorf("gifDelay(%v): got %v, want %v", test.delay, got, test.want)
			}
		})
	}
}

func TestAPNGDelayDefaults(t *testing.T) {
	tests := []struct {
		name     string
		num, den uint16
		want     time.Duration
	}{
		{name: "no numerator", num: 0, den: 10, want: time.Second},
		{name: "zero denominator is hundredths", num: 50, den: 0, want: 500 * time.Millisecond},
		{name: "fraction", num: 1, den: 4, want: 250 * time.Millisecond},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := apng.Frame{DelayNumerator: test.num, DelayDenominator: test.den}
			if got := apngDelay(f); got != test.want {
				t.Errorf("apngDelay(%d/%d): got %v, want %v", test.num, test.den, got, test.want)
			}
		})
	}
}
