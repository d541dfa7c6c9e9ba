// Package decode loads multi-frame image files (GIF, APNG) into playable
// animations. Partial frames are composited onto a full canvas at load
// time, so every frame handed to the player is a complete image.
package decode

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/gifplay/anim"
)

// readPeeker is an io.Reader that can also peek n bytes ahead.
type readPeeker interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// asReadPeeker converts an io.Reader to a readPeeker.
func asReadPeeker(r io.Reader) readPeeker {
	if r, ok := r.(readPeeker); ok {
		return r
	}
	return bufio.NewReader(r)
}

// hasMagic returns whether r starts with the provided magic bytes. A '?'
// in magic matches any byte.
func hasMagic(magic string, r readPeeker) bool {
	b, err := r.Peek(len(magic))
	if err != nil || len(b) != len(magic) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

const pngMagic = "\x89PNG\r\n\x1a\n"

// Open loads the animated image file at path. loops is the number of
// completed loops to play before the animation ends; anim.Unlimited plays
// forever.
func Open(path string, loops int) (*anim.Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := Decode(f, loops)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return a, nil
}

// Decode loads an animated image from r, detecting the format from its
// magic bytes. GIF and APNG are supported.
func Decode(r io.Reader, loops int) (*anim.Animation, error) {
	rp := asReadPeeker(r)
	var (
		frames []anim.Frame
		err    error
	)
	switch {
	case hasMagic("GIF8?a", rp):
		frames, err = decodeGIF(rp)
	case hasMagic(pngMagic, rp):
		frames, err = decodeAPNG(rp)
	default:
		return nil, fmt.Errorf("decode: unrecognised image format")
	}
	if err != nil {
		return nil, err
	}
	return anim.New(frames, loops)
}
