package util

import (
	"github.com/fogleman/ease"
)

// EaseLut precomputes an eased ramp over [0, 1] with the given number of
// steps so per-pixel transition code can look the curve up instead of
// evaluating it.
func EaseLut(length int) []float64 {
	lut := make([]float64, length)
	for i := range lut {
		lut[i] = ease.InOutQuad(float64(i) / float64(length-1))
	}
	return lut
}
