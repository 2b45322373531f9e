// Package quality measures how visible an embedding is.
package quality

import (
	"errors"
	"math"
)

// ErrSizeMismatch indicates buffers of different lengths.
var ErrSizeMismatch = errors.New("pixel buffers differ in size")

// MSE returns the mean squared error over the R, G and B bytes of two RGBA
// buffers. Alpha is ignored.
func MSE(a, b []byte) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrSizeMismatch
	}
	pixels := len(a) / 4
	if pixels == 0 {
		return 0, nil
	}

	var sum float64
	for i := 0; i < pixels*4; i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(a[i+c]) - float64(b[i+c])
			sum += d * d
		}
	}
	return sum / float64(pixels*3), nil
}

// PSNR returns the peak signal-to-noise ratio in dB, +Inf when a and b match.
func PSNR(a, b []byte) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(255/math.Sqrt(mse)), nil
}
