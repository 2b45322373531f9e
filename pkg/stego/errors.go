package stego

import (
	"errors"

	"github.com/Beastly713/pixelstash/pkg/frame"
)

// ErrCapacityExceeded indicates the carrier is too small to hold the payload.
// It is always reported before any pixel is modified.
var ErrCapacityExceeded = errors.New("payload too large for carrier")

// ErrInvalidLength indicates a decoded length header outside the sane range,
// which usually means the carrier holds no data for this mode.
var ErrInvalidLength = frame.ErrInvalidLength

// ErrDecodeFailed indicates recovered bytes that do not form the expected
// text or envelope.
var ErrDecodeFailed = errors.New("could not decode recovered data")

// ErrRetryBudgetExhausted indicates a pixel that could not be made to carry
// its bits within the attempt ceiling.
var ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

// ErrCryptoFailure indicates a key derivation or cipher failure, including a
// wrong password.
var ErrCryptoFailure = errors.New("crypto failure")

// ErrInvalidConfig indicates strategy parameters out of range.
var ErrInvalidConfig = errors.New("invalid strategy config")

// ErrInvalidPixels indicates a pixel buffer that is not whole RGBA pixels.
var ErrInvalidPixels = errors.New("pixel buffer is not RGBA")
