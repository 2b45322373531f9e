package stego

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLSBHelloOnSmallCarrier(t *testing.T) {
	pix := carrier(10, 10, 4)
	s := mustNew(t, Config{Mode: ModeLSB, Rand: fixedRand(4)})

	require.NoError(t, s.Embed(pix, []byte("hi")))
	got, err := s.Extract(pix)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestLSBEveryRate(t *testing.T) {
	payload := []byte{0x00, 0xFF, 0xA5, 0x5A, 0x01, 0x80, 0x7E}
	for bits := 1; bits <= 8; bits++ {
		pix := carrier(12, 12, int64(bits))
		s := mustNew(t, Config{Mode: ModeLSB, BitsPerChannel: bits, Rand: fixedRand(int64(bits))})

		require.NoError(t, s.Embed(pix, payload), "bits %d", bits)
		got, err := s.Extract(pix)
		require.NoError(t, err, "bits %d", bits)
		assert.Equal(t, payload, got, "bits %d", bits)
	}
}

func TestLSBExactCapacity(t *testing.T) {
	// 8x8 at one bit per channel: 192 bits, 40 taken by the header.
	s := mustNew(t, Config{Mode: ModeLSB, Rand: fixedRand(5)})

	fits := bytes.Repeat([]byte{0xC3}, 19)
	pix := carrier(8, 8, 5)
	require.NoError(t, s.Embed(pix, fits))
	got, err := s.Extract(pix)
	require.NoError(t, err)
	assert.Equal(t, fits, got)

	pix = carrier(8, 8, 5)
	before := append([]byte(nil), pix...)
	err = s.Embed(pix, bytes.Repeat([]byte{0xC3}, 20))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, before, pix)
}

func TestLSBEmptyPayload(t *testing.T) {
	pix := carrier(4, 4, 6)
	s := mustNew(t, Config{Mode: ModeLSB, Rand: fixedRand(6)})

	require.NoError(t, s.Embed(pix, nil))
	got, err := s.Extract(pix)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLSBSpreadsShortPayload(t *testing.T) {
	pix := carrier(100, 100, 7)
	before := append([]byte(nil), pix...)
	s := mustNew(t, Config{Mode: ModeLSB, Rand: fixedRand(7)})

	require.NoError(t, s.Embed(pix, bytes.Repeat([]byte("spread"), 10)))

	half := len(pix) / 2
	assert.NotEqual(t, before[half:], pix[half:], "payload was packed at the start of the carrier")
}

func TestLSBChangesOnlyLowBits(t *testing.T) {
	pix := carrier(16, 16, 8)
	before := append([]byte(nil), pix...)
	s := mustNew(t, Config{Mode: ModeLSB, BitsPerChannel: 2, Rand: fixedRand(8)})

	require.NoError(t, s.Embed(pix, []byte("low bits only")))
	for i := range pix {
		assert.Equal(t, before[i]&^0x03, pix[i]&^0x03, "byte %d", i)
	}
}

func TestLSBUnembeddedCarrier(t *testing.T) {
	pix := bytes.Repeat([]byte{0xFF}, 16*16*4)
	s := mustNew(t, Config{Mode: ModeLSB})

	_, err := s.Extract(pix)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestLSBTooSmallForHeader(t *testing.T) {
	s := mustNew(t, Config{Mode: ModeLSB})

	_, err := s.Extract(make([]byte, 2*4))
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.ErrorIs(t, s.Embed(make([]byte, 2*4), nil), ErrCapacityExceeded)
}

func TestLSBWrongRateDoesNotPanic(t *testing.T) {
	pix := carrier(20, 20, 9)
	require.NoError(t, mustNew(t, Config{Mode: ModeLSB, BitsPerChannel: 3, Rand: fixedRand(9)}).Embed(pix, []byte("x")))

	got, err := mustNew(t, Config{Mode: ModeLSB, BitsPerChannel: 1}).Extract(pix)
	if err == nil {
		assert.NotEqual(t, []byte("x"), got)
	}
}
