package stego

import (
	"fmt"
	"io"

	"github.com/Beastly713/pixelstash/pkg/bitstream"
	"github.com/Beastly713/pixelstash/pkg/frame"
	"github.com/Beastly713/pixelstash/pkg/skipper"
)

// BasicLSB stores bits in the low bits of every R, G and B byte.
//
// Layout: a frame header (length + skipper seed) packed into the first
// channels, then the payload spread over the rest of the carrier by a
// skipper seeded from the header.
type BasicLSB struct {
	bits int
	rand io.Reader
}

func (s *BasicLSB) Mode() Mode { return ModeLSB }

// BitsPerChannel returns the configured rate.
func (s *BasicLSB) BitsPerChannel() int { return s.bits }

func (s *BasicLSB) Capacity(width, height int) int {
	return width * height * 3 * s.bits
}

// layout returns the header units, content units and total units of a carrier.
func (s *BasicLSB) layout(pixels, length int) (header, content, total int) {
	header = ceilDiv(frame.HeaderSize(true)*8, s.bits)
	content = ceilDiv(length*8, s.bits)
	total = pixels * 3
	return header, content, total
}

func (s *BasicLSB) Embed(pix []byte, payload []byte) error {
	pixels, err := pixelCount(pix)
	if err != nil {
		return err
	}
	if len(payload) > frame.MaxPayload {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrCapacityExceeded, len(payload), frame.MaxPayload)
	}

	header, content, total := s.layout(pixels, len(payload))
	if header+content > total {
		return fmt.Errorf("%w: need %d bits, have %d", ErrCapacityExceeded, (header+content)*s.bits, total*s.bits)
	}

	seed, err := readRandom(s.rand, 1)
	if err != nil {
		return err
	}

	w := newChannelWriter(pix, []int{s.bits})
	frame.Encode(w, frame.Header{Length: uint32(len(payload)), Seed: seed[0], HasSeed: true})
	w.Align()

	skip := skipper.New(seed[0], content, total-header)
	src := bitstream.NewReader(payload, false)
	for !src.IsOver() && !w.IsOver() {
		if skip.ShouldSkip() {
			w.SkipSlot()
			continue
		}
		for i := 0; i < s.bits; i++ {
			w.PutBit(src.NextBit())
		}
	}
	return nil
}

func (s *BasicLSB) Extract(pix []byte) ([]byte, error) {
	pixels, err := pixelCount(pix)
	if err != nil {
		return nil, err
	}

	header, _, total := s.layout(pixels, 0)
	if header > total {
		return nil, fmt.Errorf("%w: carrier too small for a frame header", ErrInvalidLength)
	}

	r := newChannelReader(pix, []int{s.bits})
	h, err := frame.Decode(r, true)
	if err != nil {
		return nil, err
	}
	r.Align()

	_, content, _ := s.layout(pixels, int(h.Length))
	if header+content > total {
		return nil, fmt.Errorf("%w: %d bytes do not fit the carrier", ErrInvalidLength, h.Length)
	}

	out := make([]byte, h.Length)
	dst := bitstream.NewWriter(out, false)
	skip := skipper.New(h.Seed, content, total-header)
	for !dst.IsOver() && !r.IsOver() {
		if skip.ShouldSkip() {
			r.SkipSlot()
			continue
		}
		for i := 0; i < s.bits; i++ {
			dst.PutBit(r.NextBit())
		}
	}
	if !dst.IsOver() {
		return nil, fmt.Errorf("%w: carrier ended after %d of %d bits", ErrInvalidLength, dst.Position(), len(out)*8)
	}
	return out, nil
}
