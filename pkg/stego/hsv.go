package stego

import (
	"fmt"
	"io"

	"github.com/Beastly713/pixelstash/pkg/bitstream"
	"github.com/Beastly713/pixelstash/pkg/frame"
	"github.com/Beastly713/pixelstash/pkg/seeded"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV stores two bits per pixel in the quantized hue and saturation.
//
// Hue and saturation are scaled to 0..255, their low three bits cleared and
// the payload bit copied into bits 0 and 1. The read side maps the low three
// bits through hsvReadTable, which tolerates the drift of an RGB round trip.
// Pixels whose round trip still lands on the wrong bit are retried from a
// randomly nudged colour.
type HSV struct {
	maxAttempts int
	rand        io.Reader
}

// hsvReadTable maps the low three bits of a quantized component to a bit.
var hsvReadTable = [8]uint8{0, 1, 1, 1, 1, 1, 0, 0}

func (s *HSV) Mode() Mode { return ModeHSV }

func (s *HSV) Capacity(width, height int) int {
	return width * height * 2
}

func toHSV255(r, g, b uint8) (h, sat, v int) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	hh, ss, vv := c.Hsv()
	return int(hh / 360 * 255), int(ss * 255), int(vv * 255)
}

func channel255(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f * 255)
}

func fromHSV255(h, sat, v int) (r, g, b uint8) {
	c := colorful.Hsv(float64(h)/255*360, float64(sat)/255, float64(v)/255)
	return channel255(c.R), channel255(c.G), channel255(c.B)
}

// hsvBits decodes the two bits carried by one pixel.
func hsvBits(r, g, b uint8) (uint8, uint8) {
	h, sat, _ := toHSV255(r, g, b)
	return hsvReadTable[h&7], hsvReadTable[sat&7]
}

func quantize(component int, bit uint8) int {
	return component&^7 | int(bit&1)*3
}

func nudge(c uint8, offset int) uint8 {
	v := int(c) + offset
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// solve finds a colour near (r, g, b) that reads back as (hb, sb). Every
// attempt works on candidate values; nothing is committed until one verifies.
func (s *HSV) solve(r, g, b, hb, sb uint8, rng *seeded.Random) ([3]uint8, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		br, bg, bb := r, g, b
		if attempt > 0 {
			scale := float64(attempt) * 2 / float64(s.maxAttempts) * 127
			br = nudge(r, int((rng.Next()-0.5)*scale))
			bg = nudge(g, int((rng.Next()-0.5)*scale))
			bb = nudge(b, int((rng.Next()-0.5)*scale))
		}

		h, sat, v := toHSV255(br, bg, bb)
		cr, cg, cb := fromHSV255(quantize(h, hb), quantize(sat, sb), v)
		if gh, gs := hsvBits(cr, cg, cb); gh == hb && gs == sb {
			return [3]uint8{cr, cg, cb}, nil
		}
	}
	return [3]uint8{}, fmt.Errorf("%w: %d attempts", ErrRetryBudgetExhausted, s.maxAttempts)
}

func (s *HSV) Embed(pix []byte, payload []byte) error {
	pixels, err := pixelCount(pix)
	if err != nil {
		return err
	}
	if len(payload) > frame.MaxPayload {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrCapacityExceeded, len(payload), frame.MaxPayload)
	}

	header, _ := frame.Header{Length: uint32(len(payload))}.MarshalBinary()
	data := append(header, payload...)
	if bits, capacity := len(data)*8, s.Capacity(pixels, 1); bits > capacity {
		return fmt.Errorf("%w: need %d bits, have %d", ErrCapacityExceeded, bits, capacity)
	}

	seed, err := randomSeed(s.rand)
	if err != nil {
		return err
	}
	rng := seeded.New(seed)

	src := bitstream.NewReader(data, false)
	for p := 0; !src.IsOver(); p++ {
		hb, sb := src.NextBit(), src.NextBit()
		off := p * 4
		rgb, err := s.solve(pix[off], pix[off+1], pix[off+2], hb, sb, rng)
		if err != nil {
			return fmt.Errorf("pixel %d: %w", p, err)
		}
		copy(pix[off:off+3], rgb[:])
	}
	return nil
}

// hsvSource yields the bits carried by consecutive pixels.
type hsvSource struct {
	pix     []byte
	next    int
	pending uint8
	hasPend bool
}

func (h *hsvSource) NextBit() uint8 {
	if h.hasPend {
		h.hasPend = false
		return h.pending
	}
	off := h.next * 4
	if off+3 > len(h.pix) {
		return 0
	}
	h.next++
	hb, sb := hsvBits(h.pix[off], h.pix[off+1], h.pix[off+2])
	h.pending, h.hasPend = sb, true
	return hb
}

func (s *HSV) Extract(pix []byte) ([]byte, error) {
	pixels, err := pixelCount(pix)
	if err != nil {
		return nil, err
	}
	capacity := s.Capacity(pixels, 1)
	if capacity < frame.HeaderSize(false)*8 {
		return nil, fmt.Errorf("%w: carrier too small for a frame header", ErrInvalidLength)
	}

	src := &hsvSource{pix: pix}
	h, err := frame.Decode(src, false)
	if err != nil {
		return nil, err
	}
	if room := capacity - frame.HeaderSize(false)*8; int(h.Length)*8 > room {
		return nil, fmt.Errorf("%w: %d bytes do not fit the carrier", ErrInvalidLength, h.Length)
	}

	out := make([]byte, h.Length)
	dst := bitstream.NewWriter(out, false)
	for !dst.IsOver() {
		dst.PutBit(src.NextBit())
	}
	return out, nil
}
