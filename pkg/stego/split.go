package stego

import (
	"fmt"

	"github.com/Beastly713/pixelstash/pkg/bitstream"
	"github.com/Beastly713/pixelstash/pkg/frame"
)

// FixedSplit stores up to frame.MaxStreams payloads using a fixed bit width
// per channel (2/2/4 for R/G/B by default).
//
// Layout: a stream table written slot after slot, then payload slots handed
// round robin to the streams that still have bits left. A stream that is done
// drops out of the rotation without consuming a slot.
type FixedSplit struct {
	alloc []int
}

func (s *FixedSplit) Mode() Mode { return ModeSplit }

// Allocation returns a copy of the per-channel bit table.
func (s *FixedSplit) Allocation() []int {
	return append([]int(nil), s.alloc...)
}

func (s *FixedSplit) Capacity(width, height int) int {
	perPixel := 0
	for _, n := range s.alloc {
		perPixel += n
	}
	return width * height * perPixel
}

func (s *FixedSplit) width(slot int) int {
	return s.alloc[slot%len(s.alloc)]
}

// rotation hands payload slots to streams round robin.
type rotation struct {
	remaining []int // bits left per stream
	turn      int
}

func newRotation(lengths []uint32) *rotation {
	r := &rotation{remaining: make([]int, len(lengths))}
	for i, n := range lengths {
		r.remaining[i] = int(n) * 8
	}
	return r
}

// next returns the stream that owns a slot of the given width, or false once
// every stream is exhausted.
func (r *rotation) next(width int) (int, bool) {
	n := len(r.remaining)
	for k := 0; k < n; k++ {
		i := (r.turn + k) % n
		if r.remaining[i] > 0 {
			r.remaining[i] -= width
			if r.remaining[i] < 0 {
				r.remaining[i] = 0
			}
			r.turn = i + 1
			return i, true
		}
	}
	return 0, false
}

// slotsNeeded returns the number of channel slots the table and its streams occupy.
func (s *FixedSplit) slotsNeeded(table frame.StreamTable) int {
	slot := 0
	for bits := table.Size() * 8; bits > 0; slot++ {
		bits -= s.width(slot)
	}
	rot := newRotation(table.Lengths)
	for {
		if _, ok := rot.next(s.width(slot)); !ok {
			return slot
		}
		slot++
	}
}

func (s *FixedSplit) Embed(pix []byte, payload []byte) error {
	return s.EmbedStreams(pix, [][]byte{payload})
}

// Extract returns the first stream of the carrier.
func (s *FixedSplit) Extract(pix []byte) ([]byte, error) {
	streams, err := s.ExtractStreams(pix)
	if err != nil {
		return nil, err
	}
	return streams[0], nil
}

// EmbedStreams writes between 1 and frame.MaxStreams payloads into pix.
func (s *FixedSplit) EmbedStreams(pix []byte, streams [][]byte) error {
	pixels, err := pixelCount(pix)
	if err != nil {
		return err
	}
	if len(streams) == 0 || len(streams) > frame.MaxStreams {
		return fmt.Errorf("%w: %d streams (want 1..%d)", ErrInvalidConfig, len(streams), frame.MaxStreams)
	}

	table := frame.StreamTable{Lengths: make([]uint32, len(streams))}
	bits := 0
	for i, p := range streams {
		if len(p) > frame.MaxPayload {
			return fmt.Errorf("%w: stream %d has %d bytes, limit %d", ErrCapacityExceeded, i, len(p), frame.MaxPayload)
		}
		table.Lengths[i] = uint32(len(p))
		bits += len(p) * 8
	}
	bits += table.Size() * 8

	capacity := s.Capacity(pixels, 1)
	if bits > capacity {
		return fmt.Errorf("%w: need %d bits, have %d", ErrCapacityExceeded, bits, capacity)
	}
	if need := s.slotsNeeded(table); need > pixels*3 {
		return fmt.Errorf("%w: need %d channels, have %d", ErrCapacityExceeded, need, pixels*3)
	}

	w := newChannelWriter(pix, s.alloc)
	if err := frame.EncodeStreams(w, table); err != nil {
		return err
	}
	w.Align()

	readers := make([]*bitstream.Reader, len(streams))
	for i, p := range streams {
		readers[i] = bitstream.NewReader(p, false)
	}
	rot := newRotation(table.Lengths)
	for !w.IsOver() {
		width := w.NextWidth()
		i, ok := rot.next(width)
		if !ok {
			break
		}
		for b := 0; b < width; b++ {
			w.PutBit(readers[i].NextBit())
		}
	}
	return nil
}

// ExtractStreams recovers every stream written by EmbedStreams, in order.
func (s *FixedSplit) ExtractStreams(pix []byte) ([][]byte, error) {
	pixels, err := pixelCount(pix)
	if err != nil {
		return nil, err
	}

	r := newChannelReader(pix, s.alloc)
	table, err := frame.DecodeStreams(r)
	if err != nil {
		return nil, err
	}
	r.Align()

	if need := s.slotsNeeded(table); need > pixels*3 {
		return nil, fmt.Errorf("%w: streams need %d channels, carrier has %d", ErrInvalidLength, need, pixels*3)
	}

	out := make([][]byte, len(table.Lengths))
	writers := make([]*bitstream.Writer, len(table.Lengths))
	for i, n := range table.Lengths {
		out[i] = make([]byte, n)
		writers[i] = bitstream.NewWriter(out[i], false)
	}

	rot := newRotation(table.Lengths)
	for !r.IsOver() {
		width := r.NextWidth()
		i, ok := rot.next(width)
		if !ok {
			break
		}
		for b := 0; b < width; b++ {
			writers[i].PutBit(r.NextBit())
		}
	}
	for i, w := range writers {
		if !w.IsOver() {
			return nil, fmt.Errorf("%w: stream %d truncated", ErrInvalidLength, i)
		}
	}
	return out, nil
}
