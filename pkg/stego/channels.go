package stego

import "github.com/Beastly713/pixelstash/pkg/bitstream"

// Channel cursors walk the R, G, B bytes of a pixel buffer as a sequence of
// slots. Slot i carries widths[i%len(widths)] payload bits in the low end of
// its channel byte; the high bits are stepped over untouched.

type slotWidths struct {
	widths []int
	slot   int
	left   int // bits still open in the current slot, 0 when between slots
}

// NextWidth returns the width of the slot that the next bit lands in.
func (s *slotWidths) NextWidth() int {
	if s.left > 0 {
		return s.left
	}
	return s.widths[s.slot%len(s.widths)]
}

type channelWriter struct {
	slotWidths
	w *bitstream.Writer
}

func newChannelWriter(pix []byte, widths []int) *channelWriter {
	return &channelWriter{
		slotWidths: slotWidths{widths: widths},
		w:          bitstream.NewWriter(pix, true),
	}
}

func (c *channelWriter) PutBit(bit uint8) {
	if c.left == 0 {
		c.left = c.NextWidth()
		c.w.Skip(8 - c.left)
	}
	c.w.PutBit(bit)
	c.left--
	if c.left == 0 {
		c.slot++
	}
}

// Align abandons the unused low bits of a partly written slot.
func (c *channelWriter) Align() {
	if c.left > 0 {
		c.w.Skip(c.left)
		c.left = 0
		c.slot++
	}
}

// SkipSlot leaves the next whole slot untouched.
func (c *channelWriter) SkipSlot() {
	c.Align()
	c.w.Skip(8)
	c.slot++
}

func (c *channelWriter) IsOver() bool {
	return c.w.IsOver()
}

type channelReader struct {
	slotWidths
	r *bitstream.Reader
}

func newChannelReader(pix []byte, widths []int) *channelReader {
	return &channelReader{
		slotWidths: slotWidths{widths: widths},
		r:          bitstream.NewReader(pix, true),
	}
}

func (c *channelReader) NextBit() uint8 {
	if c.left == 0 {
		c.left = c.NextWidth()
		c.r.Skip(8 - c.left)
	}
	bit := c.r.NextBit()
	c.left--
	if c.left == 0 {
		c.slot++
	}
	return bit
}

func (c *channelReader) Align() {
	if c.left > 0 {
		c.r.Skip(c.left)
		c.left = 0
		c.slot++
	}
}

func (c *channelReader) SkipSlot() {
	c.Align()
	c.r.Skip(8)
	c.slot++
}

func (c *channelReader) IsOver() bool {
	return c.r.IsOver()
}
