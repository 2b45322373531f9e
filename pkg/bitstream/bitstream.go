// Package bitstream provides bit-addressable cursors over a flat byte buffer.
//
// Bits are addressed big-endian inside each byte: bit 7 (the most significant)
// is read or written first. When alpha skipping is enabled, every byte whose
// index modulo 4 equals 3 is removed from the addressable space, which models
// the alpha channel of interleaved RGBA pixel data.
//
// Running past the end of the buffer is not an error. Writes become no-ops and
// reads return 0; callers check IsOver when they care.
package bitstream

// cursor tracks a logical bit position over the addressable bytes of buf.
type cursor struct {
	buf       []byte
	skipAlpha bool
	pos       int // logical bit position, alpha bytes excluded
	limit     int // addressable bits
}

func newCursor(buf []byte, skipAlpha bool) cursor {
	n := len(buf)
	if skipAlpha {
		n = n - n/4
	}
	return cursor{buf: buf, skipAlpha: skipAlpha, limit: n * 8}
}

// locate maps the logical position to a physical byte index and bit shift.
func (c *cursor) locate() (int, uint) {
	logicalByte := c.pos / 8
	physical := logicalByte
	if c.skipAlpha {
		// every 3 logical bytes are followed by one skipped byte
		physical = logicalByte/3*4 + logicalByte%3
	}
	return physical, uint(7 - c.pos%8)
}

func (c *cursor) skip(n int) {
	if n <= 0 {
		return
	}
	c.pos += n
	if c.pos > c.limit {
		c.pos = c.limit
	}
}

// IsOver reports whether every addressable bit has been consumed.
func (c *cursor) IsOver() bool {
	return c.pos >= c.limit
}

// Position returns the number of addressable bits consumed so far.
func (c *cursor) Position() int {
	return c.pos
}

// Len returns the number of addressable bits in the underlying buffer.
func (c *cursor) Len() int {
	return c.limit
}

// Reader reads bits from a byte buffer.
type Reader struct {
	cursor
}

// NewReader creates a Reader positioned at the first addressable bit of buf.
func NewReader(buf []byte, skipAlpha bool) *Reader {
	return &Reader{cursor: newCursor(buf, skipAlpha)}
}

// NextBit returns the bit under the cursor (0 or 1) and advances by one.
func (r *Reader) NextBit() uint8 {
	if r.IsOver() {
		return 0
	}
	idx, shift := r.locate()
	r.pos++
	return (r.buf[idx] >> shift) & 1
}

// NextByte composes the next 8 bits, most significant first.
func (r *Reader) NextByte() byte {
	var b byte
	for i := 7; i >= 0; i-- {
		b |= r.NextBit() << uint(i)
	}
	return b
}

// Skip advances the cursor by n bits without reading them.
func (r *Reader) Skip(n int) {
	r.skip(n)
}

// Writer overwrites bits in a byte buffer in place.
type Writer struct {
	cursor
}

// NewWriter creates a Writer positioned at the first addressable bit of buf.
func NewWriter(buf []byte, skipAlpha bool) *Writer {
	return &Writer{cursor: newCursor(buf, skipAlpha)}
}

// PutBit stores the lowest bit of bit under the cursor and advances by one.
func (w *Writer) PutBit(bit uint8) {
	if w.IsOver() {
		return
	}
	idx, shift := w.locate()
	mask := byte(1) << shift
	w.buf[idx] = w.buf[idx]&^mask | (bit&1)<<shift
	w.pos++
}

// PutByte writes the 8 bits of b, most significant first.
func (w *Writer) PutByte(b byte) {
	for i := 7; i >= 0; i-- {
		w.PutBit(b >> uint(i))
	}
}

// Skip advances the cursor by n bits leaving them untouched.
func (w *Writer) Skip(n int) {
	w.skip(n)
}
