package frame

import "fmt"

// BitSink accepts bits one at a time, most significant first.
type BitSink interface {
	PutBit(bit uint8)
}

// BitSource yields bits one at a time, most significant first.
type BitSource interface {
	NextBit() uint8
}

func putBytes(w BitSink, b []byte) {
	for _, v := range b {
		for i := 7; i >= 0; i-- {
			w.PutBit(v >> uint(i) & 1)
		}
	}
}

func readBytes(r BitSource, n int) []byte {
	out := make([]byte, n)
	for j := range out {
		var v byte
		for i := 7; i >= 0; i-- {
			v |= r.NextBit() << uint(i)
		}
		out[j] = v
	}
	return out
}

// Encode writes the header bits to w.
func Encode(w BitSink, h Header) {
	b, _ := h.MarshalBinary()
	putBytes(w, b)
}

// Decode reads a header from r and validates it against MaxPayload.
func Decode(r BitSource, withSeed bool) (Header, error) {
	h, err := Parse(readBytes(r, HeaderSize(withSeed)), withSeed)
	if err != nil {
		return Header{}, err
	}
	if err := h.Validate(0); err != nil {
		return Header{}, err
	}
	return h, nil
}

// EncodeStreams writes a stream table to w.
func EncodeStreams(w BitSink, t StreamTable) error {
	b, err := t.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode stream table: %w", err)
	}
	putBytes(w, b)
	return nil
}

// DecodeStreams reads and validates a stream table from r.
func DecodeStreams(r BitSource) (StreamTable, error) {
	count := int(readBytes(r, 1)[0])
	if count == 0 || count > MaxStreams {
		return StreamTable{}, fmt.Errorf("%w: %d streams (want 1..%d)", ErrInvalidLength, count, MaxStreams)
	}
	raw := readBytes(r, count*lengthSize)
	t := StreamTable{Lengths: make([]uint32, count)}
	for i := range t.Lengths {
		h, err := Parse(raw[i*lengthSize:], false)
		if err != nil {
			return StreamTable{}, err
		}
		t.Lengths[i] = h.Length
	}
	if err := t.Validate(); err != nil {
		return StreamTable{}, err
	}
	return t, nil
}
