// Package frame implements the length framing written in front of every
// embedded payload.
//
// A frame header is a 4-byte big-endian payload length, optionally followed by
// one PRNG seed byte. Multi-stream carriers use a StreamTable instead: a count
// byte followed by one 4-byte length per stream.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MaxPayload bounds any decoded length.
	MaxPayload = 1_000_000

	// MaxStreams bounds the number of streams in a StreamTable.
	MaxStreams = 6

	lengthSize = 4
)

// ErrInvalidLength indicates a length header outside the accepted range.
var ErrInvalidLength = errors.New("invalid length header")

// ErrShortHeader indicates fewer header bytes than the layout requires.
var ErrShortHeader = errors.New("header truncated")

// Header precedes a single payload.
type Header struct {
	// Length is the payload size in bytes.
	Length uint32

	// Seed feeds the pixel skipper. Only written when HasSeed is set.
	Seed    uint8
	HasSeed bool
}

// Size returns the encoded header size in bytes.
func (h Header) Size() int {
	return HeaderSize(h.HasSeed)
}

// HeaderSize returns the encoded size of a header with or without a seed.
func HeaderSize(withSeed bool) int {
	if withSeed {
		return lengthSize + 1
	}
	return lengthSize
}

// MarshalBinary encodes the header.
func (h Header) MarshalBinary() ([]byte, error) {
	out := make([]byte, h.Size())
	binary.BigEndian.PutUint32(out, h.Length)
	if h.HasSeed {
		out[lengthSize] = h.Seed
	}
	return out, nil
}

// Parse decodes a header from b. It does not validate the length.
func Parse(b []byte, withSeed bool) (Header, error) {
	need := HeaderSize(withSeed)
	if len(b) < need {
		return Header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrShortHeader, need, len(b))
	}
	h := Header{Length: binary.BigEndian.Uint32(b), HasSeed: withSeed}
	if withSeed {
		h.Seed = b[lengthSize]
	}
	return h, nil
}

// Validate checks the length against MaxPayload and the caller's own bound
// (in bytes). A non-positive max only applies MaxPayload.
func (h Header) Validate(max int) error {
	if h.Length > MaxPayload {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrInvalidLength, h.Length, MaxPayload)
	}
	if max > 0 && int(h.Length) > max {
		return fmt.Errorf("%w: %d bytes exceeds carrier room %d", ErrInvalidLength, h.Length, max)
	}
	return nil
}

// StreamTable precedes up to MaxStreams independent payloads.
type StreamTable struct {
	Lengths []uint32
}

// Size returns the encoded table size in bytes.
func (t StreamTable) Size() int {
	return 1 + lengthSize*len(t.Lengths)
}

// Validate checks the stream count and each declared length.
func (t StreamTable) Validate() error {
	if len(t.Lengths) == 0 || len(t.Lengths) > MaxStreams {
		return fmt.Errorf("%w: %d streams (want 1..%d)", ErrInvalidLength, len(t.Lengths), MaxStreams)
	}
	for i, n := range t.Lengths {
		if err := (Header{Length: n}).Validate(0); err != nil {
			return fmt.Errorf("stream %d: %w", i, err)
		}
	}
	return nil
}

// MarshalBinary encodes the table.
func (t StreamTable) MarshalBinary() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, t.Size())
	out[0] = byte(len(t.Lengths))
	for i, n := range t.Lengths {
		binary.BigEndian.PutUint32(out[1+i*lengthSize:], n)
	}
	return out, nil
}
