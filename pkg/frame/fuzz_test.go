package frame_test

import (
	"testing"

	"github.com/Beastly713/pixelstash/pkg/bitstream"
	"github.com/Beastly713/pixelstash/pkg/frame"
)

// FuzzDecode feeds arbitrary carrier bytes to the header decoders.
// Garbage may be rejected, but decoding must never panic and an accepted
// header must respect the payload bound.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0, 0, 0, 2, 9})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{6, 0, 0, 0, 1})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := frame.Decode(bitstream.NewReader(data, true), true)
		if err == nil && h.Length > frame.MaxPayload {
			t.Fatalf("accepted length %d", h.Length)
		}

		table, err := frame.DecodeStreams(bitstream.NewReader(data, false))
		if err == nil && len(table.Lengths) > frame.MaxStreams {
			t.Fatalf("accepted %d streams", len(table.Lengths))
		}
	})
}
