package format_test

import (
	"bytes"
	"testing"

	"github.com/Beastly713/pixelstash/pkg/format"
)

// FuzzNewReader feeds random byte streams into the parser.
// Garbage may fail, but it must fail with an error rather than a panic.
func FuzzNewReader(f *testing.F) {
	f.Add([]byte(`# PIXELSTASH SHARD 1 OF 5.
-- HEADER --
{"timestamp":123,"index":1,"total":5,"threshold":3,"size":10,"compression":"gzip"}
-- BODY --
somebinarycontent`))
	f.Add([]byte("random garbage"))
	f.Add([]byte("-- HEADER --\n"))
	f.Add([]byte("{}"))

	f.Fuzz(func(t *testing.T, data []byte) {
		r, err := format.NewReader(bytes.NewReader(data))
		if err != nil {
			return
		}
		if err := r.Header.Validate(); err != nil {
			t.Fatalf("reader returned an invalid header: %v", err)
		}
	})
}
