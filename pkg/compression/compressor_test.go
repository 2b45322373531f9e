package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(strings.Repeat("a carrier holds only so many bits. ", 50)),
		[]byte("x"),
		{0x00, 0xFF, 0x10, 0x80},
	}
	for _, name := range Names() {
		c, err := New(name)
		require.NoError(t, err)

		for _, in := range inputs {
			packed, err := c.Compress(in)
			require.NoError(t, err, "codec %s", name)

			out, err := c.Decompress(packed)
			require.NoError(t, err, "codec %s", name)
			assert.Equal(t, in, out, "codec %s", name)
		}
	}
}

func TestCompressionShrinksText(t *testing.T) {
	text := []byte(strings.Repeat("the same sentence again and again. ", 100))
	for _, name := range []string{Gzip, Zstd} {
		c, err := New(name)
		require.NoError(t, err)

		packed, err := c.Compress(text)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(text)/4, "codec %s", name)
	}
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	_, err = New("brotli")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecompressGarbage(t *testing.T) {
	garbage := bytes.Repeat([]byte{0x13, 0x37}, 16)
	for _, name := range []string{Gzip, Zstd} {
		c, err := New(name)
		require.NoError(t, err)

		_, err = c.Decompress(garbage)
		assert.Error(t, err, "codec %s", name)
	}
}
