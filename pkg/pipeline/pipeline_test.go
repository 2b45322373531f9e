package pipeline

import (
	"strings"
	"testing"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/sharding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRoundTrip(t *testing.T) {
	original := []byte(strings.Repeat("This is a secret message that repeats. ", 500))

	for _, codec := range compression.Names() {
		cfg := Config{Total: 5, Threshold: 3, Compression: codec, Name: "msg.txt", Timestamp: 1700000000}
		envelopes, err := Scatter(original, cfg)
		require.NoError(t, err, "codec %s", codec)
		require.Len(t, envelopes, 5)

		// Keep only shards 1, 3 and 5.
		kept := [][]byte{envelopes[0], envelopes[2], envelopes[4]}
		restored, header, err := Gather(kept)
		require.NoError(t, err, "codec %s", codec)
		assert.Equal(t, original, restored, "codec %s", codec)
		assert.Equal(t, "msg.txt", header.Name)
	}
}

func TestCompressedShardsAreSmall(t *testing.T) {
	original := []byte(strings.Repeat("repetitive text compresses well. ", 300))
	envelopes, err := Scatter(original, Config{Total: 3, Threshold: 2, Compression: compression.Zstd})
	require.NoError(t, err)

	total := 0
	for _, e := range envelopes {
		total += len(e)
	}
	assert.Less(t, total, len(original)/2)
}

func TestGatherTooFewShards(t *testing.T) {
	envelopes, err := Scatter([]byte("not enough"), Config{Total: 4, Threshold: 3, Compression: compression.Gzip})
	require.NoError(t, err)

	_, _, err = Gather(envelopes[:2])
	assert.ErrorIs(t, err, sharding.ErrNotEnoughShards)

	// A repeated shard does not count twice.
	_, _, err = Gather([][]byte{envelopes[0], envelopes[0], envelopes[1]})
	assert.ErrorIs(t, err, sharding.ErrNotEnoughShards)

	_, _, err = Gather(nil)
	assert.ErrorIs(t, err, sharding.ErrNotEnoughShards)
}

func TestGatherRejectsMixedSessions(t *testing.T) {
	a, err := Scatter([]byte("first"), Config{Total: 3, Threshold: 2, Timestamp: 1})
	require.NoError(t, err)
	b, err := Scatter([]byte("first"), Config{Total: 3, Threshold: 2, Timestamp: 2})
	require.NoError(t, err)

	_, _, err = Gather([][]byte{a[0], b[1]})
	assert.ErrorIs(t, err, ErrMixedSessions)
}

func TestScatterRejectsBadConfig(t *testing.T) {
	_, err := Scatter([]byte("x"), Config{Total: 2, Threshold: 3})
	assert.Error(t, err)

	_, err = Scatter([]byte("x"), Config{Total: 2, Threshold: 1, Compression: "lz4"})
	assert.ErrorIs(t, err, compression.ErrUnknownCodec)
}
