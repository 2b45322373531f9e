// Package pipeline turns one payload into per-carrier shard envelopes and
// back: compress, shard, wrap; then unwrap, rebuild, decompress.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Beastly713/pixelstash/pkg/compression"
	"github.com/Beastly713/pixelstash/pkg/format"
	"github.com/Beastly713/pixelstash/pkg/sharding"
)

// ErrMixedSessions indicates envelopes from different scatters.
var ErrMixedSessions = errors.New("shards come from different sessions")

// Config holds the parameters for a scatter.
type Config struct {
	Total       int
	Threshold   int
	Compression string
	Name        string
	Timestamp   int64
}

// Scatter compresses payload, splits it into cfg.Total shards and wraps each
// in a format envelope. Envelope i belongs to carrier i.
func Scatter(payload []byte, cfg Config) ([][]byte, error) {
	codec, err := compression.New(cfg.Compression)
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}

	splitter, err := sharding.NewSplitter(cfg.Total, cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize splitter: %w", err)
	}
	shards, err := splitter.Split(packed)
	if err != nil {
		return nil, fmt.Errorf("sharding failed: %w", err)
	}

	envelopes := make([][]byte, len(shards))
	for i, s := range shards {
		header := &format.Header{
			Timestamp:   cfg.Timestamp,
			Index:       s.Index + 1,
			Total:       cfg.Total,
			Threshold:   cfg.Threshold,
			Size:        len(packed),
			Compression: cfg.Compression,
			Name:        cfg.Name,
		}
		var buf bytes.Buffer
		if err := format.NewWriter(&buf).Write(header, s.Data); err != nil {
			return nil, fmt.Errorf("shard %d: %w", s.Index+1, err)
		}
		envelopes[i] = buf.Bytes()
	}
	return envelopes, nil
}

// Gather rebuilds the payload from any Threshold envelopes of one scatter.
// Duplicated indices are ignored.
func Gather(envelopes [][]byte) ([]byte, *format.Header, error) {
	if len(envelopes) == 0 {
		return nil, nil, fmt.Errorf("%w: no shards given", sharding.ErrNotEnoughShards)
	}

	var first *format.Header
	shards := make(map[int][]byte)
	for i, env := range envelopes {
		h, body, err := format.Parse(env)
		if err != nil {
			return nil, nil, fmt.Errorf("shard %d: %w", i+1, err)
		}
		if first == nil {
			first = h
		} else if !first.SameSession(h) {
			return nil, nil, fmt.Errorf("%w: shard index %d", ErrMixedSessions, h.Index)
		}
		shards[h.Index-1] = body
	}

	splitter, err := sharding.NewSplitter(first.Total, first.Threshold)
	if err != nil {
		return nil, nil, err
	}
	packed, err := splitter.Join(shards, first.Size)
	if err != nil {
		return nil, nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	codec, err := compression.New(first.Compression)
	if err != nil {
		return nil, nil, err
	}
	payload, err := codec.Decompress(packed)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}
	return payload, first, nil
}
