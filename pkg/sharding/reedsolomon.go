// Package sharding spreads one payload over several carriers with
// Reed-Solomon erasure coding, so any Threshold of them rebuild it.
package sharding

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// MaxShards bounds the number of carriers in one scatter.
const MaxShards = 255

// ErrNotEnoughShards indicates fewer surviving shards than the threshold.
var ErrNotEnoughShards = errors.New("not enough shards to reconstruct")

// Shard represents a single fragment of the payload
type Shard struct {
	Index int    // 0-based index
	Data  []byte // The bytes embedded into one carrier
}

// Splitter handles erasure coding (Reed-Solomon)
type Splitter struct {
	Total     int
	Threshold int
}

func NewSplitter(total, threshold int) (*Splitter, error) {
	if total < 1 || total > MaxShards {
		return nil, fmt.Errorf("total shards %d out of range 1..%d", total, MaxShards)
	}
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", threshold)
	}
	if threshold > total {
		return nil, fmt.Errorf("threshold cannot exceed total shards")
	}
	return &Splitter{
		Total:     total,
		Threshold: threshold,
	}, nil
}

func (s *Splitter) encoder() (reedsolomon.Encoder, error) {
	return reedsolomon.New(s.Threshold, s.Total-s.Threshold)
}

// Split cuts data into Threshold data shards plus parity shards.
// Every shard has the same length; the last data shard is zero padded.
func (s *Splitter) Split(data []byte) ([]Shard, error) {
	if len(data) == 0 {
		return nil, errors.New("cannot split empty data")
	}
	enc, err := s.encoder()
	if err != nil {
		return nil, err
	}

	parts, err := enc.Split(data)
	if err != nil {
		return nil, err
	}

	// Generate parity shards
	if err := enc.Encode(parts); err != nil {
		return nil, err
	}

	result := make([]Shard, s.Total)
	for i, part := range parts {
		result[i] = Shard{Index: i, Data: part}
	}
	return result, nil
}

// Join reverses Split from any Threshold shards. A positive originalSize
// trims the padding; otherwise the padded data is returned.
func (s *Splitter) Join(shards map[int][]byte, originalSize int) ([]byte, error) {
	enc, err := s.encoder()
	if err != nil {
		return nil, err
	}

	reconstructShards := make([][]byte, s.Total)
	validCount := 0
	for i := 0; i < s.Total; i++ {
		if data, ok := shards[i]; ok {
			reconstructShards[i] = data
			validCount++
		}
	}

	if validCount < s.Threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShards, validCount, s.Threshold)
	}

	// Reconstruct the missing data shards
	if err := enc.ReconstructData(reconstructShards); err != nil {
		return nil, fmt.Errorf("reconstruction failed: %w", err)
	}

	// Concatenate the data shards directly; the caller knows the real size.
	var buf bytes.Buffer
	for i := 0; i < s.Threshold; i++ {
		if len(reconstructShards[i]) == 0 {
			return nil, fmt.Errorf("unexpected empty shard at index %d", i)
		}
		buf.Write(reconstructShards[i])
	}

	joined := buf.Bytes()
	if originalSize > 0 {
		if len(joined) < originalSize {
			return nil, fmt.Errorf("reconstructed data shorter than expected size")
		}
		joined = joined[:originalSize]
	}

	return joined, nil
}
